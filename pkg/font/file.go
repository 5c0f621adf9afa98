package font

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
)

// File is the on-disk form of a Table. Dimensions are written the way the
// language writes them, such as "6.94444pt".
type File struct {
	Space string               `yaml:"space" toml:"space"`
	Chars map[string]CharEntry `yaml:"chars" toml:"chars"`
}

// CharEntry is the on-disk form of Metrics.
type CharEntry struct {
	Width  string `yaml:"width" toml:"width"`
	Height string `yaml:"height" toml:"height"`
	Depth  string `yaml:"depth" toml:"depth"`
}

// LoadFile reads a metrics file. The format is chosen by the extension:
// ".yaml" or ".yml" for YAML, ".toml" for TOML.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	default:
		return Table{}, fmt.Errorf("%s: unknown metrics file extension %q", path, ext)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	t, err := f.Table()
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	logger.Printf("loaded %d characters from %s", len(t.Chars), path)
	return t, nil
}

// Table converts the file form to a Table. A missing space defaults to the
// space of the Default table; missing dimensions of a character are zero.
func (f File) Table() (Table, error) {
	t := Table{Space: Default().Space, Chars: make(map[rune]Metrics, len(f.Chars))}
	if f.Space != "" {
		g, err := glue.Parse(f.Space)
		if err != nil {
			return Table{}, fmt.Errorf("space: %w", err)
		}
		t.Space = g
	}
	for key, e := range f.Chars {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return Table{}, fmt.Errorf("chars: key %q is not a single character", key)
		}
		var m Metrics
		for _, field := range []struct {
			dst  *dimen.Dimen
			text string
		}{{&m.Width, e.Width}, {&m.Height, e.Height}, {&m.Depth, e.Depth}} {
			if field.text == "" {
				continue
			}
			d, err := dimen.Parse(field.text)
			if err != nil {
				return Table{}, fmt.Errorf("chars: %q: %w", key, err)
			}
			*field.dst = d
		}
		t.Chars[r] = m
	}
	return t, nil
}
