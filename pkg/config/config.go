// Package config reads engine configuration files.
//
// A configuration file is YAML or TOML, chosen by its extension:
//
//	parameters:
//	  baselineskip: 14pt plus 1pt
//	  parindent: 20pt
//	metrics: cmr10.yaml
//	metrics_db: fonts.db
//	font: cmr10
//
// Parameter values are written in TeX syntax and go through the same parser
// as the document, one value at a time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"src.texel.sh/pkg/lexer"
	"src.texel.sh/pkg/logutil"
	"src.texel.sh/pkg/parse"
	"src.texel.sh/pkg/state"
)

var logger = logutil.GetLogger("[config] ")

// Config is the configuration of one run.
type Config struct {
	// Values of parameters such as baselineskip, keyed by name without the
	// backslash.
	Parameters map[string]string `yaml:"parameters" toml:"parameters"`
	// Path of a metrics file. Relative paths are resolved against the
	// directory of the configuration file.
	Metrics string `yaml:"metrics" toml:"metrics"`
	// Path of a metrics database, resolved like Metrics.
	MetricsDB string `yaml:"metrics_db" toml:"metrics_db"`
	// Name of the table in the metrics database.
	Font string `yaml:"font" toml:"font"`
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("%s: unknown configuration file extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	cfg.Metrics = resolve(dir, cfg.Metrics)
	cfg.MetricsDB = resolve(dir, cfg.MetricsDB)
	logger.Printf("loaded %s: %d parameters", path, len(cfg.Parameters))
	return &cfg, nil
}

func (cfg *Config) check() error {
	for _, name := range cfg.parameterNames() {
		if state.Parameters[name] == 0 {
			return fmt.Errorf("unknown parameter %q", name)
		}
		if strings.TrimSpace(cfg.Parameters[name]) == "" {
			return fmt.Errorf("empty value for parameter %q", name)
		}
	}
	return nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (cfg *Config) parameterNames() []string {
	names := make([]string, 0, len(cfg.Parameters))
	for name := range cfg.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply assigns the parameters to st in the order of their names. Each value
// is parsed according to the kind of its parameter and must be used up
// entirely.
func (cfg *Config) Apply(st *state.State) error {
	for _, name := range cfg.parameterNames() {
		src := lexer.Source{Name: "[config " + name + "]", Code: cfg.Parameters[name]}
		if err := parse.New(src, parse.Config{State: st}).SetParameter(name); err != nil {
			return err
		}
	}
	return nil
}
