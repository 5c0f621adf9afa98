// Package font provides character metrics: the width, height and depth of
// every character, and the interword space.
//
// Metrics come from the built-in Default table, from YAML or TOML files read
// with LoadFile, or from a metrics database opened with OpenStore.
package font

import (
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
)

// Metrics are the dimensions of one character.
type Metrics struct {
	Width  dimen.Dimen
	Height dimen.Dimen
	Depth  dimen.Dimen
}

// Source is anything that can look up character metrics.
type Source interface {
	// Metrics returns the metrics of r, and whether r exists in the font.
	Metrics(r rune) (Metrics, bool)
	// SpaceGlue returns the glue that a space token becomes.
	SpaceGlue() glue.Glue
}

// Table is a complete set of metrics.
type Table struct {
	Space glue.Glue
	Chars map[rune]Metrics
}

// Metrics implements Source.
func (t Table) Metrics(r rune) (Metrics, bool) {
	m, ok := t.Chars[r]
	return m, ok
}

// SpaceGlue implements Source.
func (t Table) SpaceGlue() glue.Glue {
	return t.Space
}

// Dimensions of the built-in table, in points.
const (
	xHeight     = 4.30554
	ascender    = 6.94444
	capHeight   = 6.83331
	digitHeight = 6.44444
	descender   = 1.94444
)

// Default returns the built-in table. It covers printable ASCII with the
// proportions of a 10pt roman face: lowercase letters are 5pt wide, capitals
// 7.5pt, and letters with ascenders or descenders are taller or deeper.
func Default() Table {
	t := Table{
		Space: glue.Glue{
			Space:   dimen.Pt(3.33333),
			Stretch: dimen.Finite(dimen.Pt(1.66666)),
			Shrink:  dimen.Finite(dimen.Pt(1.11111)),
		},
		Chars: map[rune]Metrics{},
	}
	set := func(chars string, w, h, d float64) {
		for _, r := range chars {
			t.Chars[r] = Metrics{dimen.Pt(w), dimen.Pt(h), dimen.Pt(d)}
		}
	}
	set("!\"#$%&'*+/<=>?@\\^_`|~", 5, ascender, 0)
	set("acemnorsuvwxz", 5, xHeight, 0)
	set("bdfhiklt", 5, ascender, 0)
	set("gpqy", 5, xHeight, descender)
	set("j", 3.05556, ascender, descender)
	set("ABCDEFGHIJKLMNOPRSTUVWXYZ", 7.5, capHeight, 0)
	set("Q", 7.77779, capHeight, descender)
	set("0123456789", 5, digitHeight, 0)
	set(".:", 2.77779, xHeight, 0)
	set(",;", 2.77779, xHeight, descender)
	set("()[]{}", 3.88891, 7.5, 2.5)
	set("-", 3.33334, xHeight, 0)
	return t
}
