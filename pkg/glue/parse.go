package glue

import (
	"fmt"
	"strings"

	"src.texel.sh/pkg/dimen"
)

// Parse parses glue written as "<dimen> [plus <spring>] [minus <spring>]",
// such as "12pt plus 1fil". It is meant for configuration and data files.
func Parse(s string) (Glue, error) {
	fields := strings.Fields(strings.ToLower(s))
	var parts [3][]string
	part := 0
	for _, f := range fields {
		switch {
		case f == "plus" && part == 0:
			part = 1
		case f == "minus" && part < 2:
			part = 2
		default:
			parts[part] = append(parts[part], f)
		}
	}
	var g Glue
	var err error
	if g.Space, err = dimen.Parse(strings.Join(parts[0], "")); err != nil {
		return Glue{}, fmt.Errorf("glue %q: %w", s, err)
	}
	if len(parts[1]) > 0 {
		if g.Stretch, err = dimen.ParseSpring(strings.Join(parts[1], "")); err != nil {
			return Glue{}, fmt.Errorf("glue %q: %w", s, err)
		}
	}
	if len(parts[2]) > 0 {
		if g.Shrink, err = dimen.ParseSpring(strings.Join(parts[2], "")); err != nil {
			return Glue{}, fmt.Errorf("glue %q: %w", s, err)
		}
	}
	return g, nil
}
