// Package glue implements elastic spacing values.
package glue

import (
	"strings"

	"src.texel.sh/pkg/dimen"
)

// Glue is an elastic space: a natural size plus stretch and shrink
// capacities. It is a value type; arithmetic returns new values.
type Glue struct {
	Space   dimen.Dimen
	Stretch dimen.Spring
	Shrink  dimen.Spring
}

// FromDimen returns rigid glue of the given size.
func FromDimen(d dimen.Dimen) Glue {
	return Glue{Space: d}
}

// Add returns the sum of two glue values. Stretch and shrink components follow
// the order rules of dimen.Spring.Add.
func (g Glue) Add(o Glue) Glue {
	return Glue{
		Space:   g.Space + o.Space,
		Stretch: g.Stretch.Add(o.Stretch),
		Shrink:  g.Shrink.Add(o.Shrink),
	}
}

// Sub returns g minus o.
func (g Glue) Sub(o Glue) Glue {
	return g.Add(o.Neg())
}

// Neg negates all components.
func (g Glue) Neg() Glue {
	return Glue{-g.Space, g.Stretch.Neg(), g.Shrink.Neg()}
}

// IsRigid reports whether g can neither stretch nor shrink.
func (g Glue) IsRigid() bool {
	return g.Stretch.IsZero() && g.Shrink.IsZero()
}

// String formats g the way the language writes glue, omitting zero stretch
// and shrink: "12.0pt plus 1.0fil minus 2.0pt".
func (g Glue) String() string {
	var sb strings.Builder
	sb.WriteString(g.Space.String())
	if !g.Stretch.IsZero() {
		sb.WriteString(" plus ")
		sb.WriteString(g.Stretch.String())
	}
	if !g.Shrink.IsZero() {
		sb.WriteString(" minus ")
		sb.WriteString(g.Shrink.String())
	}
	return sb.String()
}
