package dimen

import "strings"

// Order is the order of infinity of a stretch or shrink component.
type Order uint8

// Orders of infinity. Normal means a finite length.
const (
	Normal Order = iota
	Fil
	Fill
	Filll
)

func (o Order) String() string {
	if o == Normal {
		return "pt"
	}
	return "fi" + strings.Repeat("l", int(o))
}

// Spring is the stretch or shrink component of glue: a finite length when
// Order is Normal, an infinite amount of the given order otherwise. For
// infinite orders Value counts units of that order in the same fixed-point
// representation as lengths, so 1fil has Value PT.
type Spring struct {
	Order Order
	Value Dimen
}

// Finite returns a finite Spring.
func Finite(d Dimen) Spring {
	return Spring{Normal, d}
}

// Infinite returns a Spring of the given order.
func Infinite(o Order, v Dimen) Spring {
	return Spring{o, v}
}

// IsZero reports whether the Spring has no effect.
func (s Spring) IsZero() bool {
	return s.Value == 0
}

// Neg returns the Spring with its value negated.
func (s Spring) Neg() Spring {
	return Spring{s.Order, -s.Value}
}

// Add adds two springs. Values of equal orders are summed; otherwise the
// higher order wins unless its value is zero. A zero result always has Normal
// order.
func (s Spring) Add(o Spring) Spring {
	var r Spring
	switch {
	case s.Order == o.Order:
		r = Spring{s.Order, s.Value + o.Value}
	case s.Order < o.Order && o.Value != 0:
		r = o
	default:
		r = s
	}
	if r.Value == 0 {
		r.Order = Normal
	}
	return r
}

// Sub subtracts o from s, with the same order rules as Add.
func (s Spring) Sub(o Spring) Spring {
	return s.Add(o.Neg())
}

func (s Spring) String() string {
	return Decimal(s.Value) + s.Order.String()
}
