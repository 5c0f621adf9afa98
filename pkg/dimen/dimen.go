// Package dimen implements the fixed-point lengths of the typesetting
// language.
//
// A Dimen counts scaled points: 65536sp make one point. All arithmetic is
// exact integer arithmetic, so results match TeX bit for bit.
package dimen

import (
	"errors"
	"math"
	"strings"
)

// Dimen is a length in scaled points.
type Dimen int32

// Well-known lengths.
const (
	SP   Dimen = 1
	PT   Dimen = 1 << 16
	Zero Dimen = 0
	// Max is \maxdimen, 16383.99999pt.
	Max Dimen = 1<<30 - 1
)

// ErrTooLarge is returned when a length exceeds Max.
var ErrTooLarge = errors.New("dimension too large")

// Unit is a physical unit that lengths can be written in.
type Unit int

// Units known to the language.
const (
	Point Unit = iota
	Pica
	Inch
	BigPoint
	Centimeter
	Millimeter
	DidotPoint
	Cicero
	ScaledPoint
)

var unitNames = [...]string{"pt", "pc", "in", "bp", "cm", "mm", "dd", "cc", "sp"}

// One unit equals num/den points.
var unitRatios = [...]struct{ num, den int64 }{
	Point:       {1, 1},
	Pica:        {12, 1},
	Inch:        {7227, 100},
	BigPoint:    {7227, 7200},
	Centimeter:  {7227, 254},
	Millimeter:  {7227, 2540},
	DidotPoint:  {1238, 1157},
	Cicero:      {14856, 1157},
	ScaledPoint: {1, 65536},
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return "?"
	}
	return unitNames[u]
}

// ParseUnit looks up a unit by its two-letter keyword, ignoring case.
func ParseUnit(s string) (Unit, bool) {
	s = strings.ToLower(s)
	for i, name := range unitNames {
		if name == s {
			return Unit(i), true
		}
	}
	return 0, false
}

// Units returns the keywords of all units.
func Units() []string {
	return unitNames[:]
}

// FromUnit converts a floating-point amount of some unit to a Dimen, rounding
// to the nearest scaled point. It is meant for constants and tests; input text
// is converted with FromDecimal.
func FromUnit(v float64, u Unit) Dimen {
	r := unitRatios[u]
	return Dimen(math.Round(v * float64(r.num) / float64(r.den) * float64(PT)))
}

// Pt is a shorthand for FromUnit(v, Point).
func Pt(v float64) Dimen {
	return FromUnit(v, Point)
}

// FromDecimal converts a decimal number, given as its integer part and the
// digits of its fractional part, to a Dimen of the given unit. It matches TeX
// to the scaled point: the fraction is rounded to 17 binary digits and units
// other than points are scaled with a rational multiplier.
func FromDecimal(integer int32, fraction string, u Unit) (Dimen, error) {
	if u == ScaledPoint {
		if integer > int32(Max) {
			return Max, ErrTooLarge
		}
		return Dimen(integer), nil
	}
	f := RoundDecimals(fraction)
	v := int64(integer)
	if u != Point {
		r := unitRatios[u]
		var rem int64
		v, rem = xnOverD(v, r.num, r.den)
		f = Dimen((r.num*int64(f) + int64(PT)*rem) / r.den)
		v += int64(f / PT)
		f %= PT
	}
	if v >= 1<<14 {
		return Max, ErrTooLarge
	}
	return Dimen(v)*PT + f, nil
}

// RoundDecimals converts the digits after a decimal point to a fraction of a
// point.
func RoundDecimals(digits string) Dimen {
	const two = 1 << 17
	if len(digits) > 17 {
		digits = digits[:17]
	}
	a := 0
	for i := len(digits) - 1; i >= 0; i-- {
		a = (a + int(digits[i]-'0')*two) / 10
	}
	return Dimen((a + 1) / 2)
}

func xnOverD(x, n, d int64) (int64, int64) {
	neg := x < 0
	if neg {
		x = -x
	}
	t := x * n
	q, r := t/d, t%d
	if neg {
		return -q, -r
	}
	return q, r
}

// Scale multiplies d by the integer n, reporting ErrTooLarge on overflow.
func (d Dimen) Scale(n int32) (Dimen, error) {
	v := int64(d) * int64(n)
	if v > int64(Max) || v < -int64(Max) {
		return Max, ErrTooLarge
	}
	return Dimen(v), nil
}

// MulDecimal multiplies d by a decimal number, given as its integer part and
// the digits of its fractional part, as in "1.5\parindent".
func (d Dimen) MulDecimal(integer int32, fraction string) (Dimen, error) {
	f := int64(RoundDecimals(fraction))
	whole := int64(d) * int64(integer)
	part, _ := xnOverD(int64(d), f, int64(PT))
	v := whole + part
	if v > int64(Max) || v < -int64(Max) {
		return Max, ErrTooLarge
	}
	return Dimen(v), nil
}

// String formats d in points with the shortest decimal fraction that reads
// back to the same value, such as "12.0pt" or "3.33333pt".
func (d Dimen) String() string {
	return Decimal(d) + "pt"
}

// Decimal formats d in points without a unit.
func Decimal(d Dimen) string {
	var sb strings.Builder
	s := int64(d)
	if s < 0 {
		sb.WriteByte('-')
		s = -s
	}
	writeInt(&sb, s/int64(PT))
	sb.WriteByte('.')
	unity := int64(PT)
	s = 10*(s%unity) + 5
	delta := int64(10)
	for {
		if delta > unity {
			// Round the last digit.
			s += 0x8000 - 50000
		}
		sb.WriteByte(byte('0' + s/unity))
		s = 10 * (s % unity)
		delta *= 10
		if s <= delta {
			break
		}
	}
	return sb.String()
}

func writeInt(sb *strings.Builder, n int64) {
	if n >= 10 {
		writeInt(sb, n/10)
	}
	sb.WriteByte(byte('0' + n%10))
}
