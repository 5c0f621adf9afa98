package dimen

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a length written as an optionally signed decimal number and a
// unit, such as "6.94444pt" or "-1 in". It is meant for configuration and
// data files; document text goes through the full grammar of the parser.
func Parse(s string) (Dimen, error) {
	v, rest, err := parseAmount(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	u, ok := ParseUnit(strings.TrimSpace(rest))
	if !ok {
		return 0, fmt.Errorf("bad unit %q in %q", rest, s)
	}
	return v.in(u)
}

type amount struct {
	neg      bool
	integer  int32
	fraction string
}

func (a amount) in(u Unit) (Dimen, error) {
	d, err := FromDecimal(a.integer, a.fraction, u)
	if a.neg {
		d = -d
	}
	return d, err
}

// parseAmount parses a signed decimal number at the start of s and returns
// the rest.
func parseAmount(s string) (amount, string, error) {
	var a amount
	for len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			a.neg = !a.neg
		}
		s = s[1:]
	}
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	intPart := s[:i]
	s = s[i:]
	if len(s) > 0 && (s[0] == '.' || s[0] == ',') {
		s = s[1:]
		j := 0
		for j < len(s) && '0' <= s[j] && s[j] <= '9' {
			j++
		}
		a.fraction, s = s[:j], s[j:]
	}
	if intPart == "" && a.fraction == "" {
		return a, s, fmt.Errorf("missing number in %q", s)
	}
	if intPart != "" {
		n, err := strconv.ParseInt(intPart, 10, 32)
		if err != nil || n > 1<<30 {
			return a, s, ErrTooLarge
		}
		a.integer = int32(n)
	}
	return a, s, nil
}

// ParseSpring parses the stretch or shrink part of glue: a length, or an
// amount followed by "fil", "fill" or "filll".
func ParseSpring(s string) (Spring, error) {
	s = strings.TrimSpace(s)
	a, rest, err := parseAmount(s)
	if err != nil {
		return Spring{}, err
	}
	rest = strings.ToLower(strings.TrimSpace(rest))
	for o := Filll; o >= Fil; o-- {
		if rest == o.String() {
			v, err := a.in(Point)
			return Spring{o, v}, err
		}
	}
	d, err := Parse(s)
	return Finite(d), err
}
