package parse

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
	"src.texel.sh/pkg/state"
	"src.texel.sh/pkg/token"
)

// Levels of internal quantities. A quantity can be used where one of a lower
// level is expected: glue is coerced to its space, dimensions to scaled
// points.
type level int

const (
	intLevel level = iota
	dimenLevel
	glueLevel
)

type quantity struct {
	level level
	i     int32
	d     dimen.Dimen
	g     glue.Glue
}

func (q quantity) asInt() int32 {
	switch q.level {
	case glueLevel:
		return int32(q.g.Space)
	case dimenLevel:
		return int32(q.d)
	}
	return q.i
}

func (q quantity) asDimen() dimen.Dimen {
	if q.level == glueLevel {
		return q.g.Space
	}
	return q.d
}

// internalLevel reports whether t starts an internal quantity, and its level.
func (p *Parser) internalLevel(t token.Token) (level, bool) {
	name := p.state.PrimitiveOf(t)
	switch name {
	case "count", "catcode":
		return intLevel, true
	case "dimen", "wd", "ht", "dp", "prevdepth":
		return dimenLevel, true
	case "skip":
		return glueLevel, true
	}
	switch state.Parameters[name] {
	case state.IntParam:
		return intLevel, true
	case state.DimenParam:
		return dimenLevel, true
	case state.GlueParam:
		return glueLevel, true
	}
	return 0, false
}

// readInternal consumes an internal quantity. The next token must start one.
func (p *Parser) readInternal() (quantity, error) {
	t, err := p.LexExpandedToken()
	if err != nil {
		return quantity{}, err
	}
	s := p.state
	name := s.PrimitiveOf(*t)
	switch name {
	case "count", "dimen", "skip", "wd", "ht", "dp":
		n, err := p.parseRegister()
		if err != nil {
			return quantity{}, err
		}
		switch name {
		case "count":
			return quantity{level: intLevel, i: s.Count(n)}, nil
		case "dimen":
			return quantity{level: dimenLevel, d: s.Dimen(n)}, nil
		case "skip":
			return quantity{level: glueLevel, g: s.Skip(n)}, nil
		}
		var d dimen.Dimen
		if b := s.Box(n); b != nil {
			d = map[string]dimen.Dimen{"wd": b.Width, "ht": b.Height, "dp": b.Depth}[name]
		}
		return quantity{level: dimenLevel, d: d}, nil
	case "catcode":
		r, err := p.parseCharCode()
		if err != nil {
			return quantity{}, err
		}
		return quantity{level: intLevel, i: int32(s.CategoryOf(r))}, nil
	case "prevdepth":
		return quantity{level: dimenLevel, d: s.PrevDepth()}, nil
	}
	switch state.Parameters[name] {
	case state.IntParam:
		return quantity{level: intLevel, i: s.IntParam(name)}, nil
	case state.DimenParam:
		return quantity{level: dimenLevel, d: s.DimenParam(name)}, nil
	case state.GlueParam:
		return quantity{level: glueLevel, g: s.GlueParam(name)}, nil
	}
	return quantity{}, p.errorf("you can't use %s as a quantity", t)
}

// peekInternal returns the level of the internal quantity at the head of the
// input, if there is one.
func (p *Parser) peekInternal() (level, bool, error) {
	t, err := p.PeekExpandedToken()
	if err != nil || t == nil {
		return 0, false, err
	}
	l, ok := p.internalLevel(*t)
	return l, ok, nil
}

// skipSpaces consumes space tokens after expansion.
func (p *Parser) skipSpaces() error {
	for {
		t, err := p.PeekExpandedToken()
		if err != nil || t == nil || !t.IsChar(token.Space) {
			return err
		}
		p.lx.Next()
	}
}

// parseOptionalSpace consumes one space token, if there is one.
func (p *Parser) parseOptionalSpace() error {
	t, err := p.PeekExpandedToken()
	if err == nil && t != nil && t.IsChar(token.Space) {
		p.lx.Next()
	}
	return err
}

// parseOptionalEquals skips spaces and an equals sign.
func (p *Parser) parseOptionalEquals() error {
	if err := p.skipSpaces(); err != nil {
		return err
	}
	t, err := p.PeekExpandedToken()
	if err == nil && t != nil && isOther(*t, '=') {
		p.lx.Next()
	}
	return err
}

// parseOptionalSigns reads any number of + and - signs and spaces, and reports
// whether the result is negative.
func (p *Parser) parseOptionalSigns() (bool, error) {
	neg := false
	for {
		if err := p.skipSpaces(); err != nil {
			return false, err
		}
		t, err := p.PeekExpandedToken()
		if err != nil {
			return false, err
		}
		switch {
		case t != nil && isOther(*t, '-'):
			neg = !neg
		case t != nil && isOther(*t, '+'):
		default:
			return neg, nil
		}
		p.lx.Next()
	}
}

// scanKeyword consumes the given keyword if it comes next, ignoring case and
// skipping spaces before it. If the keyword does not come next, nothing is
// consumed.
func (p *Parser) scanKeyword(kw string) (bool, error) {
	var matched []token.Token
	for i := 0; i < len(kw); {
		t, err := p.LexExpandedToken()
		if err != nil {
			return false, err
		}
		switch {
		case t == nil:
			p.lx.Unread(matched...)
			return false, nil
		case t.Kind == token.Char && unicode.ToLower(t.Rune) == rune(kw[i]):
			matched = append(matched, *t)
			i++
		case t.IsChar(token.Space) && len(matched) == 0:
		default:
			p.lx.Unread(append(matched, *t)...)
			return false, nil
		}
	}
	return true, nil
}

// ParseNumber parses an integer.
func (p *Parser) ParseNumber() (int32, error) {
	neg, err := p.parseOptionalSigns()
	if err != nil {
		return 0, err
	}
	var v int32
	if _, ok, err := p.peekInternal(); err != nil {
		return 0, err
	} else if ok {
		q, err := p.readInternal()
		if err != nil {
			return 0, err
		}
		v = q.asInt()
	} else {
		v, err = p.parseIntegerConstant()
		if err != nil {
			return 0, err
		}
	}
	if neg {
		v = -v
	}
	return v, nil
}

// parseIntegerConstant parses a decimal, octal (') or hexadecimal (")
// integer, or the character code of a token (`).
func (p *Parser) parseIntegerConstant() (int32, error) {
	t, err := p.PeekExpandedToken()
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, p.errorf("missing number, treated as zero")
	}
	radix := int64(10)
	switch {
	case isOther(*t, '`'):
		p.lx.Next()
		return p.parseAlphabeticConstant()
	case isOther(*t, '\''):
		p.lx.Next()
		radix = 8
	case isOther(*t, '"'):
		p.lx.Next()
		radix = 16
	}
	var v int64
	digits := 0
	for {
		t, err := p.PeekExpandedToken()
		if err != nil {
			return 0, err
		}
		if t == nil {
			break
		}
		d, ok := digitValue(*t, radix)
		if !ok {
			break
		}
		p.lx.Next()
		v = v*radix + d
		if v > math.MaxInt32 {
			return 0, p.errorf("number too big")
		}
		digits++
	}
	if digits == 0 {
		return 0, p.errorf("missing number, treated as zero")
	}
	return int32(v), p.parseOptionalSpace()
}

func (p *Parser) parseAlphabeticConstant() (int32, error) {
	t, err := p.lx.Next()
	if err != nil {
		return 0, err
	}
	var r rune
	switch {
	case t == nil:
		return 0, p.errorf("improper alphabetic constant")
	case t.Kind == token.ControlSequence:
		rs := []rune(t.Name)
		if len(rs) != 1 {
			return 0, p.errorf("improper alphabetic constant")
		}
		r = rs[0]
	default:
		r = t.Rune
	}
	return int32(r), p.parseOptionalSpace()
}

func digitValue(t token.Token, radix int64) (int64, bool) {
	if t.Kind != token.Char {
		return 0, false
	}
	r := t.Rune
	switch {
	case t.Cat == token.Other && '0' <= r && r <= '9' && int64(r-'0') < radix:
		return int64(r - '0'), true
	case radix == 16 && (t.Cat == token.Other || t.Cat == token.Letter) && 'A' <= r && r <= 'F':
		return int64(r-'A') + 10, true
	}
	return 0, false
}

func isOther(t token.Token, r rune) bool {
	return t.IsChar(token.Other) && t.Rune == r
}

// parseRegister parses the number of a register.
func (p *Parser) parseRegister() (int, error) {
	n, err := p.ParseNumber()
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= state.NumRegisters {
		return 0, p.errorf("bad register code (%d)", n)
	}
	return int(n), nil
}

func (p *Parser) parseCharCode() (rune, error) {
	n, err := p.ParseNumber()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > unicode.MaxRune {
		return 0, p.errorf("bad character code (%d)", n)
	}
	return rune(n), nil
}

// A factor is the number in front of a unit, as an integer part and the
// digits of the fractional part.
type factor struct {
	integer  int32
	fraction string
}

func (p *Parser) parseFactor() (factor, error) {
	t, err := p.PeekExpandedToken()
	if err != nil {
		return factor{}, err
	}
	if t != nil && (isOther(*t, '`') || isOther(*t, '\'') || isOther(*t, '"')) {
		n, err := p.parseIntegerConstant()
		return factor{integer: n}, err
	}
	var f factor
	digits, err := p.readDigits()
	if err != nil {
		return factor{}, err
	}
	if len(digits) > 0 {
		f.integer = decimalValue(digits)
	}
	t, err = p.PeekExpandedToken()
	if err != nil {
		return factor{}, err
	}
	if t != nil && (isOther(*t, '.') || isOther(*t, ',')) {
		p.lx.Next()
		f.fraction, err = p.readDigits()
		if err != nil {
			return factor{}, err
		}
	} else if len(digits) == 0 {
		return factor{}, p.errorf("missing number, treated as zero")
	}
	return f, nil
}

func (p *Parser) readDigits() (string, error) {
	var sb strings.Builder
	for {
		t, err := p.PeekExpandedToken()
		if err != nil {
			return "", err
		}
		if t == nil {
			return sb.String(), nil
		}
		if _, ok := digitValue(*t, 10); !ok {
			return sb.String(), nil
		}
		p.lx.Next()
		sb.WriteRune(t.Rune)
	}
}

// decimalValue returns the value of a string of digits, saturating at a value
// that is too large for any dimension.
func decimalValue(digits string) int32 {
	var v int32
	for _, r := range digits {
		v = v*10 + (r - '0')
		if v >= 1<<24 {
			return 1 << 24
		}
	}
	return v
}

// ParseDimen parses a dimension.
func (p *Parser) ParseDimen() (dimen.Dimen, error) {
	neg, err := p.parseOptionalSigns()
	if err != nil {
		return 0, err
	}
	s, err := p.parseUnsignedDimen(neg, false)
	return s.Value, err
}

// parseSpring parses the stretch or shrink component of glue, which may be
// infinite.
func (p *Parser) parseSpring() (dimen.Spring, error) {
	neg, err := p.parseOptionalSigns()
	if err != nil {
		return dimen.Spring{}, err
	}
	return p.parseUnsignedDimen(neg, true)
}

func (p *Parser) parseUnsignedDimen(neg, fil bool) (dimen.Spring, error) {
	l, ok, err := p.peekInternal()
	if err != nil {
		return dimen.Spring{}, err
	}
	var f factor
	if ok {
		q, err := p.readInternal()
		if err != nil {
			return dimen.Spring{}, err
		}
		if l >= dimenLevel {
			return dimen.Finite(negate(q.asDimen(), neg)), nil
		}
		f.integer = q.i
	} else {
		f, err = p.parseFactor()
		if err != nil {
			return dimen.Spring{}, err
		}
	}
	return p.parseUnit(neg, f, fil)
}

// parseUnit parses the unit after a factor.
func (p *Parser) parseUnit(neg bool, f factor, fil bool) (dimen.Spring, error) {
	if f.integer < 0 {
		neg, f.integer = !neg, -f.integer
	}
	if fil {
		if ok, err := p.scanKeyword("fil"); err != nil {
			return dimen.Spring{}, err
		} else if ok {
			order := dimen.Fil
			for {
				more, err := p.scanKeyword("l")
				if err != nil {
					return dimen.Spring{}, err
				}
				if !more {
					break
				}
				if order == dimen.Filll {
					return dimen.Spring{}, p.errorf("illegal unit of measure (replaced by filll)")
				}
				order++
			}
			d, err := p.fromDecimal(f, dimen.Point)
			if err != nil {
				return dimen.Spring{}, err
			}
			return dimen.Infinite(order, negate(d, neg)), p.parseOptionalSpace()
		}
	}

	if err := p.skipSpaces(); err != nil {
		return dimen.Spring{}, err
	}
	if l, ok, err := p.peekInternal(); err != nil {
		return dimen.Spring{}, err
	} else if ok && l >= dimenLevel {
		q, err := p.readInternal()
		if err != nil {
			return dimen.Spring{}, err
		}
		d, err := q.asDimen().MulDecimal(f.integer, f.fraction)
		if err != nil {
			return dimen.Spring{}, p.errorf("dimension too large")
		}
		return dimen.Finite(negate(d, neg)), nil
	}

	if _, err := p.scanKeyword("true"); err != nil {
		return dimen.Spring{}, err
	}
	for _, name := range dimen.Units() {
		ok, err := p.scanKeyword(name)
		if err != nil {
			return dimen.Spring{}, err
		}
		if !ok {
			continue
		}
		u, _ := dimen.ParseUnit(name)
		d, err := p.fromDecimal(f, u)
		if err != nil {
			return dimen.Spring{}, err
		}
		return dimen.Finite(negate(d, neg)), p.parseOptionalSpace()
	}
	return dimen.Spring{}, p.errorf("illegal unit of measure (pt inserted)")
}

func (p *Parser) fromDecimal(f factor, u dimen.Unit) (dimen.Dimen, error) {
	d, err := dimen.FromDecimal(f.integer, f.fraction, u)
	if errors.Is(err, dimen.ErrTooLarge) {
		return 0, p.errorf("dimension too large")
	}
	return d, err
}

func negate(d dimen.Dimen, neg bool) dimen.Dimen {
	if neg {
		return -d
	}
	return d
}

// ParseGlue parses glue: a dimension optionally followed by "plus" and
// "minus" components, or an internal glue quantity.
func (p *Parser) ParseGlue() (glue.Glue, error) {
	neg, err := p.parseOptionalSigns()
	if err != nil {
		return glue.Glue{}, err
	}
	var g glue.Glue
	if l, ok, err := p.peekInternal(); err != nil {
		return glue.Glue{}, err
	} else if ok && l == glueLevel {
		q, err := p.readInternal()
		if err != nil {
			return glue.Glue{}, err
		}
		if neg {
			return q.g.Neg(), nil
		}
		return q.g, nil
	}
	space, err := p.parseUnsignedDimen(neg, false)
	if err != nil {
		return glue.Glue{}, err
	}
	g.Space = space.Value
	if ok, err := p.scanKeyword("plus"); err != nil {
		return glue.Glue{}, err
	} else if ok {
		if g.Stretch, err = p.parseSpring(); err != nil {
			return glue.Glue{}, err
		}
	}
	if ok, err := p.scanKeyword("minus"); err != nil {
		return glue.Glue{}, err
	} else if ok {
		if g.Shrink, err = p.parseSpring(); err != nil {
			return glue.Glue{}, err
		}
	}
	return g, nil
}
