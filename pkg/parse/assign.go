package parse

import (
	"src.texel.sh/pkg/state"
	"src.texel.sh/pkg/token"
)

var assignmentPrims = map[string]bool{
	"def": true, "gdef": true, "let": true, "global": true, "catcode": true,
	"setbox": true, "wd": true, "ht": true, "dp": true,
	"count": true, "dimen": true, "skip": true, "prevdepth": true,
}

func (p *Parser) isAssignmentPrim(t token.Token) bool {
	name := p.state.PrimitiveOf(t)
	return assignmentPrims[name] || state.Parameters[name] != 0
}

// IsAssignmentHead reports whether the next token starts an assignment.
func (p *Parser) IsAssignmentHead() (bool, error) {
	t, err := p.PeekExpandedToken()
	if err != nil || t == nil {
		return false, err
	}
	return p.isAssignmentPrim(*t), nil
}

// ParseAssignment executes the assignment at the head of the input.
func (p *Parser) ParseAssignment() error {
	global := false
	for {
		t, err := p.LexExpandedToken()
		if err != nil {
			return err
		}
		if t == nil {
			return p.errorf("end of input in assignment")
		}
		name := p.state.PrimitiveOf(*t)
		if name != "global" {
			return p.assign(*t, name, global)
		}
		global = true
		next, err := p.PeekExpandedToken()
		if err != nil {
			return err
		}
		if next == nil || !p.isAssignmentPrim(*next) {
			return p.errorf("you can't use a prefix with %s", describe(next))
		}
	}
}

func describe(t *token.Token) string {
	if t == nil {
		return "end of input"
	}
	return t.String()
}

func (p *Parser) assign(t token.Token, name string, global bool) error {
	s := p.state
	switch name {
	case "def", "gdef":
		return p.parseDefinition(global || name == "gdef")
	case "let":
		return p.parseLet(global)
	case "catcode":
		r, err := p.parseCharCode()
		if err != nil {
			return err
		}
		if err := p.parseOptionalEquals(); err != nil {
			return err
		}
		c, err := p.ParseNumber()
		if err != nil {
			return err
		}
		if c < 0 || c > int32(token.Invalid) {
			return p.errorf("invalid code (%d), should be between 0 and %d", c, token.Invalid)
		}
		s.SetCategory(r, token.Category(c), global)
		return nil
	case "setbox":
		n, err := p.parseRegister()
		if err != nil {
			return err
		}
		if err := p.parseOptionalEquals(); err != nil {
			return err
		}
		if ok, err := p.IsBoxHead(); err != nil {
			return err
		} else if !ok {
			return p.errorf("a <box> was supposed to be here")
		}
		b, err := p.ParseBox()
		if err != nil {
			return err
		}
		s.SetBox(n, b, global)
		return nil
	case "prevdepth":
		if err := p.parseOptionalEquals(); err != nil {
			return err
		}
		d, err := p.ParseDimen()
		if err != nil {
			return err
		}
		s.SetPrevDepth(d)
		return nil
	case "count", "dimen", "skip", "wd", "ht", "dp":
		return p.assignRegister(name, global)
	}

	if err := p.parseOptionalEquals(); err != nil {
		return err
	}
	switch state.Parameters[name] {
	case state.IntParam:
		v, err := p.ParseNumber()
		if err != nil {
			return err
		}
		s.SetIntParam(name, v, global)
	case state.DimenParam:
		v, err := p.ParseDimen()
		if err != nil {
			return err
		}
		s.SetDimenParam(name, v, global)
	case state.GlueParam:
		v, err := p.ParseGlue()
		if err != nil {
			return err
		}
		s.SetGlueParam(name, v, global)
	default:
		return p.errorf("%s is not an assignment", t)
	}
	return nil
}

func (p *Parser) assignRegister(name string, global bool) error {
	s := p.state
	n, err := p.parseRegister()
	if err != nil {
		return err
	}
	if err := p.parseOptionalEquals(); err != nil {
		return err
	}
	switch name {
	case "count":
		v, err := p.ParseNumber()
		if err != nil {
			return err
		}
		s.SetCount(n, v, global)
	case "skip":
		v, err := p.ParseGlue()
		if err != nil {
			return err
		}
		s.SetSkip(n, v, global)
	default:
		v, err := p.ParseDimen()
		if err != nil {
			return err
		}
		switch name {
		case "dimen":
			s.SetDimen(n, v, global)
		case "wd":
			s.SetBoxDimen(n, state.Width, v)
		case "ht":
			s.SetBoxDimen(n, state.Height, v)
		case "dp":
			s.SetBoxDimen(n, state.Depth, v)
		}
	}
	return nil
}

// parseLet reads the rest of \let: a control sequence, an optional equals
// sign with one optional space after it, and the token whose meaning is
// copied.
func (p *Parser) parseLet(global bool) error {
	name, err := p.readDefinable()
	if err != nil {
		return err
	}
	t, err := p.nextNonSpace()
	if err != nil {
		return err
	}
	if t != nil && isOther(*t, '=') {
		t, err = p.lx.Next()
		if err == nil && t != nil && t.IsChar(token.Space) {
			t, err = p.lx.Next()
		}
		if err != nil {
			return err
		}
	}
	if t == nil {
		return p.errorf(`end of input in \let`)
	}
	var m state.Meaning
	if t.IsCS() {
		m = p.state.Meaning(*t)
	} else {
		m = state.Let{Token: *t}
	}
	p.state.SetMeaning(name, m, global)
	logger.Printf("let %s = %s", name, t)
	return nil
}

// nextNonSpace reads unexpanded tokens until one that is not a space.
func (p *Parser) nextNonSpace() (*token.Token, error) {
	for {
		t, err := p.lx.Next()
		if err != nil || t == nil || !t.IsChar(token.Space) {
			return t, err
		}
	}
}

// SetParameter reads the whole input as the value of the named parameter and
// assigns it locally. Anything but spaces after the value is an error, and
// leaves the parameter unchanged.
func (p *Parser) SetParameter(name string) error {
	var set func()
	switch state.Parameters[name] {
	case state.IntParam:
		v, err := p.ParseNumber()
		if err != nil {
			return err
		}
		set = func() { p.state.SetIntParam(name, v, false) }
	case state.DimenParam:
		v, err := p.ParseDimen()
		if err != nil {
			return err
		}
		set = func() { p.state.SetDimenParam(name, v, false) }
	case state.GlueParam:
		v, err := p.ParseGlue()
		if err != nil {
			return err
		}
		set = func() { p.state.SetGlueParam(name, v, false) }
	default:
		return p.errorf(`\%s is not a parameter`, name)
	}
	if err := p.skipSpaces(); err != nil {
		return err
	}
	t, err := p.LexExpandedToken()
	if err != nil {
		return err
	}
	if t != nil {
		return p.errorf(`unexpected %s after the value of \%s`, t, name)
	}
	set()
	return nil
}
