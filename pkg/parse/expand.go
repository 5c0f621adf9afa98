package parse

import (
	"src.texel.sh/pkg/state"
	"src.texel.sh/pkg/token"
)

// PeekExpandedToken expands the head of the input until it is an unexpandable
// token and returns that token without consuming it. It returns nil at the end
// of input.
func (p *Parser) PeekExpandedToken() (*token.Token, error) {
	for {
		t, err := p.lx.Next()
		if err != nil || t == nil {
			return nil, err
		}
		expanded, err := p.expand(*t)
		if err != nil {
			return nil, err
		}
		if !expanded {
			p.lx.Unread(*t)
			return t, nil
		}
	}
}

// LexExpandedToken is like PeekExpandedToken, but consumes the token.
func (p *Parser) LexExpandedToken() (*token.Token, error) {
	t, err := p.PeekExpandedToken()
	if err != nil || t == nil {
		return nil, err
	}
	return p.lx.Next()
}

// ResolveImplicit returns the character token that t has been \let to, or t
// itself if it is not an implicit character.
func (p *Parser) ResolveImplicit(t token.Token) token.Token {
	if l, ok := p.state.Meaning(t).(state.Let); ok {
		return l.Token
	}
	return t
}

// expand expands t, which has just been read, pushing its expansion back to
// the input. It reports false if t is not expandable.
func (p *Parser) expand(t token.Token) (bool, error) {
	if !t.IsCS() {
		return false, nil
	}
	switch m := p.state.Meaning(t).(type) {
	case nil:
		return false, p.errorf("undefined control sequence")
	case *state.Macro:
		return true, p.expandMacro(t, m)
	case state.Primitive:
		if m == "expandafter" {
			return true, p.expandAfter()
		}
	}
	return false, nil
}

// expandAfter reads two tokens and expands the second once.
func (p *Parser) expandAfter() error {
	first, err := p.lx.Next()
	if err != nil {
		return err
	}
	if first == nil {
		return p.errorf(`end of input after \expandafter`)
	}
	second, err := p.lx.Next()
	if err != nil {
		return err
	}
	if second != nil {
		expanded, err := p.expand(*second)
		if err != nil {
			return err
		}
		if !expanded {
			p.lx.Unread(*second)
		}
	}
	p.lx.Unread(*first)
	return nil
}

func (p *Parser) expandMacro(name token.Token, m *state.Macro) error {
	args := make([][]token.Token, m.Params)
	for i := range args {
		arg, err := p.readArgument(name)
		if err != nil {
			return err
		}
		args[i] = arg
	}
	var expansion []token.Token
	for _, t := range m.Body {
		if t.IsChar(token.Parameter) && '1' <= t.Rune && t.Rune <= '9' {
			expansion = append(expansion, args[t.Rune-'1']...)
		} else {
			expansion = append(expansion, t)
		}
	}
	p.lx.Unread(expansion...)
	return nil
}

// readArgument reads an undelimited macro argument: a single token, or a
// balanced group without its outer braces. Spaces before the argument are
// skipped.
func (p *Parser) readArgument(name token.Token) ([]token.Token, error) {
	for {
		t, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case t == nil:
			return nil, p.errorf("end of input while scanning use of %s", name)
		case t.IsChar(token.Space):
			continue
		case t.IsChar(token.EndGroup):
			return nil, p.errorf("argument of %s has an extra }", name)
		case isParToken(*t):
			return nil, p.errorf("paragraph ended before %s was complete", name)
		case t.IsChar(token.BeginGroup):
			return p.readBalanced(name)
		default:
			return []token.Token{*t}, nil
		}
	}
}

// readBalanced reads tokens up to the } that matches an already read {. The
// closing brace is consumed but not returned.
func (p *Parser) readBalanced(name token.Token) ([]token.Token, error) {
	var toks []token.Token
	depth := 0
	for {
		t, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case t == nil:
			return nil, p.errorf("end of input while scanning use of %s", name)
		case isParToken(*t):
			return nil, p.errorf("paragraph ended before %s was complete", name)
		case t.IsChar(token.BeginGroup):
			depth++
		case t.IsChar(token.EndGroup):
			if depth == 0 {
				return toks, nil
			}
			depth--
		}
		toks = append(toks, *t)
	}
}

func isParToken(t token.Token) bool {
	return t.Kind == token.ControlSequence && t.Name == "par"
}

// parseDefinition reads the rest of \def: the name, the parameter text and
// the replacement text.
func (p *Parser) parseDefinition(global bool) error {
	name, err := p.readDefinable()
	if err != nil {
		return err
	}
	params := 0
	for {
		t, err := p.lx.Next()
		if err != nil {
			return err
		}
		if t == nil {
			return p.errorf("end of input while scanning definition of %s", name)
		}
		if t.IsChar(token.BeginGroup) {
			break
		}
		if !t.IsChar(token.Parameter) {
			return p.errorf("delimited parameters are not supported")
		}
		n, err := p.lx.Next()
		if err != nil {
			return err
		}
		if n == nil || n.Kind != token.Char || n.Rune != rune('1'+params) {
			return p.errorf("parameters must be numbered consecutively")
		}
		params++
	}

	var body []token.Token
	depth := 0
	for {
		t, err := p.lx.Next()
		if err != nil {
			return err
		}
		if t == nil {
			return p.errorf("end of input while scanning definition of %s", name)
		}
		switch {
		case t.IsChar(token.BeginGroup):
			depth++
		case t.IsChar(token.EndGroup):
			if depth == 0 {
				p.state.SetMeaning(name, &state.Macro{Params: params, Body: body}, global)
				logger.Printf("defined %s with %d parameters", name, params)
				return nil
			}
			depth--
		case t.IsChar(token.Parameter):
			n, err := p.lx.Next()
			if err != nil {
				return err
			}
			switch {
			case n != nil && n.IsChar(token.Parameter):
				// ## stands for the parameter character itself.
				body = append(body, *n)
				continue
			case n != nil && n.Kind == token.Char && '1' <= n.Rune && n.Rune < rune('1'+params):
				body = append(body, token.NewChar(n.Rune, token.Parameter))
				continue
			default:
				return p.errorf("illegal parameter number in definition of %s", name)
			}
		}
		body = append(body, *t)
	}
}

// readDefinable reads a control sequence or active character that is about
// to be given a meaning, skipping spaces before it.
func (p *Parser) readDefinable() (token.Token, error) {
	for {
		t, err := p.lx.Next()
		if err != nil {
			return token.Token{}, err
		}
		if t == nil {
			return token.Token{}, p.errorf("missing control sequence inserted")
		}
		if t.IsChar(token.Space) {
			continue
		}
		if !t.IsCS() {
			return token.Token{}, p.errorf("missing control sequence inserted")
		}
		return *t, nil
	}
}
