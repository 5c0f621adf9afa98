package parse

import (
	"src.texel.sh/pkg/box"
	"src.texel.sh/pkg/token"
	"src.texel.sh/pkg/vlist"
)

var boxPrims = map[string]bool{"hbox": true, "vbox": true, "box": true, "copy": true}

// IsBoxHead reports whether the next token starts a box.
func (p *Parser) IsBoxHead() (bool, error) {
	t, err := p.PeekExpandedToken()
	if err != nil || t == nil {
		return false, err
	}
	return boxPrims[p.state.PrimitiveOf(*t)], nil
}

// ParseBox parses a box. It returns nil if the box is taken from a void
// register.
func (p *Parser) ParseBox() (*box.Box, error) {
	t, err := p.LexExpandedToken()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, p.errorf("a <box> was supposed to be here")
	}
	switch name := p.state.PrimitiveOf(*t); name {
	case "box", "copy":
		n, err := p.parseRegister()
		if err != nil {
			return nil, err
		}
		if name == "box" {
			return p.state.TakeBox(n), nil
		}
		return p.state.Box(n), nil
	case "hbox", "vbox":
		b, err := p.parseBoxContents(name)
		if err != nil {
			return nil, err
		}
		logger.Printf("built %s", b.Summary())
		return &b, nil
	}
	return nil, p.errorf("a <box> was supposed to be here")
}

// parseBoxContents parses the braced contents of \hbox or \vbox in a group of
// their own.
func (p *Parser) parseBoxContents(name string) (box.Box, error) {
	if err := p.parseLeftBrace(); err != nil {
		return box.Box{}, err
	}
	p.state.PushState()
	defer p.state.PopState()

	var b box.Box
	if name == "hbox" {
		list, err := p.parseHorizontalList(true)
		if err != nil {
			return box.Box{}, err
		}
		b = box.NewHBox(list)
	} else {
		list, err := vlist.Build(p, true)
		if err != nil {
			return box.Box{}, err
		}
		b = box.NewVBox(list)
	}

	t, err := p.LexExpandedToken()
	if err != nil {
		return box.Box{}, err
	}
	if t == nil || !p.ResolveImplicit(*t).IsChar(token.EndGroup) {
		return box.Box{}, p.errorf(`end of input inside \%s`, name)
	}
	return b, nil
}

// parseLeftBrace skips spaces and \relax and consumes a {, explicit or
// implicit.
func (p *Parser) parseLeftBrace() error {
	for {
		t, err := p.LexExpandedToken()
		if err != nil {
			return err
		}
		switch {
		case t == nil:
			return p.errorf("missing { inserted")
		case t.IsChar(token.Space), p.IsTokenEqualToPrim(*t, "relax"):
			continue
		case p.ResolveImplicit(*t).IsChar(token.BeginGroup):
			return nil
		default:
			return p.errorf("missing { inserted")
		}
	}
}

// ParseUnrestrictedHorizontalBox typesets a paragraph into one box. The
// paragraph starts with an empty box of width \parindent if indent is true,
// and ends at \par, which is consumed, or before the end of input, an
// unmatched } or a command that only makes sense in vertical mode. Glue at
// the end of the paragraph is removed.
func (p *Parser) ParseUnrestrictedHorizontalBox(indent bool) (box.Box, error) {
	var list []box.HorizontalElem
	if indent {
		list = append(list, box.Empty(p.state.DimenParam("parindent")))
	}
	rest, err := p.parseHorizontalList(false)
	if err != nil {
		return box.Box{}, err
	}
	list = append(list, rest...)
	for len(list) > 0 {
		if _, ok := list[len(list)-1].(box.HSkip); !ok {
			break
		}
		list = list[:len(list)-1]
	}
	b := box.NewHBox(list)
	logger.Printf("built paragraph %s", b.Summary())
	return b, nil
}

// parseHorizontalList reads horizontal material. A restricted list, the
// contents of an \hbox, ends before an unmatched }. An unrestricted list, a
// paragraph, also ends at \par and before the end of input and \vskip or
// \end. Groups opened within the list and still open at its end are closed.
func (p *Parser) parseHorizontalList(restricted bool) ([]box.HorizontalElem, error) {
	var list []box.HorizontalElem
	level := 0
	defer func() {
		for ; level > 0; level-- {
			p.state.PopState()
		}
	}()
	for {
		t, err := p.PeekExpandedToken()
		if err != nil {
			return nil, err
		}
		if t == nil {
			if restricted {
				return nil, p.errorf(`end of input inside \hbox`)
			}
			return list, nil
		}
		tok := p.ResolveImplicit(*t)
		switch {
		case tok.IsChar(token.Letter), tok.IsChar(token.Other):
			p.lx.Next()
			if c, ok := p.char(tok.Rune); ok {
				list = append(list, c)
			}
		case tok.IsChar(token.Space):
			p.lx.Next()
			list = append(list, box.HSkip{Glue: p.font.SpaceGlue()})
		case tok.IsChar(token.BeginGroup):
			p.lx.Next()
			level++
			p.state.PushState()
		case tok.IsChar(token.EndGroup):
			if level == 0 {
				return list, nil
			}
			p.lx.Next()
			level--
			p.state.PopState()
		case p.IsTokenEqualToPrim(tok, "hskip"):
			p.lx.Next()
			g, err := p.ParseGlue()
			if err != nil {
				return nil, err
			}
			list = append(list, box.HSkip{Glue: g})
		case p.IsTokenEqualToPrim(tok, "par"):
			p.lx.Next()
			if !restricted {
				return list, nil
			}
		case p.IsTokenEqualToPrim(tok, "relax"), p.IsTokenEqualToPrim(tok, "noindent"):
			p.lx.Next()
		case p.IsTokenEqualToPrim(tok, "indent"):
			p.lx.Next()
			list = append(list, box.Empty(p.state.DimenParam("parindent")))
		case p.IsTokenEqualToPrim(tok, "vskip"), p.IsTokenEqualToPrim(tok, "end"):
			if restricted {
				return nil, p.errorf(`you can't use %s in restricted horizontal mode`, tok)
			}
			return list, nil
		default:
			done, err := p.horizontalCommand(&list)
			if err != nil {
				return nil, err
			}
			if !done {
				return nil, p.errorf("unrecognized construct in horizontal mode: %s", tok)
			}
		}
	}
}

// horizontalCommand executes an assignment or adds a box to a horizontal
// list. It reports false if the next token starts neither.
func (p *Parser) horizontalCommand(list *[]box.HorizontalElem) (bool, error) {
	if ok, err := p.IsAssignmentHead(); err != nil || ok {
		if err != nil {
			return false, err
		}
		return true, p.ParseAssignment()
	}
	if ok, err := p.IsBoxHead(); err != nil || ok {
		if err != nil {
			return false, err
		}
		b, err := p.ParseBox()
		if err == nil && b != nil {
			*list = append(*list, *b)
		}
		return true, err
	}
	return false, nil
}

// char looks up the metrics of a character. Characters missing from the font
// are dropped with a warning.
func (p *Parser) char(r rune) (box.Char, bool) {
	m, ok := p.font.Metrics(r)
	if !ok {
		p.warnf("missing character: there is no %c in the font", r)
		return box.Char{}, false
	}
	return box.Char{Rune: r, Width: m.Width, Height: m.Height, Depth: m.Depth}, true
}
