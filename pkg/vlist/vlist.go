// Package vlist builds vertical lists.
//
// The builder reads expanded tokens from an Engine and turns them into a
// list of boxes and vertical glue. Characters and \hskip start a paragraph,
// which the Engine typesets into one box; \vskip adds glue; braces open and
// close groups; assignments are executed by the Engine. Between two boxes the
// builder inserts interline glue computed from \baselineskip, \lineskip and
// \lineskiplimit.
package vlist

import (
	"src.texel.sh/pkg/box"
	"src.texel.sh/pkg/diag"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
	"src.texel.sh/pkg/logutil"
	"src.texel.sh/pkg/token"
)

var logger = logutil.GetLogger("[vlist] ")

// Engine is what the builder needs from an interpreter session.
type Engine interface {
	// PeekExpandedToken returns the next token after expansion without
	// consuming it, or nil at the end of input.
	PeekExpandedToken() (*token.Token, error)
	// LexExpandedToken consumes and returns the next token after expansion.
	LexExpandedToken() (*token.Token, error)
	// IsTokenEqualToPrim reports whether t currently means the named
	// primitive.
	IsTokenEqualToPrim(t token.Token, name string) bool
	// ResolveImplicit returns the character token that t was \let to, or t
	// itself.
	ResolveImplicit(t token.Token) token.Token

	IsAssignmentHead() (bool, error)
	ParseAssignment() error
	IsBoxHead() (bool, error)
	// ParseBox returns a nil box when the command produces nothing, such as
	// \box of a void register.
	ParseBox() (*box.Box, error)
	ParseUnrestrictedHorizontalBox(indent bool) (box.Box, error)
	ParseGlue() (glue.Glue, error)

	PushState()
	PopState()

	Params() Params
	PrevDepth() dimen.Dimen
	SetPrevDepth(dimen.Dimen)
}

// Params are the parameters of interline glue.
type Params struct {
	BaselineSkip  glue.Glue
	LineSkip      glue.Glue
	LineSkipLimit dimen.Dimen
}

// Contexter is implemented by engines that can tell where in the source the
// most recently read token is. Errors from Build carry that context.
type Contexter interface {
	LastContext() *diag.Context
}

// Build reads a vertical list from e.
//
// At the top level (internal is false) the list must end with \end, which is
// consumed. An internal list, such as the contents of a \vbox, ends at the
// end of input or at an unmatched }, which is left unread; \end is an error
// there.
//
// Build starts with \prevdepth set to box.IgnoreDepth and restores the
// caller's \prevdepth when it returns. Groups opened and not closed by the
// list are closed before Build returns.
func Build(e Engine, internal bool) ([]box.VerticalElem, error) {
	saved := e.PrevDepth()
	e.SetPrevDepth(box.IgnoreDepth)
	defer e.SetPrevDepth(saved)

	b := &builder{e: e, internal: internal}
	defer b.closeGroups()
	for {
		elem, err := b.next()
		if err != nil {
			return nil, err
		}
		if elem == nil {
			return b.list, nil
		}
		if bx, ok := elem.(box.Box); ok {
			b.appendBox(bx)
		} else {
			b.list = append(b.list, elem)
		}
	}
}

type builder struct {
	e        Engine
	internal bool
	// Number of groups opened by this list and not yet closed.
	level int
	list  []box.VerticalElem
}

// next dispatches on the next token until it has an element of the list. It
// returns nil when the list ends.
func (b *builder) next() (box.VerticalElem, error) {
	e := b.e
	for {
		t, err := e.PeekExpandedToken()
		if err != nil {
			return nil, err
		}
		if t == nil {
			if b.internal {
				return nil, nil
			}
			return nil, b.error(PrematureEOF, nil)
		}
		tok := e.ResolveImplicit(*t)

		switch {
		case b.isHorizontalHead(tok):
			return b.enterHorizontal(true)
		case tok.Kind == token.Char:
			switch tok.Cat {
			case token.Space:
				if _, err := e.LexExpandedToken(); err != nil {
					return nil, err
				}
			case token.BeginGroup:
				if _, err := e.LexExpandedToken(); err != nil {
					return nil, err
				}
				b.level++
				e.PushState()
			case token.EndGroup:
				if b.level == 0 {
					if b.internal {
						return nil, nil
					}
					return nil, b.error(UnbalancedClose, nil)
				}
				if _, err := e.LexExpandedToken(); err != nil {
					return nil, err
				}
				b.level--
				e.PopState()
			default:
				return nil, b.error(Unrecognized, &tok)
			}
		case e.IsTokenEqualToPrim(tok, "end"):
			if b.internal {
				return nil, b.error(ForbiddenEnd, nil)
			}
			if _, err := e.LexExpandedToken(); err != nil {
				return nil, err
			}
			return nil, nil
		case e.IsTokenEqualToPrim(tok, "par"), e.IsTokenEqualToPrim(tok, "relax"):
			if _, err := e.LexExpandedToken(); err != nil {
				return nil, err
			}
		case e.IsTokenEqualToPrim(tok, "vskip"):
			if _, err := e.LexExpandedToken(); err != nil {
				return nil, err
			}
			g, err := e.ParseGlue()
			if err != nil {
				return nil, err
			}
			return box.VSkip{Glue: g}, nil
		default:
			elem, ok, err := b.command(tok)
			if err != nil || ok {
				return elem, err
			}
		}
	}
}

// command handles the commands that are not recognized by their meaning
// alone. It returns ok = false when there is nothing to add to the list yet.
func (b *builder) command(tok token.Token) (elem box.VerticalElem, ok bool, err error) {
	e := b.e
	if isAssignment, err := e.IsAssignmentHead(); err != nil {
		return nil, false, err
	} else if isAssignment {
		return nil, false, e.ParseAssignment()
	}

	if e.IsTokenEqualToPrim(tok, "indent") || e.IsTokenEqualToPrim(tok, "noindent") {
		if _, err := e.LexExpandedToken(); err != nil {
			return nil, false, err
		}
		elem, err := b.enterHorizontal(e.IsTokenEqualToPrim(tok, "indent"))
		return elem, true, err
	}

	if isBox, err := e.IsBoxHead(); err != nil {
		return nil, false, err
	} else if isBox {
		bx, err := e.ParseBox()
		if err != nil || bx == nil {
			return nil, false, err
		}
		return *bx, true, nil
	}

	return nil, false, b.error(Unrecognized, &tok)
}

func (b *builder) isHorizontalHead(tok token.Token) bool {
	return tok.IsChar(token.Letter) || tok.IsChar(token.Other) ||
		b.e.IsTokenEqualToPrim(tok, "hskip")
}

// enterHorizontal typesets a paragraph. The paragraph always becomes a single
// box; \parskip glue is not added.
func (b *builder) enterHorizontal(indent bool) (box.VerticalElem, error) {
	bx, err := b.e.ParseUnrestrictedHorizontalBox(indent)
	if err != nil {
		return nil, err
	}
	return bx, nil
}

// appendBox adds a box to the list, preceded by interline glue unless
// \prevdepth is box.IgnoreDepth.
func (b *builder) appendBox(bx box.Box) {
	if prev := b.e.PrevDepth(); prev != box.IgnoreDepth {
		g := InterlineGlue(b.e.Params(), prev, bx.Height)
		b.list = append(b.list, box.VSkip{Glue: g})
	}
	b.e.SetPrevDepth(bx.Depth)
	b.list = append(b.list, bx)
	logger.Printf("appended %s", bx.Summary())
}

// InterlineGlue returns the glue between a box whose depth is prevDepth and a
// following box of the given height. It is \baselineskip minus both, unless
// that would make the space less than \lineskiplimit, in which case it is
// \lineskip.
func InterlineGlue(p Params, prevDepth, height dimen.Dimen) glue.Glue {
	total := p.BaselineSkip.Sub(glue.FromDimen(height + prevDepth))
	if total.Space < p.LineSkipLimit {
		return p.LineSkip
	}
	return total
}

func (b *builder) closeGroups() {
	if b.level > 0 {
		logger.Printf("closing %d groups left open", b.level)
	}
	for ; b.level > 0; b.level-- {
		b.e.PopState()
	}
}

func (b *builder) error(kind ErrorKind, tok *token.Token) *Error {
	err := &Error{Kind: kind, Token: tok}
	if c, ok := b.e.(Contexter); ok {
		err.Context = c.LastContext()
	}
	return err
}
