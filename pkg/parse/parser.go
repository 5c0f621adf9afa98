// Package parse implements an interpreter session: it expands macros, parses
// numbers, dimensions and glue, executes assignments and builds boxes and
// paragraphs. A Parser is the vlist.Engine that vertical lists are built
// from.
package parse

import (
	"fmt"
	"io"

	"src.texel.sh/pkg/box"
	"src.texel.sh/pkg/diag"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/font"
	"src.texel.sh/pkg/lexer"
	"src.texel.sh/pkg/logutil"
	"src.texel.sh/pkg/state"
	"src.texel.sh/pkg/token"
	"src.texel.sh/pkg/vlist"
)

var logger = logutil.GetLogger("[parse] ")

// Config keeps configuration options when parsing.
type Config struct {
	// State to interpret the source in. If nil, a fresh state is used.
	// Sharing a state lets one source set up parameters and macros for
	// another.
	State *state.State
	// Character metrics. If nil, font.Default() is used.
	Font font.Source
	// Where to show warnings, such as characters missing from the font. If
	// nil, warnings are only logged.
	WarningWriter io.Writer
}

// Parser is an interpreter session over one source.
type Parser struct {
	lx    *lexer.Lexer
	state *state.State
	font  font.Source
	warn  io.Writer
}

var _ vlist.Engine = (*Parser)(nil)

// New creates a Parser for the given source.
func New(src lexer.Source, cfg Config) *Parser {
	st := cfg.State
	if st == nil {
		st = state.New()
	}
	f := cfg.Font
	if f == nil {
		f = font.Default()
	}
	return &Parser{lx: lexer.New(src, st), state: st, font: f, warn: cfg.WarningWriter}
}

// State returns the state the parser interprets in.
func (p *Parser) State() *state.State {
	return p.state
}

// ParseVerticalList builds a vertical list from the input. See vlist.Build
// for the meaning of internal.
func (p *Parser) ParseVerticalList(internal bool) ([]box.VerticalElem, error) {
	return vlist.Build(p, internal)
}

// LexUnexpandedToken consumes and returns the next token without expanding
// it. It returns nil at the end of input.
func (p *Parser) LexUnexpandedToken() (*token.Token, error) {
	return p.lx.Next()
}

// LastContext returns the context of the most recently read source token.
func (p *Parser) LastContext() *diag.Context {
	return p.lx.Context(p.lx.LastRange())
}

// PushState opens a group.
func (p *Parser) PushState() { p.state.PushState() }

// PopState closes a group.
func (p *Parser) PopState() { p.state.PopState() }

// IsTokenEqualToPrim reports whether t currently means the named primitive.
func (p *Parser) IsTokenEqualToPrim(t token.Token, name string) bool {
	return p.state.IsTokenEqualToPrim(t, name)
}

// Params returns the current interline glue parameters.
func (p *Parser) Params() vlist.Params {
	return vlist.Params{
		BaselineSkip:  p.state.GlueParam("baselineskip"),
		LineSkip:      p.state.GlueParam("lineskip"),
		LineSkipLimit: p.state.DimenParam("lineskiplimit"),
	}
}

// PrevDepth returns \prevdepth.
func (p *Parser) PrevDepth() dimen.Dimen { return p.state.PrevDepth() }

// SetPrevDepth sets \prevdepth.
func (p *Parser) SetPrevDepth(d dimen.Dimen) { p.state.SetPrevDepth(d) }

func (p *Parser) errorf(format string, args ...any) *diag.Error {
	return &diag.Error{
		Type:    "parse error",
		Message: fmt.Sprintf(format, args...),
		Context: *p.LastContext(),
	}
}

func (p *Parser) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Println("warning:", msg)
	if p.warn != nil {
		fmt.Fprintln(p.warn, "warning:", msg)
	}
}
