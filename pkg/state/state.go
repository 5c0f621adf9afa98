// Package state holds the mutable state of an interpreter session: category
// codes, the meanings of control sequences, registers and parameters, all
// subject to grouping through a save stack.
package state

import (
	"src.texel.sh/pkg/box"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
	"src.texel.sh/pkg/lexer"
	"src.texel.sh/pkg/logutil"
	"src.texel.sh/pkg/token"
)

var logger = logutil.GetLogger("[state] ")

// NumRegisters is the number of registers of each kind.
const NumRegisters = 256

// Meaning is the meaning of a control sequence or active character: a
// Primitive, a *Macro or a Let.
type Meaning interface {
	isMeaning()
}

// Primitive is a built-in command, identified by its name.
type Primitive string

// Macro is a user-defined macro.
type Macro struct {
	// Number of undelimited parameters, 0 to 9.
	Params int
	// Replacement text. Parameter references are Parameter-category
	// characters whose Rune is the digit of the parameter.
	Body []token.Token
}

// Let is the meaning of a control sequence that was \let to a character
// token, such as \bgroup.
type Let struct {
	Token token.Token
}

func (Primitive) isMeaning() {}
func (*Macro) isMeaning()    {}
func (Let) isMeaning()       {}

// Parameter kinds.
const (
	IntParam = iota + 1
	DimenParam
	GlueParam
)

// Parameters maps the names of parameters to their kinds.
var Parameters = map[string]int{
	"tolerance":     IntParam,
	"lineskiplimit": DimenParam,
	"parindent":     DimenParam,
	"hsize":         DimenParam,
	"baselineskip":  GlueParam,
	"lineskip":      GlueParam,
	"parskip":       GlueParam,
}

// Primitives lists the built-in commands other than parameters.
var Primitives = []string{
	"end", "par", "relax", "vskip", "hskip", "indent", "noindent",
	"hbox", "vbox", "box", "copy", "setbox", "wd", "ht", "dp",
	"def", "gdef", "let", "global", "catcode", "count", "dimen", "skip",
	"prevdepth", "expandafter",
}

// State is the state of one interpreter session.
type State struct {
	cats     *scoped[rune, token.Category]
	meanings *scoped[string, Meaning]

	boxes  *scoped[int, *box.Box]
	counts *scoped[int, int32]
	dimens *scoped[int, dimen.Dimen]
	skips  *scoped[int, glue.Glue]

	intParams   *scoped[string, int32]
	dimenParams *scoped[string, dimen.Dimen]
	glueParams  *scoped[string, glue.Glue]

	prevDepth dimen.Dimen
	level     int
}

// New creates a State with the built-in meanings and default parameters.
func New() *State {
	s := &State{
		cats:        newScoped[rune, token.Category](),
		meanings:    newScoped[string, Meaning](),
		boxes:       newScoped[int, *box.Box](),
		counts:      newScoped[int, int32](),
		dimens:      newScoped[int, dimen.Dimen](),
		skips:       newScoped[int, glue.Glue](),
		intParams:   newScoped[string, int32](),
		dimenParams: newScoped[string, dimen.Dimen](),
		glueParams:  newScoped[string, glue.Glue](),
		prevDepth:   box.IgnoreDepth,
	}
	for _, name := range Primitives {
		s.meanings.set(name, Primitive(name))
	}
	for name := range Parameters {
		s.meanings.set(name, Primitive(name))
	}
	s.intParams.set("tolerance", 10000)
	s.dimenParams.set("parindent", dimen.Pt(20))
	s.glueParams.set("baselineskip", glue.FromDimen(dimen.Pt(12)))
	s.glueParams.set("lineskip", glue.FromDimen(dimen.Pt(1)))
	return s
}

// PushState opens a group.
func (s *State) PushState() {
	s.level++
	for _, t := range s.tables() {
		t.push()
	}
	logger.Printf("push to level %d", s.level)
}

// PopState ends the innermost group, undoing all local assignments made in
// it. It panics if no group is open.
func (s *State) PopState() {
	if s.level == 0 {
		panic("PopState without matching PushState")
	}
	for _, t := range s.tables() {
		t.pop()
	}
	s.level--
	logger.Printf("pop to level %d", s.level)
}

// Level returns the number of open groups.
func (s *State) Level() int {
	return s.level
}

type table interface {
	push()
	pop()
}

func (s *State) tables() []table {
	return []table{s.cats, s.meanings, s.boxes, s.counts, s.dimens, s.skips,
		s.intParams, s.dimenParams, s.glueParams}
}

// CategoryOf returns the category code of r. It implements
// lexer.CategoryTable.
func (s *State) CategoryOf(r rune) token.Category {
	if c, ok := s.cats.get(r); ok {
		return c
	}
	return lexer.DefaultCategory(r)
}

// SetCategory assigns a category code.
func (s *State) SetCategory(r rune, c token.Category, global bool) {
	setIn(s.cats, r, c, global)
}

// Meaning returns the current meaning of a control sequence or active
// character, or nil if it is undefined.
func (s *State) Meaning(t token.Token) Meaning {
	if !t.IsCS() {
		return nil
	}
	m, _ := s.meanings.get(t.MeaningKey())
	return m
}

// SetMeaning assigns a meaning; a nil meaning makes t undefined.
func (s *State) SetMeaning(t token.Token, m Meaning, global bool) {
	setIn(s.meanings, t.MeaningKey(), m, global)
}

// IsTokenEqualToPrim reports whether the current meaning of t is the named
// primitive.
func (s *State) IsTokenEqualToPrim(t token.Token, name string) bool {
	p, ok := s.Meaning(t).(Primitive)
	return ok && string(p) == name
}

// PrimitiveOf returns the name of the primitive t currently means, or "".
func (s *State) PrimitiveOf(t token.Token) string {
	p, _ := s.Meaning(t).(Primitive)
	return string(p)
}

func setIn[K comparable, V any](t *scoped[K, V], k K, v V, global bool) {
	if global {
		t.setGlobal(k, v)
	} else {
		t.set(k, v)
	}
}
