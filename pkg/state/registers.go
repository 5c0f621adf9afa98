package state

import (
	"src.texel.sh/pkg/box"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
)

// Box returns a copy of the box in register n, or nil if the register is
// void.
func (s *State) Box(n int) *box.Box {
	b, _ := s.boxes.get(n)
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// SetBox assigns box register n; nil makes it void.
func (s *State) SetBox(n int, b *box.Box, global bool) {
	setIn(s.boxes, n, b, global)
}

// TakeBox returns the box in register n and leaves the register void.
func (s *State) TakeBox(n int) *box.Box {
	b := s.Box(n)
	if b != nil {
		s.boxes.replace(n, nil)
	}
	return b
}

// BoxDimen selects one dimension of a box.
type BoxDimen int

// Box dimensions.
const (
	Width BoxDimen = iota
	Height
	Depth
)

// SetBoxDimen changes one dimension of the box in register n in place. It
// does nothing if the register is void.
func (s *State) SetBoxDimen(n int, which BoxDimen, d dimen.Dimen) {
	b, _ := s.boxes.get(n)
	if b == nil {
		return
	}
	switch which {
	case Width:
		b.Width = d
	case Height:
		b.Height = d
	case Depth:
		b.Depth = d
	}
}

// Count returns count register n.
func (s *State) Count(n int) int32 {
	v, _ := s.counts.get(n)
	return v
}

// SetCount assigns count register n.
func (s *State) SetCount(n int, v int32, global bool) {
	setIn(s.counts, n, v, global)
}

// Dimen returns dimen register n.
func (s *State) Dimen(n int) dimen.Dimen {
	v, _ := s.dimens.get(n)
	return v
}

// SetDimen assigns dimen register n.
func (s *State) SetDimen(n int, v dimen.Dimen, global bool) {
	setIn(s.dimens, n, v, global)
}

// Skip returns skip register n.
func (s *State) Skip(n int) glue.Glue {
	v, _ := s.skips.get(n)
	return v
}

// SetSkip assigns skip register n.
func (s *State) SetSkip(n int, v glue.Glue, global bool) {
	setIn(s.skips, n, v, global)
}

// IntParam returns an integer parameter.
func (s *State) IntParam(name string) int32 {
	v, _ := s.intParams.get(name)
	return v
}

// SetIntParam assigns an integer parameter.
func (s *State) SetIntParam(name string, v int32, global bool) {
	setIn(s.intParams, name, v, global)
}

// DimenParam returns a dimen parameter.
func (s *State) DimenParam(name string) dimen.Dimen {
	v, _ := s.dimenParams.get(name)
	return v
}

// SetDimenParam assigns a dimen parameter.
func (s *State) SetDimenParam(name string, v dimen.Dimen, global bool) {
	setIn(s.dimenParams, name, v, global)
}

// GlueParam returns a glue parameter.
func (s *State) GlueParam(name string) glue.Glue {
	v, _ := s.glueParams.get(name)
	return v
}

// SetGlueParam assigns a glue parameter.
func (s *State) SetGlueParam(name string, v glue.Glue, global bool) {
	setIn(s.glueParams, name, v, global)
}

// PrevDepth returns \prevdepth, the depth of the last box of the current
// vertical list. It is not subject to grouping.
func (s *State) PrevDepth() dimen.Dimen {
	return s.prevDepth
}

// SetPrevDepth sets \prevdepth.
func (s *State) SetPrevDepth(d dimen.Dimen) {
	s.prevDepth = d
}
