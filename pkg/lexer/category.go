package lexer

import "src.texel.sh/pkg/token"

// CategoryFunc adapts a function to the CategoryTable interface.
type CategoryFunc func(r rune) token.Category

// CategoryOf calls f.
func (f CategoryFunc) CategoryOf(r rune) token.Category { return f(r) }

// DefaultCategory returns the category codes a session starts with: the
// built-in codes of the language plus the conventional assignments for
// grouping, math, alignment, parameters, scripts and the tie. Tabs count as
// spaces.
func DefaultCategory(r rune) token.Category {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		return token.Letter
	}
	switch r {
	case '\\':
		return token.Escape
	case '{':
		return token.BeginGroup
	case '}':
		return token.EndGroup
	case '$':
		return token.MathShift
	case '&':
		return token.AlignmentTab
	case EndLineChar:
		return token.EndOfLine
	case '#':
		return token.Parameter
	case '^':
		return token.Superscript
	case '_':
		return token.Subscript
	case 0:
		return token.Ignored
	case ' ', '\t':
		return token.Space
	case '~':
		return token.Active
	case '%':
		return token.Comment
	case 127:
		return token.Invalid
	}
	return token.Other
}
