// Package token defines the lexical tokens of the typesetting language.
package token

import (
	"fmt"
	"strings"
)

// Category is the category code of a character. It decides how the lexer
// treats the character.
type Category uint8

// Categories, numbered as in the language.
const (
	Escape Category = iota
	BeginGroup
	EndGroup
	MathShift
	AlignmentTab
	EndOfLine
	Parameter
	Superscript
	Subscript
	Ignored
	Space
	Letter
	Other
	Active
	Comment
	Invalid
)

var categoryNames = [...]string{
	"escape", "begin-group", "end-group", "math shift", "alignment tab",
	"end of line", "parameter", "superscript", "subscript", "ignored",
	"space", "letter", "other", "active", "comment", "invalid",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Kind tells apart the three forms of tokens.
type Kind uint8

// Token kinds.
const (
	Char Kind = iota
	ControlSequence
	ActiveChar
)

// Token is a lexical token: a character with its category code, a control
// sequence, or an active character. Tokens are comparable values.
type Token struct {
	Kind Kind
	// Rune is the character of Char and ActiveChar tokens.
	Rune rune
	// Cat is the category of Char tokens.
	Cat Category
	// Name is the name of ControlSequence tokens, without the escape
	// character.
	Name string
}

// NewChar returns a character token.
func NewChar(r rune, cat Category) Token {
	return Token{Kind: Char, Rune: r, Cat: cat}
}

// NewCS returns a control sequence token.
func NewCS(name string) Token {
	return Token{Kind: ControlSequence, Name: name}
}

// NewActive returns an active character token.
func NewActive(r rune) Token {
	return Token{Kind: ActiveChar, Rune: r}
}

// IsChar reports whether t is a character token of the given category.
func (t Token) IsChar(cat Category) bool {
	return t.Kind == Char && t.Cat == cat
}

// IsCS reports whether t is a control sequence or an active character, the
// tokens that have meanings.
func (t Token) IsCS() bool {
	return t.Kind != Char
}

// MeaningKey returns the key under which the meaning of a control sequence or
// active character is stored. Active characters cannot clash with control
// sequence names.
func (t Token) MeaningKey() string {
	if t.Kind == ActiveChar {
		return "\x00active:" + string(t.Rune)
	}
	return t.Name
}

func (t Token) String() string {
	switch t.Kind {
	case ControlSequence:
		return `\` + t.Name
	case ActiveChar:
		return "~" + string(t.Rune)
	default:
		return fmt.Sprintf("%q (%s)", t.Rune, t.Cat)
	}
}

// Text renders a list of tokens the way they would be written back,
// separating control words from following letters with a space.
func Text(toks []Token) string {
	var sb strings.Builder
	for i, t := range toks {
		switch t.Kind {
		case ControlSequence:
			sb.WriteString(`\` + t.Name)
			if i+1 < len(toks) && isControlWord(t.Name) && toks[i+1].IsChar(Letter) {
				sb.WriteByte(' ')
			}
		default:
			sb.WriteRune(t.Rune)
		}
	}
	return sb.String()
}

func isControlWord(name string) bool {
	for _, r := range name {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return name != ""
}
