// Package lexer turns source text into tokens, following the category codes
// of the current session.
//
// The lexer reads its input line by line. Trailing blanks of each line are
// removed and an end-of-line character is appended, so that the end of a line
// acts like a space, the end of a paragraph or nothing at all depending on
// what precedes it.
package lexer

import (
	"strings"
	"unicode/utf8"

	"src.texel.sh/pkg/diag"
	"src.texel.sh/pkg/token"
)

// EndLineChar is the character appended to every input line.
const EndLineChar = '\r'

// Source is a named piece of input text.
type Source struct {
	Name string
	Code string
}

// CategoryTable maps characters to category codes. It is consulted for every
// character at the moment the character is read.
type CategoryTable interface {
	CategoryOf(r rune) token.Category
}

type lexState int

const (
	newLine lexState = iota
	midLine
	skipBlanks
)

// Lexer produces tokens from a Source. Tokens can be pushed back with Unread;
// pushed-back tokens are returned before any further source text is read.
type Lexer struct {
	src  Source
	cats CategoryTable

	// Byte offsets of the starts of the remaining lines.
	lineStarts []int
	// The current line: its text without trailing blanks plus EndLineChar,
	// the offset of its start in the source and its raw length.
	buf       string
	bufStart  int
	bufRawLen int
	bufTrim   int
	pos       int
	state     lexState

	pending   []token.Token
	lastRange diag.Ranging
}

// New creates a Lexer for the given source.
func New(src Source, cats CategoryTable) *Lexer {
	code := src.Code
	var starts []int
	if code != "" {
		starts = append(starts, 0)
		for i := 0; i < len(code); i++ {
			if code[i] == '\n' && i+1 < len(code) {
				starts = append(starts, i+1)
			}
		}
	}
	return &Lexer{src: src, cats: cats, lineStarts: starts, state: newLine,
		lastRange: diag.PointRanging(0)}
}

// LastRange returns the source range of the most recent token read from the
// source text.
func (lx *Lexer) LastRange() diag.Ranging {
	return lx.lastRange
}

// Context returns a diag.Context for the given range of the source.
func (lx *Lexer) Context(r diag.Ranger) *diag.Context {
	return diag.NewContext(lx.src.Name, lx.src.Code, r)
}

// Unread pushes tokens back; the next call to Next returns toks[0].
func (lx *Lexer) Unread(toks ...token.Token) {
	for i := len(toks) - 1; i >= 0; i-- {
		lx.pending = append(lx.pending, toks[i])
	}
}

// Next consumes and returns the next token. It returns nil at the end of
// input.
func (lx *Lexer) Next() (*token.Token, error) {
	if n := len(lx.pending); n > 0 {
		t := lx.pending[n-1]
		lx.pending = lx.pending[:n-1]
		return &t, nil
	}
	for {
		if lx.pos >= len(lx.buf) {
			if !lx.nextLine() {
				return nil, nil
			}
			continue
		}
		start := lx.pos
		r := lx.readRune()
		cat := lx.cats.CategoryOf(r)
		var t token.Token
		switch cat {
		case token.Escape:
			t = token.NewCS(lx.readName())
		case token.EndOfLine:
			st := lx.state
			lx.pos = len(lx.buf)
			switch st {
			case newLine:
				t = token.NewCS("par")
			case midLine:
				t = token.NewChar(' ', token.Space)
			default:
				continue
			}
		case token.Space:
			if lx.state != midLine {
				continue
			}
			lx.state = skipBlanks
			t = token.NewChar(' ', token.Space)
		case token.Comment:
			lx.pos = len(lx.buf)
			continue
		case token.Ignored:
			continue
		case token.Invalid:
			lx.lastRange = lx.rangeOf(start, lx.pos)
			return nil, &diag.Error{
				Type:    "parse error",
				Message: "text line contains an invalid character",
				Context: *lx.Context(lx.lastRange),
			}
		case token.Active:
			lx.state = midLine
			t = token.NewActive(r)
		default:
			lx.state = midLine
			t = token.NewChar(r, cat)
		}
		lx.lastRange = lx.rangeOf(start, lx.pos)
		return &t, nil
	}
}

// readName reads the name of a control sequence after the escape character.
func (lx *Lexer) readName() string {
	if lx.pos >= len(lx.buf) {
		lx.state = midLine
		return ""
	}
	r := lx.readRune()
	cat := lx.cats.CategoryOf(r)
	if cat != token.Letter {
		if cat == token.Space {
			lx.state = skipBlanks
		} else {
			lx.state = midLine
		}
		return string(r)
	}
	var sb strings.Builder
	sb.WriteRune(r)
	for lx.pos < len(lx.buf) {
		r, size := utf8.DecodeRuneInString(lx.buf[lx.pos:])
		if lx.cats.CategoryOf(r) != token.Letter {
			break
		}
		sb.WriteRune(r)
		lx.pos += size
	}
	lx.state = skipBlanks
	return sb.String()
}

func (lx *Lexer) readRune() rune {
	r, size := utf8.DecodeRuneInString(lx.buf[lx.pos:])
	lx.pos += size
	return r
}

func (lx *Lexer) nextLine() bool {
	if len(lx.lineStarts) == 0 {
		return false
	}
	start := lx.lineStarts[0]
	lx.lineStarts = lx.lineStarts[1:]
	end := strings.IndexByte(lx.src.Code[start:], '\n')
	if end == -1 {
		end = len(lx.src.Code) - start
	}
	raw := lx.src.Code[start : start+end]
	trimmed := strings.TrimRight(raw, " \r")
	lx.buf = trimmed + string(EndLineChar)
	lx.bufStart, lx.bufRawLen, lx.bufTrim = start, len(raw), len(trimmed)
	lx.pos = 0
	lx.state = newLine
	return true
}

// rangeOf converts a range of the current line buffer to a range of the
// source.
func (lx *Lexer) rangeOf(from, to int) diag.Ranging {
	return diag.Ranging{From: lx.offset(from), To: lx.offset(to)}
}

func (lx *Lexer) offset(i int) int {
	if i > lx.bufTrim {
		return lx.bufStart + lx.bufRawLen
	}
	return lx.bufStart + i
}
