package vlist

import (
	"src.texel.sh/pkg/diag"
	"src.texel.sh/pkg/token"
)

// ErrorKind classifies the errors of Build.
type ErrorKind int

// Error kinds.
const (
	// The input ended before \end in a top-level list.
	PrematureEOF ErrorKind = iota + 1
	// A } without a matching { in a top-level list.
	UnbalancedClose
	// \end in an internal list.
	ForbiddenEnd
	// A token that cannot start anything in vertical mode.
	Unrecognized
)

// Error is an error that stops a vertical list. Errors from the Engine are
// returned as they are, not wrapped in Error.
type Error struct {
	Kind ErrorKind
	// The offending token, for Unrecognized.
	Token *token.Token
	// Where the error happened, if the Engine implements Contexter.
	Context *diag.Context
}

// Message returns the message of the error, without position.
func (e *Error) Message() string {
	switch e.Kind {
	case PrematureEOF:
		return `emergency stop, end of input found before \end`
	case UnbalancedClose:
		return "too many }'s"
	case ForbiddenEnd:
		return `you can't use \end in internal vertical mode`
	case Unrecognized:
		if e.Token != nil {
			return "unrecognized construct in vertical mode: " + e.Token.String()
		}
		return "unrecognized construct in vertical mode"
	}
	return "unknown vertical mode error"
}

func (e *Error) Error() string {
	if e.Context == nil {
		return e.Message()
	}
	return e.diagError().Error()
}

// Show implements diag.Shower.
func (e *Error) Show(indent string) string {
	if e.Context == nil {
		return e.Message()
	}
	return e.diagError().Show(indent)
}

func (e *Error) diagError() *diag.Error {
	return &diag.Error{Type: "vertical mode error", Message: e.Message(), Context: *e.Context}
}
