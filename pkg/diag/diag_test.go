package diag

import (
	"errors"
	"strings"
	"testing"

	"src.texel.sh/pkg/testutil"
)

func plain(t *testing.T) {
	testutil.Set(t, &culpritStart, "<")
	testutil.Set(t, &culpritEnd, ">")
	testutil.Set(t, &messageStart, "{")
	testutil.Set(t, &messageEnd, "}")
}

var contextTests = []struct {
	name    string
	context *Context
	indent  string

	wantShow        string
	wantShowCompact string
}{
	{
		name:    "single-line culprit",
		context: NewContext("[test]", `\vskip 1pt \foo`, Ranging{11, 15}),
		indent:  "_",

		wantShow:        "[test]:1:12:\n" + `_\vskip 1pt <\foo>`,
		wantShowCompact: `[test]:1:12: \vskip 1pt <\foo>`,
	},
	{
		name:    "multi-line culprit",
		context: NewContext("[test]", "a{b\nc}d", Ranging{1, 6}),
		indent:  "_",

		wantShow:        "[test]:1:2:\n_a<{b>\n_<c}>d",
		wantShowCompact: "[test]:1:2: a<{b>\n_            <c}>d",
	},
	{
		name:    "empty culprit",
		context: NewContext("[test]", "ab\ncd", Ranging{4, 4}),

		wantShow:        "[test]:2:2:\nc<^>d",
		wantShowCompact: "[test]:2:2: c<^>d",
	},
	{
		name:    "unknown position",
		context: NewContext("[test]", "ab", Ranging{-1, -1}),

		wantShow:        "[test], unknown position",
		wantShowCompact: "[test], unknown position",
	},
}

func TestContext(t *testing.T) {
	plain(t)
	for _, test := range contextTests {
		t.Run(test.name, func(t *testing.T) {
			if show := test.context.Show(test.indent); show != test.wantShow {
				t.Errorf("Show() -> %q, want %q", show, test.wantShow)
			}
			if show := test.context.ShowCompact(test.indent); show != test.wantShowCompact {
				t.Errorf("ShowCompact() -> %q, want %q", show, test.wantShowCompact)
			}
		})
	}
}

func TestError(t *testing.T) {
	plain(t)
	err := &Error{
		Type:    "parse error",
		Message: "undefined control sequence",
		Context: *NewContext("doc.tex", "\\vskip 1pt\n\\foo", Ranging{11, 15}),
	}

	wantError := `parse error: doc.tex:2:1: undefined control sequence`
	if got := err.Error(); got != wantError {
		t.Errorf("Error() -> %q, want %q", got, wantError)
	}
	if got := err.Range(); got != (Ranging{11, 15}) {
		t.Errorf("Range() -> %v, want {11 15}", got)
	}
	wantShow := "Parse error: {undefined control sequence}\n  doc.tex:2:1: <\\foo>"
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
}

type showerError struct{}

func (showerError) Error() string { return "error" }

func (showerError) Show(string) string { return "show" }

func TestShowError(t *testing.T) {
	for _, test := range []struct {
		name string
		err  error
		want string
	}{
		{"Shower", showerError{}, "show\n"},
		{"plain error", errors.New("ERROR"), "\033[31;1mERROR\033[m\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			var sb strings.Builder
			ShowError(&sb, test.err)
			if sb.String() != test.want {
				t.Errorf("wrote %q, want %q", sb.String(), test.want)
			}
		})
	}
}

func TestSetColor(t *testing.T) {
	SetColor(false)
	defer SetColor(true)
	var sb strings.Builder
	Complain(&sb, "2 errors")
	if sb.String() != "2 errors\n" {
		t.Errorf("wrote %q, want %q", sb.String(), "2 errors\n")
	}
}

func TestMixedRanging(t *testing.T) {
	if r := MixedRanging(Ranging{1, 2}, PointRanging(5)); r != (Ranging{1, 5}) {
		t.Errorf("MixedRanging -> %v, want {1 5}", r)
	}
}
