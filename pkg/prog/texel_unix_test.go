//go:build !windows

package prog_test

import (
	"strings"
	"testing"

	. "src.texel.sh/pkg/prog"
	"src.texel.sh/pkg/prog/progtest"
)

func TestColorOnTerminal(t *testing.T) {
	term := progtest.SetupTerminal(t)
	r := progtest.RunWithStderr(t, Default(), `\vskip 1pt`, term.TTY, "texel")
	if r.Exit != 1 {
		t.Errorf("exit %d, want 1", r.Exit)
	}
	if out := term.Output(); !strings.Contains(out, "\033[31;1m") {
		t.Errorf("no colored message on a terminal: %q", out)
	}

	r = progtest.Run(t, Default(), `\vskip 1pt`, "texel")
	if strings.Contains(r.Stderr, "\033[") {
		t.Errorf("colored message on a pipe: %q", r.Stderr)
	}
}
