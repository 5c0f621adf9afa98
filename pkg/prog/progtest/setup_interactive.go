//go:build !windows

package progtest

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/creack/pty"
)

// Terminal is a pseudo terminal for a program to write to.
type Terminal struct {
	// The terminal end, to be passed to the program.
	TTY  *os.File
	pty  *os.File
	done chan struct{}
	buf  bytes.Buffer
}

// SetupTerminal opens a pseudo terminal and starts collecting what is written
// to it. The test is skipped if pseudo terminals are not available.
func SetupTerminal(t *testing.T) *Terminal {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pseudo terminal not available: %v", err)
	}
	term := &Terminal{TTY: tty, pty: ptmx, done: make(chan struct{})}
	go func() {
		// Reading fails with EIO once the terminal end is closed.
		io.Copy(&term.buf, ptmx)
		close(term.done)
	}()
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return term
}

// Output closes the terminal end and returns everything written to it. Line
// endings are translated by the terminal, so "\n" comes out as "\r\n".
func (term *Terminal) Output() string {
	term.TTY.Close()
	<-term.done
	return term.buf.String()
}
