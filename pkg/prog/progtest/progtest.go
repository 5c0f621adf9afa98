// Package progtest contains utilities for testing [prog.Program]
// implementations by running them with captured input and output.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.texel.sh/pkg/prog"
)

// Case is a test case for Test.
type Case struct {
	args  []string
	stdin string

	exit        int
	stdout      output
	stderr      output
	checkStdout bool
	checkStderr bool
}

type output struct {
	content  string
	contains bool
}

func (o output) matches(s string) bool {
	if o.contains {
		return strings.Contains(s, o.content)
	}
	return s == o.content
}

// ThatTexel returns a new Case with the specified CLI arguments. The program
// name is supplied automatically. By default the case expects an exit status
// of 0 and does not check the output.
func ThatTexel(args ...string) Case {
	return Case{args: append([]string{"texel"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// ExitsWith returns an altered Case that requires the program to exit with
// the given status.
func (c Case) ExitsWith(exit int) Case {
	c.exit = exit
	return c
}

// DoesNothing returns an altered Case that requires the program to exit with
// 0 and write nothing.
func (c Case) DoesNothing() Case {
	return c.ExitsWith(0).WritesStdout("").WritesStderr("")
}

// WritesStdout returns an altered Case that requires the stdout to be exactly
// s.
func (c Case) WritesStdout(s string) Case {
	c.stdout, c.checkStdout = output{s, false}, true
	return c
}

// WritesStdoutContaining returns an altered Case that requires the stdout to
// contain s.
func (c Case) WritesStdoutContaining(s string) Case {
	c.stdout, c.checkStdout = output{s, true}, true
	return c
}

// WritesStderr returns an altered Case that requires the stderr to be exactly
// s.
func (c Case) WritesStderr(s string) Case {
	c.stderr, c.checkStderr = output{s, false}, true
	return c
}

// WritesStderrContaining returns an altered Case that requires the stderr to
// contain s.
func (c Case) WritesStderrContaining(s string) Case {
	c.stderr, c.checkStderr = output{s, true}, true
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		r := Run(t, p, c.stdin, c.args...)
		if r.Exit != c.exit {
			t.Errorf("%q exited with %d, want %d\nstderr: %s", c.args, r.Exit, c.exit, r.Stderr)
		}
		if c.checkStdout && !c.stdout.matches(r.Stdout) {
			t.Errorf("%q stdout:\n%s\nwant %s", c.args, r.Stdout, describe(c.stdout))
		}
		if c.checkStderr && !c.stderr.matches(r.Stderr) {
			t.Errorf("%q stderr:\n%s\nwant %s", c.args, r.Stderr, describe(c.stderr))
		}
	}
}

func describe(o output) string {
	if o.contains {
		return "output containing:\n" + o.content
	}
	return "exactly:\n" + o.content
}

// Result keeps the outcome of running a program.
type Result struct {
	Exit           int
	Stdout, Stderr string
}

// Run runs a program with the given stdin and arguments, and captures its
// output. args should start with the program name.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) Result {
	t.Helper()
	return RunWithStderr(t, p, stdin, nil, args...)
}

// RunWithStderr is like Run, but uses the given file as stderr instead of
// capturing it if it is not nil.
func RunWithStderr(t *testing.T, p prog.Program, stdin string, stderr *os.File, args ...string) Result {
	t.Helper()
	r0, w0 := pipe(t)
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	defer r0.Close()

	r1, w1 := pipe(t)
	stdout := capture(r1)
	var r2, w2 *os.File
	var stderrCh <-chan string
	if stderr == nil {
		r2, w2 = pipe(t)
		stderrCh = capture(r2)
		stderr = w2
	}

	exit := prog.Run([3]*os.File{r0, w1, stderr}, args, p)
	w1.Close()
	res := Result{Exit: exit, Stdout: <-stdout}
	if w2 != nil {
		w2.Close()
		res.Stderr = <-stderrCh
	}
	return res
}

func pipe(t *testing.T) (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	return r, w
}

// Reads r to the end in the background, so that a program writing more than
// a pipe can buffer does not block.
func capture(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}
