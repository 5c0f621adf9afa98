package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.texel.sh/pkg/prog"
)

// Verify we don't deadlock if more output is written to stdout than can be
// buffered by a pipe.
func TestOutputCaptureDoesNotDeadlock(t *testing.T) {
	Test(t, noisyProgram{},
		ThatTexel().WritesStdoutContaining("hello"),
	)
}

type noisyProgram struct{}

func (noisyProgram) Run(fds [3]*os.File, _ *prog.Flags, _ []string) error {
	// Pipes typically buffer 8 to 128 KiB.
	bytes := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	for i := 0; i < 128*1024/len(bytes); i++ {
		fds[1].Write(bytes)
	}
	fds[1].WriteString("hello")
	return nil
}

func TestStdinIsProvided(t *testing.T) {
	Test(t, echoProgram{},
		ThatTexel().WithStdin("lorem\nipsum").
			WritesStdout("LOREM\nIPSUM").WritesStderr(""),
		ThatTexel("fail").WithStdin("x").
			ExitsWith(3).WritesStderrContaining("failing"),
	)
}

type echoProgram struct{}

func (echoProgram) Run(fds [3]*os.File, _ *prog.Flags, args []string) error {
	if len(args) > 0 {
		fds[2].WriteString("failing\n")
		return prog.Exit(3)
	}
	b, err := io.ReadAll(fds[0])
	if err != nil {
		return err
	}
	fds[1].WriteString(strings.ToUpper(string(b)))
	return nil
}
