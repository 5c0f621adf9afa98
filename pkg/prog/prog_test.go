package prog_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"src.texel.sh/pkg/logutil"
	. "src.texel.sh/pkg/prog"
	"src.texel.sh/pkg/prog/progtest"
	"src.texel.sh/pkg/testutil"
)

var (
	Test      = progtest.Test
	ThatTexel = progtest.ThatTexel
)

func TestCommonFlagHandling(t *testing.T) {
	cpuprof := filepath.Join(testutil.TempDir(t), "cpuprof")
	Test(t, testProgram{},
		ThatTexel("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatTexel("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatTexel("-help").
			WritesStdoutContaining("Usage: texel [flags] [file]"),

		ThatTexel("-cpuprofile", cpuprof).DoesNothing(),
		ThatTexel("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// There isn't much to test beyond a sanity check that the profile file
	// now exists.
	if _, err := os.Stat(cpuprof); err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestLogFlag(t *testing.T) {
	logPath := filepath.Join(testutil.TempDir(t), "texel.log")
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })
	Test(t, Default(),
		ThatTexel("-log", logPath).WithStdin(`\vskip 1pt\end`).
			WritesStdout("\\glue 1.0pt\n"),
	)
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatTexel().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatTexel().WritesStdout("program 2"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatTexel().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatTexel().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatTexel().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatTexel().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}
