package prog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"src.texel.sh/pkg/box"
	"src.texel.sh/pkg/config"
	"src.texel.sh/pkg/diag"
	"src.texel.sh/pkg/font"
	"src.texel.sh/pkg/lexer"
	"src.texel.sh/pkg/logutil"
	"src.texel.sh/pkg/parse"
	"src.texel.sh/pkg/state"
)

var logger = logutil.GetLogger("[prog] ")

// DefaultFont is the table read from a metrics database when no name is
// given.
const DefaultFont = "default"

// settings are the flags merged with the configuration file. Flags win.
type settings struct {
	config    *config.Config
	metrics   string
	metricsDB string
	font      string
}

func loadSettings(f *Flags) (settings, error) {
	var s settings
	if f.Config != "" {
		cfg, err := config.Load(f.Config)
		if err != nil {
			return settings{}, err
		}
		s = settings{cfg, cfg.Metrics, cfg.MetricsDB, cfg.Font}
	}
	s.metrics = firstNonEmpty(f.Metrics, s.metrics)
	s.metricsDB = firstNonEmpty(f.MetricsDB, s.metricsDB)
	s.font = firstNonEmpty(f.Font, s.font, DefaultFont)
	return s, nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

// loadFont returns the metrics to typeset with: the metrics file if there is
// one, otherwise the named table of the metrics database, otherwise the
// built-in table.
func (s settings) loadFont() (font.Table, error) {
	switch {
	case s.metrics != "":
		return font.LoadFile(s.metrics)
	case s.metricsDB != "":
		st, err := font.OpenStore(s.metricsDB)
		if err != nil {
			return font.Table{}, fmt.Errorf("%s: %w", s.metricsDB, err)
		}
		defer st.Close()
		t, err := st.Get(s.font)
		if err != nil {
			return font.Table{}, fmt.Errorf("%s: %s: %w", s.metricsDB, s.font, err)
		}
		return t, nil
	}
	return font.Default(), nil
}

// ImportProgram stores a metrics file into a metrics database. It runs when
// -import is given.
type ImportProgram struct{}

func (ImportProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if f.Import == "" {
		return ErrNotSuitable
	}
	if len(args) > 0 {
		return BadUsage("-import takes no arguments")
	}
	s, err := loadSettings(f)
	if err != nil {
		return fail(fds[2], err)
	}
	if s.metrics == "" || s.metricsDB == "" {
		return BadUsage("-import requires -metrics and -metrics-db")
	}
	t, err := font.LoadFile(s.metrics)
	if err != nil {
		return fail(fds[2], err)
	}
	st, err := font.OpenStore(s.metricsDB)
	if err != nil {
		return fail(fds[2], err)
	}
	defer st.Close()
	if err := st.Put(f.Import, t); err != nil {
		return fail(fds[2], err)
	}
	fmt.Fprintf(fds[1], "stored %d characters as %s\n", len(t.Chars), f.Import)
	return nil
}

// TypesetProgram builds the vertical list of a document and prints it.
type TypesetProgram struct{}

func (TypesetProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if len(args) > 1 {
		return BadUsage("at most one file may be given")
	}
	s, err := loadSettings(f)
	if err != nil {
		return fail(fds[2], err)
	}
	src, err := readSource(fds[0], args)
	if err != nil {
		return fail(fds[2], err)
	}
	fnt, err := s.loadFont()
	if err != nil {
		return fail(fds[2], err)
	}

	st := state.New()
	if s.config != nil {
		if err := s.config.Apply(st); err != nil {
			return fail(fds[2], err)
		}
	}

	p := parse.New(src, parse.Config{State: st, Font: fnt, WarningWriter: fds[2]})
	list, err := p.ParseVerticalList(f.Internal)
	if err != nil {
		return fail(fds[2], err)
	}
	logger.Printf("built %d elements from %s", len(list), src.Name)
	if len(list) > 0 {
		fmt.Fprintln(fds[1], box.ShowList(list))
	}
	if f.Internal {
		// Only an unmatched } stops an internal list before the end of input.
		if t, _ := p.LexUnexpandedToken(); t != nil {
			return fail(fds[2], errors.New("too many }'s"))
		}
	}
	return nil
}

func readSource(stdin *os.File, args []string) (lexer.Source, error) {
	if len(args) == 0 {
		code, err := io.ReadAll(stdin)
		return lexer.Source{Name: "[stdin]", Code: string(code)}, err
	}
	code, err := os.ReadFile(args[0])
	return lexer.Source{Name: args[0], Code: string(code)}, err
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// fail shows an error, in color if stderr is a terminal, and returns the error
// that makes the program exit with 1.
func fail(stderr *os.File, err error) error {
	diag.SetColor(isTerminal(stderr))
	diag.ShowError(stderr, err)
	return Exit(1)
}
