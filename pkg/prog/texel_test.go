package prog_test

import (
	"path/filepath"
	"strings"
	"testing"

	. "src.texel.sh/pkg/prog"
	"src.texel.sh/pkg/testutil"
)

// Metrics with round numbers, so that the expected output is easy to check.
const metrics = `
space: 4pt
chars:
  x: {width: 5pt, height: 4pt}
  y: {width: 5pt, height: 4pt, depth: 2pt}
`

func setup(t *testing.T) string {
	dir := testutil.TempDir(t)
	testutil.WriteFile(dir, "m.yaml", metrics)
	testutil.WriteFile(dir, "doc.tex", `\hbox{x}\hbox{y}\hbox{x}\end`)
	return dir
}

func TestTypeset(t *testing.T) {
	dir := setup(t)
	m := filepath.Join(dir, "m.yaml")

	Test(t, Default(),
		ThatTexel().WithStdin(`\vskip 1pt plus 2fil\end`).
			WritesStdout("\\glue 1.0pt plus 2.0fil\n").WritesStderr(""),
		ThatTexel().WithStdin(`\end`).DoesNothing(),
		ThatTexel("-metrics", m, filepath.Join(dir, "doc.tex")).
			WritesStdout(strings.Join([]string{
				`\hbox(4.0+0.0)x5.0`, `.x`,
				`\glue 8.0pt`,
				`\hbox(4.0+2.0)x5.0`, `.y`,
				`\glue 6.0pt`,
				`\hbox(4.0+0.0)x5.0`, `.x`,
			}, "\n")+"\n"),
		// A paragraph: the glyphs and the space of the metrics file.
		ThatTexel("-metrics", m).WithStdin(`\noindent x y\par\end`).
			WritesStdout(strings.Join([]string{
				`\hbox(4.0+2.0)x14.0`, `.x`, `.\glue 4.0pt`, `.y`,
			}, "\n")+"\n"),
		ThatTexel("-metrics", m).WithStdin(`\noindent xz\end`).
			WritesStderr("warning: missing character: there is no z in the font\n"),
	)
}

func TestTypeset_Internal(t *testing.T) {
	Test(t, Default(),
		ThatTexel("-internal").WithStdin(`\vskip 1pt`).
			WritesStdout("\\glue 1.0pt\n"),
		ThatTexel("-internal").WithStdin(`\vskip 1pt}`).
			ExitsWith(1).
			WritesStdout("\\glue 1.0pt\n").
			WritesStderr("too many }'s\n"),
		ThatTexel("-internal").WithStdin(`\end`).
			ExitsWith(1).
			WritesStderrContaining(`you can't use \end in internal vertical mode`),
	)
}

func TestTypeset_Errors(t *testing.T) {
	dir := setup(t)

	Test(t, Default(),
		ThatTexel().WithStdin(`\vskip 1pt`).
			ExitsWith(1).
			WritesStdout("").
			WritesStderrContaining(`emergency stop, end of input found before \end`),
		ThatTexel().WithStdin(`}`).
			ExitsWith(1).
			WritesStderrContaining("too many }'s"),
		ThatTexel().WithStdin(`\undefined`).
			ExitsWith(1).
			WritesStderrContaining("undefined control sequence"),
		ThatTexel(filepath.Join(dir, "missing.tex")).
			ExitsWith(1).
			WritesStderrContaining("missing.tex"),
		ThatTexel("a.tex", "b.tex").
			ExitsWith(2).
			WritesStderrContaining("at most one file may be given\nUsage:"),
		ThatTexel("-metrics", filepath.Join(dir, "doc.tex")).WithStdin(`\end`).
			ExitsWith(1).
			WritesStderrContaining("unknown metrics file extension"),
	)
}

func TestTypeset_Config(t *testing.T) {
	dir := setup(t)
	yamlCfg := testutil.WriteFile(dir, "texel.yaml", testutil.Dedent(`
		parameters:
		  baselineskip: 20pt plus 1pt
		  lineskiplimit: 0pt
		metrics: m.yaml
		`))
	tomlCfg := testutil.WriteFile(dir, "texel.toml", testutil.Dedent(`
		metrics = "m.yaml"

		[parameters]
		baselineskip = "3pt"
		lineskip = "1pt minus 1pt"
		`))
	badCfg := testutil.WriteFile(dir, "bad.yaml", "parameters:\n  parindent: 1em\n")
	trailingCfg := testutil.WriteFile(dir, "trailing.yaml",
		"parameters:\n  baselineskip: '20pt \\vskip 7pt abc'\n")
	doc := filepath.Join(dir, "doc.tex")

	Test(t, Default(),
		ThatTexel("-config", yamlCfg, doc).
			WritesStdout(strings.Join([]string{
				`\hbox(4.0+0.0)x5.0`, `.x`,
				`\glue 16.0pt plus 1.0pt`,
				`\hbox(4.0+2.0)x5.0`, `.y`,
				`\glue 14.0pt plus 1.0pt`,
				`\hbox(4.0+0.0)x5.0`, `.x`,
			}, "\n")+"\n"),
		// Boxes too tall for \baselineskip are separated by \lineskip.
		ThatTexel("-config", tomlCfg, doc).
			WritesStdout(strings.Join([]string{
				`\hbox(4.0+0.0)x5.0`, `.x`,
				`\glue 1.0pt minus 1.0pt`,
				`\hbox(4.0+2.0)x5.0`, `.y`,
				`\glue 1.0pt minus 1.0pt`,
				`\hbox(4.0+0.0)x5.0`, `.x`,
			}, "\n")+"\n"),
		// Parameters given in the document override the configuration.
		ThatTexel("-config", yamlCfg).
			WithStdin(`\baselineskip=10pt \hbox{x}\hbox{x}\end`).
			WritesStdoutContaining(`\glue 6.0pt`),
		ThatTexel("-config", badCfg).WithStdin(`\end`).
			ExitsWith(1).
			WritesStderrContaining("illegal unit of measure"),
		// A value must not carry anything after it.
		ThatTexel("-config", trailingCfg, doc).
			ExitsWith(1).
			WritesStdout("").
			WritesStderrContaining(`unexpected \vskip after the value of \baselineskip`),
		ThatTexel("-config", filepath.Join(dir, "missing.yaml")).WithStdin(`\end`).
			ExitsWith(1).
			WritesStderrContaining("missing.yaml"),
	)
}

func TestImport(t *testing.T) {
	dir := setup(t)
	m := filepath.Join(dir, "m.yaml")
	db := filepath.Join(dir, "fonts.db")
	doc := filepath.Join(dir, "doc.tex")

	Test(t, Default(),
		ThatTexel("-import", "round", "-metrics", m, "-metrics-db", db).
			WritesStdout("stored 2 characters as round\n"),
		ThatTexel("-metrics-db", db, "-font", "round", doc).
			WritesStdoutContaining(`\hbox(4.0+2.0)x5.0`),
		ThatTexel("-metrics-db", db, doc).
			ExitsWith(1).
			WritesStderrContaining("no such metrics table"),
		ThatTexel("-import", "round", "-metrics", m).
			ExitsWith(2).
			WritesStderrContaining("-import requires -metrics and -metrics-db"),
		ThatTexel("-import", "round", "-metrics", m, "-metrics-db", db, doc).
			ExitsWith(2).
			WritesStderrContaining("-import takes no arguments"),
	)
}
