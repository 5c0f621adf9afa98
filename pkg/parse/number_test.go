package parse

import (
	"errors"
	"fmt"
	"testing"

	"src.texel.sh/pkg/diag"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
	"src.texel.sh/pkg/lexer"
	"src.texel.sh/pkg/state"
	"src.texel.sh/pkg/tt"
)

// Registers and parameters that the quantities below refer to.
const setup = `\count1=7 \dimen2=2.5pt \skip3=1pt plus 2pt minus 3pt \parindent=20pt`

// withSetup runs setup in a parser of its own and returns a parser over code
// that shares its state.
func withSetup(code string) *Parser {
	st := state.New()
	list, err := New(lexer.Source{Name: "[setup]", Code: setup}, Config{State: st}).ParseVerticalList(true)
	if err != nil || len(list) > 0 {
		panic(fmt.Sprintf("setup: %v, %v", list, err))
	}
	return New(lexer.Source{Name: "[test]", Code: code}, Config{State: st})
}

func parseNumber(code string) (int32, error)      { return withSetup(code).ParseNumber() }
func parseDimen(code string) (dimen.Dimen, error) { return withSetup(code).ParseDimen() }
func parseGlue(code string) (glue.Glue, error)    { return withSetup(code).ParseGlue() }

// errorMessage matches a *diag.Error by its message, ignoring its position.
type errorMessage string

func (m errorMessage) Match(v tt.RetValue) bool {
	err, ok := v.(error)
	var dErr *diag.Error
	return ok && errors.As(err, &dErr) && dErr.Message == string(m)
}

func TestParseNumber(t *testing.T) {
	tt.Test(t, tt.Fn("parseNumber", parseNumber), tt.Table{
		tt.Args("42").Rets(int32(42), nil),
		tt.Args("-+-12").Rets(int32(12), nil),
		tt.Args("- 3").Rets(int32(-3), nil),
		tt.Args("'777").Rets(int32(511), nil),
		tt.Args(`"FF`).Rets(int32(255), nil),
		tt.Args("`a").Rets(int32(97), nil),
		tt.Args("`\\a").Rets(int32(97), nil),
		tt.Args(`\count1`).Rets(int32(7), nil),
		tt.Args(`-\count1`).Rets(int32(-7), nil),
		tt.Args(`\dimen2`).Rets(int32(2*dimen.PT+dimen.PT/2), nil),
		tt.Args(`\catcode 92`).Rets(int32(0), nil),
		tt.Args(`\tolerance`).Rets(int32(10000), nil),
		tt.Args("2147483648").Rets(int32(0), errorMessage("number too big")),
		tt.Args("x").Rets(int32(0), errorMessage("missing number, treated as zero")),
	})
}

func TestParseDimen(t *testing.T) {
	tt.Test(t, tt.Fn("parseDimen", parseDimen), tt.Table{
		tt.Args("12pt").Rets(12*pt, nil),
		tt.Args("1in").Rets(dimen.Dimen(4736286), nil),
		tt.Args("2.54cm").Rets(dimen.Dimen(4736274), nil),
		tt.Args("-.5pt").Rets(-pt/2, nil),
		tt.Args("1,5 pt").Rets(pt+pt/2, nil),
		tt.Args("3 true pt").Rets(3*pt, nil),
		tt.Args("1PC").Rets(12*pt, nil),
		tt.Args("10sp").Rets(dimen.Dimen(10), nil),
		tt.Args(`1.5\parindent`).Rets(30*pt, nil),
		tt.Args(`-\dimen2`).Rets(-2*pt-pt/2, nil),
		tt.Args(`\skip3`).Rets(pt, nil),
		tt.Args(`\count1pt`).Rets(7*pt, nil),
		tt.Args(`\wd0`).Rets(dimen.Dimen(0), nil),
		tt.Args(`\prevdepth`).Rets(dimen.Dimen(-1000*pt), nil),
		tt.Args("16383.99999pt").Rets(dimen.Max, nil),
		tt.Args("16384pt").Rets(dimen.Dimen(0), errorMessage("dimension too large")),
		tt.Args("1em").Rets(dimen.Dimen(0), errorMessage("illegal unit of measure (pt inserted)")),
	})
}

func TestParseGlue(t *testing.T) {
	tt.Test(t, tt.Fn("parseGlue", parseGlue), tt.Table{
		tt.Args("1pt").Rets(glue.FromDimen(pt), nil),
		tt.Args("1pt plus 2fil minus 3fill").Rets(glue.Glue{
			Space:   pt,
			Stretch: dimen.Infinite(dimen.Fil, 2*pt),
			Shrink:  dimen.Infinite(dimen.Fill, 3*pt),
		}, nil),
		tt.Args("0pt PLUS 1 fIL L l").Rets(glue.Glue{
			Stretch: dimen.Infinite(dimen.Filll, pt),
		}, nil),
		tt.Args("2pt minus 1pt").Rets(glue.Glue{Space: 2 * pt, Shrink: dimen.Finite(pt)}, nil),
		tt.Args("2pt plus -1fil").Rets(glue.Glue{Space: 2 * pt, Stretch: dimen.Infinite(dimen.Fil, -pt)}, nil),
		tt.Args(`\skip3`).Rets(glue.Glue{Space: pt, Stretch: dimen.Finite(2 * pt), Shrink: dimen.Finite(3 * pt)}, nil),
		tt.Args(`-\skip3`).Rets(glue.Glue{Space: -pt, Stretch: dimen.Finite(-2 * pt), Shrink: dimen.Finite(-3 * pt)}, nil),
		tt.Args(`\baselineskip`).Rets(glue.FromDimen(12*pt), nil),
		tt.Args(`\dimen2 plus 1pt`).Rets(glue.Glue{Space: 2*pt + pt/2, Stretch: dimen.Finite(pt)}, nil),
		// "plu" is not "plus"; the tokens are left for the caller.
		tt.Args("1pt plu").Rets(glue.FromDimen(pt), nil),
	})
}

// setParameter assigns code to the named parameter and returns the parameter
// as it reads afterwards.
func setParameter(name, code string) (string, error) {
	p := withSetup(code)
	err := p.SetParameter(name)
	switch state.Parameters[name] {
	case state.IntParam:
		return fmt.Sprint(p.state.IntParam(name)), err
	case state.DimenParam:
		return p.state.DimenParam(name).String(), err
	}
	return p.state.GlueParam(name).String(), err
}

func TestSetParameter(t *testing.T) {
	tt.Test(t, tt.Fn("setParameter", setParameter), tt.Table{
		tt.Args("tolerance", " 500 ").Rets("500", nil),
		tt.Args("parindent", `\dimen2`).Rets("2.5pt", nil),
		tt.Args("baselineskip", "12pt plus 1fil").Rets("12.0pt plus 1.0fil", nil),
		tt.Args("lineskip", `\skip3`).Rets("1.0pt plus 2.0pt minus 3.0pt", nil),

		// Trailing material is rejected and the parameter keeps its value.
		tt.Args("baselineskip", `20pt \vskip 7pt abc`).
			Rets("12.0pt", errorMessage(`unexpected \vskip after the value of \baselineskip`)),
		tt.Args("parindent", `1pt\par`).
			Rets("20.0pt", errorMessage(`unexpected \par after the value of \parindent`)),
		tt.Args("parindent", "1em").
			Rets("20.0pt", errorMessage("illegal unit of measure (pt inserted)")),
		tt.Args("count", "1").
			Rets("0.0pt", errorMessage(`\count is not a parameter`)),
	})
}
