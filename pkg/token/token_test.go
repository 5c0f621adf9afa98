package token

import (
	"testing"

	"src.texel.sh/pkg/tt"
)

func TestString(t *testing.T) {
	tt.Test(t, tt.Fn("Token.String", Token.String), tt.Table{
		tt.Args(NewCS("vskip")).Rets(`\vskip`),
		tt.Args(NewChar('a', Letter)).Rets(`'a' (letter)`),
		tt.Args(NewChar('{', BeginGroup)).Rets(`'{' (begin-group)`),
		tt.Args(NewActive('~')).Rets("~~"),
	})
}

func TestText(t *testing.T) {
	tt.Test(t, tt.Fn("Text", Text), tt.Table{
		tt.Args([]Token{NewCS("vskip"), NewChar('1', Other), NewChar('p', Letter), NewChar('t', Letter)}).
			Rets(`\vskip1pt`),
		tt.Args([]Token{NewCS("a"), NewChar('b', Letter)}).Rets(`\a b`),
		tt.Args([]Token{NewCS("{"), NewChar('b', Letter)}).Rets(`\{b`),
	})
}

func TestMeaningKey(t *testing.T) {
	if NewActive('a').MeaningKey() == NewCS("a").MeaningKey() {
		t.Errorf("active character and control sequence share a meaning key")
	}
}
