package dimen

import (
	"testing"

	"src.texel.sh/pkg/tt"
)

func TestFromDecimal(t *testing.T) {
	tt.Test(t, tt.Fn("FromDecimal", FromDecimal), tt.Table{
		tt.Args(int32(12), "", Point).Rets(12*PT, nil),
		tt.Args(int32(0), "5", Point).Rets(PT/2, nil),
		tt.Args(int32(1), "", Inch).Rets(Dimen(4736286), nil),
		tt.Args(int32(1), "", Pica).Rets(12*PT, nil),
		tt.Args(int32(2), "54", Centimeter).Rets(Dimen(4736274), nil),
		tt.Args(int32(100), "", ScaledPoint).Rets(Dimen(100), nil),
		tt.Args(int32(16383), "99999", Point).Rets(Max, nil),
		tt.Args(int32(16384), "", Point).Rets(Max, ErrTooLarge),
	})
}

func TestRoundDecimals(t *testing.T) {
	tt.Test(t, tt.Fn("RoundDecimals", RoundDecimals), tt.Table{
		tt.Args("").Rets(Dimen(0)),
		tt.Args("5").Rets(Dimen(32768)),
		tt.Args("25").Rets(Dimen(16384)),
		tt.Args("1").Rets(Dimen(6554)),
	})
}

func TestString(t *testing.T) {
	tt.Test(t, tt.Fn("Dimen.String", Dimen.String), tt.Table{
		tt.Args(12 * PT).Rets("12.0pt"),
		tt.Args(-PT).Rets("-1.0pt"),
		tt.Args(PT / 2).Rets("0.5pt"),
		tt.Args(Dimen(218453)).Rets("3.33333pt"),
		tt.Args(Max).Rets("16383.99998pt"),
		tt.Args(Dimen(1)).Rets("0.00002pt"),
	})
}

func TestParseUnit(t *testing.T) {
	tt.Test(t, tt.Fn("ParseUnit", ParseUnit), tt.Table{
		tt.Args("pt").Rets(Point, true),
		tt.Args("PT").Rets(Point, true),
		tt.Args("dd").Rets(DidotPoint, true),
		tt.Args("em").Rets(Unit(0), false),
	})
}

func TestSpringAdd(t *testing.T) {
	tt.Test(t, tt.Fn("Spring.Add", Spring.Add), tt.Table{
		tt.Args(Finite(PT), Finite(2*PT)).Rets(Finite(3 * PT)),
		tt.Args(Finite(PT), Infinite(Fil, PT)).Rets(Infinite(Fil, PT)),
		tt.Args(Infinite(Fill, PT), Infinite(Fil, 3*PT)).Rets(Infinite(Fill, PT)),
		tt.Args(Finite(PT), Infinite(Fil, 0)).Rets(Finite(PT)),
		tt.Args(Infinite(Fil, PT), Infinite(Fil, -PT)).Rets(Finite(0)),
	})
}

func TestSpringString(t *testing.T) {
	tt.Test(t, tt.Fn("Spring.String", Spring.String), tt.Table{
		tt.Args(Finite(PT)).Rets("1.0pt"),
		tt.Args(Infinite(Fil, PT)).Rets("1.0fil"),
		tt.Args(Infinite(Filll, -2*PT)).Rets("-2.0filll"),
	})
}

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("Parse", Parse), tt.Table{
		tt.Args("12pt").Rets(12*PT, nil),
		tt.Args(" -1.5 PT ").Rets(-3*PT/2, nil),
		tt.Args("1in").Rets(Dimen(4736286), nil),
		tt.Args(".5pt").Rets(PT/2, nil),
		tt.Args("12").Rets(Dimen(0), tt.Any),
		tt.Args("pt").Rets(Dimen(0), tt.Any),
	})
}

func TestParseSpring(t *testing.T) {
	tt.Test(t, tt.Fn("ParseSpring", ParseSpring), tt.Table{
		tt.Args("1fil").Rets(Infinite(Fil, PT), nil),
		tt.Args("2 FILLL").Rets(Infinite(Filll, 2*PT), nil),
		tt.Args("1.5pt").Rets(Finite(3*PT/2), nil),
	})
}

func TestMulDecimal(t *testing.T) {
	tt.Test(t, tt.Fn("Dimen.MulDecimal", Dimen.MulDecimal), tt.Table{
		tt.Args(20*PT, int32(1), "5").Rets(30*PT, nil),
		tt.Args(20*PT, int32(2), "").Rets(40*PT, nil),
		tt.Args(-4*PT, int32(0), "25").Rets(-PT, nil),
		tt.Args(10000*PT, int32(2), "").Rets(Max, ErrTooLarge),
	})
}
