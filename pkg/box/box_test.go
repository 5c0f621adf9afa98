package box

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
	"src.texel.sh/pkg/testutil"
)

var pt = dimen.PT

func TestNewHBox(t *testing.T) {
	a := Char{'a', 5 * pt, 4 * pt, 0}
	g := Char{'g', 5 * pt, 4 * pt, 2 * pt}
	b := NewHBox([]HorizontalElem{a, HSkip{glue.FromDimen(3 * pt)}, g, Empty(pt)})

	want := Box{Kind: HBox, Width: 14 * pt, Height: 4 * pt, Depth: 2 * pt,
		HList: []HorizontalElem{a, HSkip{glue.FromDimen(3 * pt)}, g, Empty(pt)}}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("NewHBox (-want +got):\n%s", diff)
	}
}

func TestNewHBox_NegativeDimensionsDoNotCount(t *testing.T) {
	b := NewHBox([]HorizontalElem{Box{Height: -pt, Depth: -pt}})
	if b.Height != 0 || b.Depth != 0 {
		t.Errorf("height, depth = %v, %v; want 0, 0", b.Height, b.Depth)
	}
}

func TestNewVBox(t *testing.T) {
	b1 := Box{Width: 10 * pt, Height: 4 * pt, Depth: 1 * pt}
	b2 := Box{Width: 20 * pt, Height: 5 * pt, Depth: 2 * pt}
	skip := VSkip{glue.FromDimen(3 * pt)}

	tests := []struct {
		name                 string
		list                 []VerticalElem
		height, depth, width dimen.Dimen
	}{
		{"empty", nil, 0, 0, 0},
		{"box then box", []VerticalElem{b1, b2}, 10 * pt, 2 * pt, 20 * pt},
		{"box glue box", []VerticalElem{b1, skip, b2}, 13 * pt, 2 * pt, 20 * pt},
		{"trailing glue", []VerticalElem{b1, skip}, 8 * pt, 0, 10 * pt},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := NewVBox(test.list)
			if b.Height != test.height || b.Depth != test.depth || b.Width != test.width {
				t.Errorf("got %v, want (%v+%v)x%v", b, test.height, test.depth, test.width)
			}
		})
	}
}

func TestShow(t *testing.T) {
	inner := NewHBox([]HorizontalElem{Char{'a', 5 * pt, 4 * pt, 0}, HSkip{glue.FromDimen(pt)}})
	list := []VerticalElem{VSkip{glue.FromDimen(2 * pt)}, NewVBox([]VerticalElem{inner})}

	want := testutil.Dedent(`
		\glue 2.0pt
		\vbox(4.0+0.0)x6.0
		.\hbox(4.0+0.0)x6.0
		..a
		..\glue 1.0pt`)
	if got := ShowList(list); got != want {
		t.Errorf("ShowList:\n%s\nwant:\n%s", got, want)
	}
}
