// Package box defines typeset boxes and the elements of horizontal and
// vertical lists.
package box

import (
	"fmt"
	"strings"

	"src.texel.sh/pkg/dimen"
	"src.texel.sh/pkg/glue"
)

// Kind tells horizontal boxes from vertical ones.
type Kind uint8

// Box kinds.
const (
	HBox Kind = iota
	VBox
)

func (k Kind) String() string {
	if k == VBox {
		return "vbox"
	}
	return "hbox"
}

// Box is a typeset box. A Box is a value; once made it is not changed, except
// for the dimensions of a box held in a register, which assignments can set.
type Box struct {
	Kind   Kind
	Width  dimen.Dimen
	Height dimen.Dimen
	Depth  dimen.Dimen
	// Contents of an HBox.
	HList []HorizontalElem
	// Contents of a VBox.
	VList []VerticalElem
}

// IgnoreDepth is the value of \prevdepth that suppresses the interline glue
// before the next box of a vertical list.
const IgnoreDepth = -1000 * dimen.PT

// HorizontalElem is an element of a horizontal list.
type HorizontalElem interface {
	isHorizontalElem()
}

// VerticalElem is an element of a vertical list: a Box or a VSkip.
type VerticalElem interface {
	isVerticalElem()
}

// Char is a typeset character.
type Char struct {
	Rune   rune
	Width  dimen.Dimen
	Height dimen.Dimen
	Depth  dimen.Dimen
}

// HSkip is horizontal glue.
type HSkip struct {
	Glue glue.Glue
}

// VSkip is vertical glue.
type VSkip struct {
	Glue glue.Glue
}

func (Box) isHorizontalElem()   {}
func (Box) isVerticalElem()     {}
func (Char) isHorizontalElem()  {}
func (HSkip) isHorizontalElem() {}
func (VSkip) isVerticalElem()   {}

// NewHBox packs a horizontal list at its natural size: the width is the sum
// of the widths and glue, height and depth are the largest of the contents,
// and never negative.
func NewHBox(list []HorizontalElem) Box {
	b := Box{Kind: HBox, HList: list}
	for _, e := range list {
		switch e := e.(type) {
		case Char:
			b.Width += e.Width
			b.Height = max(b.Height, e.Height)
			b.Depth = max(b.Depth, e.Depth)
		case Box:
			b.Width += e.Width
			b.Height = max(b.Height, e.Height)
			b.Depth = max(b.Depth, e.Depth)
		case HSkip:
			b.Width += e.Glue.Space
		}
	}
	return b
}

// NewVBox packs a vertical list at its natural size. The height is the total
// of all box heights, depths and glue, except that the depth of the last box
// becomes the depth of the result when no glue follows it. The width is the
// largest box width.
func NewVBox(list []VerticalElem) Box {
	b := Box{Kind: VBox, VList: list}
	var x, d dimen.Dimen
	for _, e := range list {
		switch e := e.(type) {
		case Box:
			x += d + e.Height
			d = e.Depth
			b.Width = max(b.Width, e.Width)
		case VSkip:
			x += d + e.Glue.Space
			d = 0
		}
	}
	b.Height, b.Depth = x, d
	return b
}

// Empty returns an empty horizontal box of the given width.
func Empty(width dimen.Dimen) Box {
	return Box{Kind: HBox, Width: width}
}

// Summary formats the kind and dimensions of b as "\hbox(6.94444+0.0)x5.0".
func (b Box) Summary() string {
	return fmt.Sprintf(`\%s(%s+%s)x%s`, b.Kind,
		dimen.Decimal(b.Height), dimen.Decimal(b.Depth), dimen.Decimal(b.Width))
}

func (b Box) String() string {
	return b.Summary()
}

// Show formats b and its contents, one element per line. Nested contents are
// indented with a dot per level.
func (b Box) Show() string {
	var sb strings.Builder
	show(&sb, b, "")
	return strings.TrimSuffix(sb.String(), "\n")
}

// ShowList formats a vertical list the way Show formats box contents, without
// indentation.
func ShowList(list []VerticalElem) string {
	var sb strings.Builder
	for _, e := range list {
		showElem(&sb, e, "")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func show(sb *strings.Builder, b Box, indent string) {
	sb.WriteString(indent + b.Summary() + "\n")
	for _, e := range b.HList {
		showElem(sb, e, indent+".")
	}
	for _, e := range b.VList {
		showElem(sb, e, indent+".")
	}
}

func showElem(sb *strings.Builder, e any, indent string) {
	switch e := e.(type) {
	case Box:
		show(sb, e, indent)
	case Char:
		fmt.Fprintf(sb, "%s%c\n", indent, e.Rune)
	case HSkip:
		sb.WriteString(indent + `\glue ` + e.Glue.String() + "\n")
	case VSkip:
		sb.WriteString(indent + `\glue ` + e.Glue.String() + "\n")
	}
}
