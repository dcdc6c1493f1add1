// Package proto implements the text command protocol: tokenizing a
// received line and decoding it into a typed Record.
package proto

import "vgaserial/adapter/palette"

// Kind identifies the command carried by a Record.
type Kind uint8

const (
	KindNone Kind = iota
	KindLine
	KindText
	KindRect
	KindBitmap
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	case KindRect:
		return "rect"
	case KindBitmap:
		return "bitmap"
	case KindClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Field capacities of the fixed-size record buffers.
const (
	MaxTextLen     = 128
	MaxFontNameLen = 30
	MaxNameLen     = 12
)

type Line struct {
	X1, Y1 uint16
	X2, Y2 uint16
	Color  palette.Code
	Weight uint8
}

type Text struct {
	X, Y  uint16
	Color palette.Code
	// Text is NUL padded; slots past the string hold zero bytes.
	Text  [MaxTextLen]byte
	Font  palette.Code
	Size  uint8
	Style palette.Code
}

// String returns the text up to the first NUL.
func (t *Text) String() string {
	for i, c := range t.Text {
		if c == 0 {
			return string(t.Text[:i])
		}
	}
	return string(t.Text[:])
}

type Rect struct {
	X, Y          uint16
	Width, Height uint16
	Fill          palette.Code
	Filled        bool
	Border        palette.Code
	BorderWidth   uint16
}

type Bitmap struct {
	ID   uint16
	X, Y uint16
}

type Clear struct {
	Color palette.Code
}

// Record is the pending command. Only the variant selected by Kind is
// meaningful; Reset returns every field to zero.
//
// A Record is reused for every line and is not safe for concurrent use.
type Record struct {
	Kind   Kind
	Line   Line
	Text   Text
	Rect   Rect
	Bitmap Bitmap
	Clear  Clear
}

func (r *Record) Reset() {
	*r = Record{}
}
