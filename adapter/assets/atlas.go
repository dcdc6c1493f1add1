// Package assets holds the bitmap atlas and the glyph table used by the
// text primitive.
package assets

import (
	"errors"
	"fmt"
)

// Foreground is the atlas byte that a colour override repaints.
const Foreground = 0xFF

var (
	ErrOutOfBounds = errors.New("bitmap extent outside atlas")
	ErrDuplicateID = errors.New("duplicate bitmap id")
	ErrBadSize     = errors.New("bad bitmap size")
)

// Entry locates one bitmap inside the shared atlas.
type Entry struct {
	ID     uint16
	Offset int
	Width  int
	Height int
}

// Atlas is one shared pixel buffer plus per-bitmap metadata. Lookups are
// a linear scan in insertion order.
type Atlas struct {
	pix     []byte
	entries []Entry
}

// NewAtlas wraps existing pixel data. Every entry must lie inside pix.
func NewAtlas(pix []byte, entries []Entry) (*Atlas, error) {
	a := &Atlas{pix: pix}
	for _, e := range entries {
		if err := a.register(e); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Add appends a width×height bitmap.
func (a *Atlas) Add(id uint16, width, height int, pix []byte) error {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return fmt.Errorf("bitmap %d: %w: %dx%d with %d bytes", id, ErrBadSize, width, height, len(pix))
	}
	e := Entry{ID: id, Offset: len(a.pix), Width: width, Height: height}
	a.pix = append(a.pix, pix...)
	if err := a.register(e); err != nil {
		a.pix = a.pix[:e.Offset]
		return err
	}
	return nil
}

func (a *Atlas) register(e Entry) error {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("bitmap %d: %w: %dx%d", e.ID, ErrBadSize, e.Width, e.Height)
	}
	if e.Offset < 0 || e.Offset+e.Width*e.Height > len(a.pix) {
		return fmt.Errorf("bitmap %d: %w", e.ID, ErrOutOfBounds)
	}
	if _, ok := a.Lookup(e.ID); ok {
		return fmt.Errorf("bitmap %d: %w", e.ID, ErrDuplicateID)
	}
	a.entries = append(a.entries, e)
	return nil
}

func (a *Atlas) Lookup(id uint16) (Entry, bool) {
	for _, e := range a.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// First returns the first entry added; it stands in for unknown ids.
func (a *Atlas) First() (Entry, bool) {
	if len(a.entries) == 0 {
		return Entry{}, false
	}
	return a.entries[0], true
}

// Pixels returns the row-major bytes of e.
func (a *Atlas) Pixels(e Entry) []byte {
	return a.pix[e.Offset : e.Offset+e.Width*e.Height]
}

func (a *Atlas) Len() int { return len(a.entries) }

// GlyphKey selects one rendered character.
type GlyphKey struct {
	Char  byte
	Font  uint8
	Style uint8
}

// GlyphTable maps characters to atlas ids. It is filled once at startup.
type GlyphTable map[GlyphKey]uint16

func (g GlyphTable) Lookup(char byte, font, style uint8) (uint16, bool) {
	id, ok := g[GlyphKey{Char: char, Font: font, Style: style}]
	return id, ok
}

// Set bundles the atlas with the glyph table that points into it.
type Set struct {
	Atlas  *Atlas
	Glyphs GlyphTable
}
