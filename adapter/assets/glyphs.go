package assets

import (
	"image/color"

	"vgaserial/adapter/palette"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Glyph cell size; every rendered character occupies one cell in the atlas.
const (
	GlyphWidth  = 8
	GlyphHeight = 13
)

// First glyph id; bitmap ids below it are free for images.
const GlyphIDBase = 0x1000

const (
	firstChar = 0x20
	lastChar  = 0x7E
)

var ink = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

type family struct {
	code     palette.Code
	baseline int16
	draw     func(d drivers.Displayer, baseline int16, r rune)
}

var families = []family{
	{code: palette.FontArial, baseline: 10, draw: drawTinyfont},
	{code: palette.FontConsolas, baseline: 11, draw: drawBasicfont},
}

var glyphStyles = []palette.Code{palette.StyleNormal, palette.StyleBold, palette.StyleCursive}

func drawTinyfont(d drivers.Displayer, baseline int16, r rune) {
	tinyfont.DrawChar(d, &proggy.TinySZ8pt7b, 0, baseline, r, ink)
}

func drawBasicfont(d drivers.Displayer, baseline int16, r rune) {
	face := basicfont.Face7x13
	dr, mask, mp, _, ok := face.Glyph(fixed.P(0, int(baseline)), r)
	if !ok {
		return
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			_, _, _, a := mask.At(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				d.SetPixel(int16(x), int16(y), ink)
			}
		}
	}
}

// cell is a Displayer over one glyph cell. Bold smears every pixel one
// column right; cursive shifts rows above the baseline right.
type cell struct {
	pix      []byte
	baseline int16
	bold     bool
	slant    bool
}

var _ drivers.Displayer = (*cell)(nil)

func (c *cell) Size() (x, y int16) { return GlyphWidth, GlyphHeight }
func (c *cell) Display() error     { return nil }

func (c *cell) SetPixel(x, y int16, col color.RGBA) {
	if col.A == 0 {
		return
	}
	if c.slant {
		x += (c.baseline - y) / 3
	}
	c.put(x, y)
	if c.bold {
		c.put(x+1, y)
	}
}

func (c *cell) put(x, y int16) {
	if x < 0 || y < 0 || x >= GlyphWidth || y >= GlyphHeight {
		return
	}
	c.pix[int(y)*GlyphWidth+int(x)] = Foreground
}

// addGlyphs renders printable ASCII for every font and style into the atlas.
func (s *Set) addGlyphs() error {
	id := uint16(GlyphIDBase)
	for _, fam := range families {
		for _, style := range glyphStyles {
			for ch := firstChar; ch <= lastChar; ch++ {
				c := &cell{
					pix:      make([]byte, GlyphWidth*GlyphHeight),
					baseline: fam.baseline,
					bold:     style == palette.StyleBold,
					slant:    style == palette.StyleCursive,
				}
				fam.draw(c, fam.baseline, rune(ch))
				if err := s.Atlas.Add(id, GlyphWidth, GlyphHeight, c.pix); err != nil {
					return err
				}
				s.Glyphs[GlyphKey{Char: byte(ch), Font: uint8(fam.code), Style: uint8(style)}] = id
				id++
			}
		}
	}
	return nil
}

// Default returns the built-in bitmaps plus the rendered fonts.
func Default() (*Set, error) {
	s := &Set{Atlas: &Atlas{}, Glyphs: GlyphTable{}}
	if err := addBuiltins(s.Atlas); err != nil {
		return nil, err
	}
	if err := s.addGlyphs(); err != nil {
		return nil, err
	}
	return s, nil
}
