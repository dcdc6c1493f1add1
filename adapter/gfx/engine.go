package gfx

import (
	"math"

	"vgaserial/adapter/assets"
)

// TextSlots is how many character cells a text command renders,
// regardless of the length of its string.
const TextSlots = 20

// MsgNoBitmap is reported when a bitmap id is not in the atlas.
const MsgNoBitmap = "no bitmap"

// Reporter receives diagnostics.
type Reporter interface {
	Report(msg string)
}

// Engine draws into a FrameBuffer. It is the frame buffer's only writer
// and must be driven from a single goroutine.
type Engine struct {
	fb     *FrameBuffer
	assets *assets.Set
	rep    Reporter
}

func NewEngine(fb *FrameBuffer, set *assets.Set, rep Reporter) *Engine {
	return &Engine{fb: fb, assets: set, rep: rep}
}

func (e *Engine) FrameBuffer() *FrameBuffer { return e.fb }

// SetPixel writes one pixel. A coordinate off the display writes (0,0)
// instead, so every write stays inside the buffer.
func (e *Engine) SetPixel(x, y int, c uint8) {
	if x < 0 || x >= e.fb.width || y < 0 || y >= e.fb.height {
		x, y = 0, 0
	}
	e.fb.pix[y*e.fb.stride+x] = c
}

// Clear fills the visible area with c.
func (e *Engine) Clear(c uint8) {
	for y := 0; y < e.fb.height; y++ {
		row := e.fb.pix[y*e.fb.stride : y*e.fb.stride+e.fb.width]
		for x := range row {
			row[x] = c
		}
	}
}

// Line steps one pixel at a time along the longer axis and rounds the
// other coordinate from the slope. Width is approximated by repeating each
// pixel width/2 times on either side along the minor axis, which is exact
// for horizontal and vertical lines and thinner than asked on diagonals.
func (e *Engine) Line(x1, y1, x2, y2 int, c uint8, width int) {
	dx, dy := x2-x1, y2-y1
	side := width / 2

	if abs(dx) >= abs(dy) {
		slope := 0.0
		if dx != 0 {
			slope = float64(dy) / float64(dx)
		}
		step := sign(dx)
		for i := 0; i <= abs(dx); i++ {
			x := x1 + i*step
			y := y1 + int(math.Round(slope*float64(i*step)))
			e.SetPixel(x, y, c)
			for o := 1; o <= side; o++ {
				e.SetPixel(x, y-o, c)
				e.SetPixel(x, y+o, c)
			}
		}
		return
	}

	slope := float64(dx) / float64(dy)
	step := sign(dy)
	for i := 0; i <= abs(dy); i++ {
		y := y1 + i*step
		x := x1 + int(math.Round(slope*float64(i*step)))
		e.SetPixel(x, y, c)
		for o := 1; o <= side; o++ {
			e.SetPixel(x-o, y, c)
			e.SetPixel(x+o, y, c)
		}
	}
}

// Rect draws a border of bw pixels and optionally fills the inside. A zero
// width or height collapses to a single column or row.
//
// Border columns span the full height; border rows only span the columns
// between them, so corners are painted once. Spans are clipped to the
// display; whatever falls outside lands on (0,0) once, in the colour of
// the last such write.
func (e *Engine) Rect(x, y, w, h int, fill uint8, filled bool, border uint8, bw int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x2, y2 := x+w-1, y+h-1

	redirect, pending := uint8(0), false
	cols := min(bw, (w+1)/2)
	for i := 0; i < cols; i++ {
		if e.vline(x+i, y, y2, border) || e.vline(x2-i, y, y2, border) {
			redirect, pending = border, true
		}
	}
	rows := min(bw, (h+1)/2)
	for j := 0; j < rows; j++ {
		if e.hline(y+j, x+cols, x2-cols, border) || e.hline(y2-j, x+cols, x2-cols, border) {
			redirect, pending = border, true
		}
	}

	if filled {
		fx1, fx2 := x+cols, x2-cols
		fy1, fy2 := y+rows, y2-rows
		if fx1 <= fx2 && fy1 <= fy2 {
			if fx1 <= 0 && fx2 >= 0 && fy1 <= 0 && fy2 >= 0 {
				// The fill paints (0,0) itself, after every border write.
				pending = false
			}
			lo, hi, clipped := clip(fy1, fy2, e.fb.height)
			for py := lo; py <= hi; py++ {
				if e.hline(py, fx1, fx2, fill) {
					clipped = true
				}
			}
			if clipped {
				redirect, pending = fill, true
			}
		}
	}

	if pending {
		e.fb.pix[0] = redirect
	}
}

// hline fills row y from x1 to x2 inclusive, clipped to the display. It
// reports whether any of the span was off-screen.
func (e *Engine) hline(y, x1, x2 int, c uint8) bool {
	if x1 > x2 {
		return false
	}
	if y < 0 || y >= e.fb.height {
		return true
	}
	lo, hi, clipped := clip(x1, x2, e.fb.width)
	row := e.fb.pix[y*e.fb.stride:]
	for px := lo; px <= hi; px++ {
		row[px] = c
	}
	return clipped
}

// vline is hline for column x.
func (e *Engine) vline(x, y1, y2 int, c uint8) bool {
	if y1 > y2 {
		return false
	}
	if x < 0 || x >= e.fb.width {
		return true
	}
	lo, hi, clipped := clip(y1, y2, e.fb.height)
	for py := lo; py <= hi; py++ {
		e.fb.pix[py*e.fb.stride+x] = c
	}
	return clipped
}

// clip narrows [lo, hi] to [0, n-1]. The result is empty (lo > hi) when
// nothing is visible.
func clip(lo, hi, n int) (int, int, bool) {
	clipped := false
	if lo < 0 {
		lo, clipped = 0, true
	}
	if hi > n-1 {
		hi, clipped = n-1, true
	}
	return lo, hi, clipped
}

// Bitmap copies atlas bitmap id to (x, y). An unknown id draws the first
// atlas entry and is reported. A non-zero override paints Foreground
// bytes in that colour and everything else as 0xFF; double draws each
// source pixel as a 2x2 block.
func (e *Engine) Bitmap(x, y int, id uint16, override uint8, double bool) {
	if e.assets == nil || e.assets.Atlas == nil {
		return
	}
	a := e.assets.Atlas
	ent, ok := a.Lookup(id)
	if !ok {
		e.report(MsgNoBitmap)
		if ent, ok = a.First(); !ok {
			return
		}
	}

	scale := 1
	if double {
		scale = 2
	}
	pix := a.Pixels(ent)
	for row := 0; row < ent.Height; row++ {
		for col := 0; col < ent.Width; col++ {
			b := pix[row*ent.Width+col]
			if override != 0 {
				if b == assets.Foreground {
					b = override
				} else {
					b = 0xFF
				}
			}
			px, py := x+col*scale, y+row*scale
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					e.SetPixel(px+sx, py+sy, b)
				}
			}
		}
	}
}

// Text renders TextSlots character cells starting at (x, y), 8 pixels
// apart, or 16 and doubled when size is 2. Slots past the end of text,
// and characters without a glyph, are skipped.
func (e *Engine) Text(x, y int, c uint8, text []byte, font, size, style uint8) {
	if e.assets == nil {
		return
	}
	advance := assets.GlyphWidth
	double := size == 2
	if double {
		advance *= 2
	}
	for slot := 0; slot < TextSlots; slot++ {
		var ch byte
		if slot < len(text) {
			ch = text[slot]
		}
		id, ok := e.assets.Glyphs.Lookup(ch, font, style)
		if !ok {
			continue
		}
		e.Bitmap(x+slot*advance, y, id, c, double)
	}
}

func (e *Engine) report(msg string) {
	if e.rep != nil {
		e.rep.Report(msg)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
