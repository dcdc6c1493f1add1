package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"vgaserial/adapter/gfx"
	"vgaserial/adapter/palette"
	"vgaserial/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Fault is a panic recovered from the main loop.
type Fault struct {
	Value any
	Stack []byte
}

func (f *Fault) Error() string { return fmt.Sprintf("fault: %v", f.Value) }

func newFault(v any) *Fault {
	return &Fault{Value: v, Stack: debug.Stack()}
}

// halt reports err and stops the adapter. It never returns; the device
// needs a reset.
func halt(h hal.HAL, e *Engine, err error) {
	if e != nil {
		e.showFault(err)
	} else {
		logLine(h, "vgaserial halt: "+err.Error())
	}
	select {}
}

// showFault logs err and paints it over the frame buffer so it stays on
// the monitor.
func (e *Engine) showFault(err error) {
	lines := []string{"vgaserial halt:", err.Error()}
	if f, ok := err.(*Fault); ok {
		if len(f.Stack) > 0 {
			lines = append(lines, "stack:")
			for _, line := range strings.Split(string(f.Stack), "\n") {
				if line != "" {
					lines = append(lines, line)
				}
			}
		} else {
			lines = append(lines, "stack: unavailable")
		}
	}
	for _, line := range lines {
		logLine(e.h, line)
	}
	if led := e.h.LED(); led != nil {
		led.High()
	}

	e.gfx.Clear(uint8(palette.White))
	d := faultDisplay{g: e.gfx}
	font := &proggy.TinySZ8pt7b
	fg := color.RGBA{A: 0xFF}

	const lineHeight, fontOffset = 10, 8
	cols := int16(e.fb.Width() / faultCharWidth)
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if int(y)+lineHeight > e.fb.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, y+fontOffset, chunk, fg)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

const faultCharWidth = 6

// faultDisplay lets tinyfont draw straight into the frame buffer.
type faultDisplay struct {
	g *gfx.Engine
}

var _ drivers.Displayer = faultDisplay{}

func (d faultDisplay) Size() (x, y int16) {
	fb := d.g.FrameBuffer()
	return int16(fb.Width()), int16(fb.Height())
}

func (d faultDisplay) SetPixel(x, y int16, c color.RGBA) {
	fb := d.g.FrameBuffer()
	if x < 0 || y < 0 || int(x) >= fb.Width() || int(y) >= fb.Height() {
		return
	}
	d.g.SetPixel(int(x), int(y), uint8(palette.FromColor(c)))
}

func (d faultDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
