// Package gfx rasterises commands into the palette-indexed frame buffer
// that the scanout controller reads.
package gfx

// Default display geometry.
const (
	DisplayWidth  = 320
	DisplayHeight = 240
)

// FrameBuffer is a row-major grid of palette indices. Each row carries one
// extra byte past the visible width; drawing never touches it, so it holds
// the blanking level at the end of every line transfer.
type FrameBuffer struct {
	width  int
	height int
	stride int
	pix    []byte
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	stride := width + 1
	return &FrameBuffer{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]byte, stride*height),
	}
}

func (f *FrameBuffer) Width() int  { return f.width }
func (f *FrameBuffer) Height() int { return f.height }
func (f *FrameBuffer) Stride() int { return f.stride }

// Bytes returns the backing store; the scanout path reads it directly.
func (f *FrameBuffer) Bytes() []byte { return f.pix }

// At returns the palette index at (x, y); out of range reads return 0.
func (f *FrameBuffer) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	return f.pix[y*f.stride+x]
}
