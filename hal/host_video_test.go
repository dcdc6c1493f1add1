//go:build !tinygo

package hal

import (
	"bytes"
	"testing"
)

func TestRGB888From332(t *testing.T) {
	tcs := []struct {
		p       uint8
		r, g, b uint8
	}{
		{0x00, 0, 0, 0},
		{0xFF, 255, 255, 255},
		{0xE0, 255, 0, 0},
		{0x1C, 0, 255, 0},
		{0x03, 0, 0, 255},
	}
	for _, tc := range tcs {
		r, g, b := rgb888From332(tc.p)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("rgb888From332(%#x) = %d,%d,%d; want %d,%d,%d", tc.p, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestHostVideoRastersTransfers(t *testing.T) {
	const width, lines = 4, 3
	v := newHostVideo(width, lines)
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	line := 0
	v.Start(5, func() {
		switch line {
		case 0:
			v.SetSync(true)
		case 1:
			v.SetSync(false)
			v.ArmTransfer(src, 0, 4)
			v.StartPixelClock()
		case 2:
			v.ArmTransfer(src, 4, 2)
			v.StartPixelClock()
		}
		line++
	}, func() {
		v.StopPixelClock()
		v.Blank()
	})

	v.runFrame()
	if v.transfers != 2 {
		t.Fatalf("transfers = %d; want 2", v.transfers)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(v.back, want) {
		t.Fatalf("back = %v; want %v", v.back, want)
	}

	// The next rising sync edge publishes the raster.
	v.SetSync(true)
	if v.frameCount() != 2 {
		t.Fatalf("frameCount() = %d; want 2", v.frameCount())
	}
	if !bytes.Equal(v.front, want) {
		t.Fatalf("front = %v; want %v", v.front, want)
	}

	rgba := make([]byte, (width-1)*lines*4)
	v.snapshotRGBA(rgba, width-1)
	if rgba[0] != 0 || rgba[3] != 0xFF {
		t.Fatalf("snapshot pixel 0 = %v", rgba[:4])
	}
}

func TestHostVideoIgnoresStoppedClock(t *testing.T) {
	v := newHostVideo(4, 2)
	v.Start(3, func() { v.ArmTransfer([]byte{9, 9, 9, 9}, 0, 4) }, nil)
	v.runFrame()
	if v.transfers != 0 {
		t.Fatalf("transfers = %d; want 0 without a pixel clock", v.transfers)
	}
}

func TestHostVideoArmOutOfRange(t *testing.T) {
	v := newHostVideo(4, 2)
	v.ArmTransfer([]byte{1, 2}, 5, 4)
	if v.src != nil {
		t.Fatalf("src = %v; want nil", v.src)
	}
	v.ArmTransfer([]byte{1, 2, 3}, 1, 10)
	if !bytes.Equal(v.src, []byte{2, 3}) {
		t.Fatalf("src = %v; want [2 3]", v.src)
	}
}
