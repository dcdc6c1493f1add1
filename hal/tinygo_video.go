//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

// One 640x480@60 scanline.
const lineDuration = 31778 * time.Nanosecond

func newPinVideo(hsync, vsync machine.Pin, data [8]machine.Pin) *pinVideo {
	v := &pinVideo{hsync: hsync, vsync: vsync}
	for _, p := range []machine.Pin{hsync, vsync} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}
	for i, p := range data {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
		v.data[i] = p
	}
	return v
}

func (v *pinVideo) Start(linesPerFrame int, onTick, onComplete func()) {
	go func() {
		t := time.NewTicker(lineDuration)
		defer t.Stop()
		for range t.C {
			v.line(onTick, onComplete)
		}
	}()
}
