//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Hz is the frame rate; every frame runs one full scanline period.
	Hz     int
	Frames uint64
	Host   HostConfig
}

// RunHeadless runs the adapter without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	hh, err := New(cfg.Host)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	defer h.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	h.serial.onInterrupt(cancel)

	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			h.video.runFrame()
			if cfg.Frames > 0 && h.video.frameCount() >= cfg.Frames {
				return nil
			}
		}
	}
}
