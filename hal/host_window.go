//go:build !tinygo && cgo

package hal

import (
	"image"
	"sync/atomic"

	"vgaserial/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// Visible columns; the last stored byte of each line is the blanking byte.
const hostVisibleCols = hostVideoWidth - 1

// RunWindow starts a desktop window that plays the monitor: it shows the
// raster produced by the scanout path, not the frame buffer itself.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg HostConfig) error {
	hh, err := New(cfg)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	defer h.Close()
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	h.serial.onInterrupt(func() { g.quit.Store(true) })
	ebiten.SetWindowTitle("vgaserial (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(hostVisibleCols*2*2, hostVideoLines*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
	quit  atomic.Bool
}

func (g *hostGame) Update() error {
	if g.quit.Load() {
		return ebiten.Termination
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	g.h.video.runFrame()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, hostVisibleCols, hostVideoLines))
		g.fbImg = ebiten.NewImage(hostVisibleCols, hostVideoLines)
	}

	g.h.video.snapshotRGBA(g.img.Pix, hostVisibleCols)
	g.fbImg.WritePixels(g.img.Pix)

	// Stored pixels are twice as wide as scanned lines are tall.
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2, 1)
	screen.DrawImage(g.fbImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return hostVisibleCols * 2, hostVideoLines
}
