package app

import (
	"fmt"
	"os"
	"runtime"

	"vgaserial/adapter/assets"
	"vgaserial/adapter/gfx"
	"vgaserial/adapter/palette"
	"vgaserial/adapter/proto"
	"vgaserial/adapter/receiver"
	"vgaserial/adapter/scanout"
	"vgaserial/hal"
	"vgaserial/internal/buildinfo"
)

type Config struct {
	// Verbose acknowledges every executed command on the log.
	Verbose bool
	// AssetsDir adds "<id>.bmp" files to the built-in bitmaps.
	AssetsDir string
	// Timing defaults to scanout.VGA.
	Timing scanout.Timing
}

// Engine owns the adapter's state: the frame buffer, the command record
// being executed and the scanout controller. Draw calls happen only in
// Step; the receiver and scanout callbacks run in their own contexts.
type Engine struct {
	h   hal.HAL
	cfg Config

	fb    *gfx.FrameBuffer
	gfx   *gfx.Engine
	disp  *proto.Dispatcher
	rec   proto.Record
	rx    receiver.Receiver
	line  receiver.Line
	scan  *scanout.Controller
	diag  *diagnostics
	stats scanout.Stats
}

// New initializes the adapter with default config and returns its main
// loop step.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	e, err := newEngine(h, cfg)
	if err != nil {
		logLine(h, "vgaserial: "+err.Error())
		return func() error { return err }
	}
	e.start()
	return func() error {
		err := e.safeStep()
		if err != nil {
			e.showFault(err)
		}
		return err
	}
}

// Run starts the adapter and never returns (TinyGo/native entrypoint).
// A fault halts the adapter.
func Run(h hal.HAL) {
	RunWithConfig(h, Config{})
}

func RunWithConfig(h hal.HAL, cfg Config) {
	e, err := newEngine(h, cfg)
	if err != nil {
		halt(h, nil, err)
	}
	e.start()
	for {
		if err := e.safeStep(); err != nil {
			halt(h, e, err)
		}
		runtime.Gosched()
	}
}

func newEngine(h hal.HAL, cfg Config) (*Engine, error) {
	if cfg.Timing == (scanout.Timing{}) {
		cfg.Timing = scanout.VGA
	}

	set, err := assets.Default()
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if cfg.AssetsDir != "" {
		n, err := set.LoadDir(os.DirFS(cfg.AssetsDir))
		if err != nil {
			return nil, fmt.Errorf("assets %s: %w", cfg.AssetsDir, err)
		}
		logLine(h, fmt.Sprintf("assets: %d bitmaps from %s", n, cfg.AssetsDir))
	}

	e := &Engine{h: h, cfg: cfg}
	e.diag = &diagnostics{serial: h.Serial(), log: h.Logger()}
	e.fb = gfx.NewFrameBuffer(gfx.DisplayWidth, gfx.DisplayHeight)
	e.gfx = gfx.NewEngine(e.fb, set, e.diag)
	e.disp = proto.NewDispatcher(palette.NewResolver(e.diag), e.diag)
	e.scan = scanout.New(cfg.Timing, h.Video(), e.fb.Bytes(), e.fb.Stride())
	return e, nil
}

func (e *Engine) start() {
	logLine(e.h, "vgaserial "+buildinfo.Short())
	if led := e.h.LED(); led != nil {
		led.Low()
	}
	e.h.Video().Start(e.cfg.Timing.FramePeriod, e.scan.OnLineTick, e.scan.OnTransferComplete)
	go e.readSerial()
}

// Step reports receive errors and executes every pending line.
func (e *Engine) Step() error {
	if err := e.rx.Err(); err != nil {
		e.diag.reportErr(err)
	}
	for e.rx.Next(&e.line) {
		_ = e.Dispatch(e.line.Bytes())
	}
	if e.cfg.Verbose {
		e.logStats()
	}
	return nil
}

// safeStep turns a panic in Step into a *Fault.
func (e *Engine) safeStep() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newFault(r)
		}
	}()
	return e.Step()
}

// statsEvery is how many frames pass between verbose stats lines.
const statsEvery = 600

func (e *Engine) logStats() {
	s := e.scan.Stats()
	if s.Frames/statsEvery == e.stats.Frames/statsEvery {
		return
	}
	e.stats = s
	logLine(e.h, fmt.Sprintf("scanout: frames=%d transfers=%d", s.Frames, s.Transfers))
}

func (e *Engine) FrameBuffer() *gfx.FrameBuffer { return e.fb }
func (e *Engine) Stats() scanout.Stats          { return e.scan.Stats() }

func logLine(h hal.HAL, s string) {
	if h == nil {
		return
	}
	if l := h.Logger(); l != nil {
		l.WriteLineString(s)
	}
}
