// Package scanout is the per-scanline state machine that feeds frame
// buffer rows to the video output.
//
// OnLineTick and OnTransferComplete run in the video clock's context and
// own all of the controller's state. The frame buffer is only read here;
// a draw racing a tick shows up as a one-frame tear.
package scanout

import "sync/atomic"

// Driver is the video hardware boundary.
type Driver interface {
	// ArmTransfer queues n bytes of buf starting at off for the next
	// pixel clock run.
	ArmTransfer(buf []byte, off, n int)
	// SetSync drives the vertical sync output; true means the pulse is on.
	SetSync(active bool)
	StartPixelClock()
	StopPixelClock()
	// Blank forces the pixel outputs to the blanking level.
	Blank()
}

// Timing counts scanline ticks within one frame.
type Timing struct {
	FramePeriod int // ticks per frame, blanking included
	VSyncPulse  int // ticks the sync pulse stays on at frame start
	ActiveStart int // first tick that transfers a line
	ActiveStop  int // last tick that transfers a line, inclusive
}

// VGA is 640x480 at 60 Hz with every stored row sent twice.
var VGA = Timing{
	FramePeriod: 525,
	VSyncPulse:  2,
	ActiveStart: 36,
	ActiveStop:  514,
}

// ActiveLines is the number of transfers per frame.
func (t Timing) ActiveLines() int { return t.ActiveStop - t.ActiveStart + 1 }

// State is a copy of the controller's registers.
type State struct {
	HSync  int  // tick counter within the frame
	Offset int  // byte offset of the next row to transfer
	VSync  bool // sync pulse on

	// Last armed transfer.
	XferOffset int
	XferLen    int
}

// Controller turns scanline ticks into sync levels and line transfers.
type Controller struct {
	timing Timing
	drv    Driver
	buf    []byte
	stride int

	hsync  int
	offset int
	vsync  bool
	xfer   [2]int

	frames    atomic.Uint64
	transfers atomic.Uint64
}

// New returns a controller reading buf in rows of stride bytes.
func New(t Timing, drv Driver, buf []byte, stride int) *Controller {
	return &Controller{timing: t, drv: drv, buf: buf, stride: stride}
}

// OnLineTick handles one scanline tick.
func (c *Controller) OnLineTick() {
	c.hsync++
	if c.hsync >= c.timing.FramePeriod {
		c.hsync = 0
		c.offset = 0
		c.frames.Add(1)
	}

	c.vsync = c.hsync < c.timing.VSyncPulse
	c.drv.SetSync(c.vsync)

	if c.hsync < c.timing.ActiveStart || c.hsync > c.timing.ActiveStop {
		return
	}
	// A timing wider than the buffer would run past the last row; hold
	// the pointer there instead.
	if c.offset+c.stride > len(c.buf) {
		c.offset = len(c.buf) - c.stride
		if c.offset < 0 {
			return
		}
	}
	c.xfer = [2]int{c.offset, c.stride}
	c.drv.ArmTransfer(c.buf, c.offset, c.stride)
	c.drv.StartPixelClock()
	c.transfers.Add(1)

	if c.hsync&1 == 1 {
		c.offset += c.stride
	}
}

// OnTransferComplete handles the end of a line transfer.
func (c *Controller) OnTransferComplete() {
	c.drv.StopPixelClock()
	c.drv.Blank()
}

// State must be called from the video clock's context.
func (c *Controller) State() State {
	return State{
		HSync:      c.hsync,
		Offset:     c.offset,
		VSync:      c.vsync,
		XferOffset: c.xfer[0],
		XferLen:    c.xfer[1],
	}
}

// Stats is safe to call from any goroutine.
type Stats struct {
	Frames    uint64
	Transfers uint64
}

func (c *Controller) Stats() Stats {
	return Stats{Frames: c.frames.Load(), Transfers: c.transfers.Load()}
}
