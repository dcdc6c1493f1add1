package scanout

import "testing"

type event struct {
	kind string
	off  int
	n    int
	on   bool
}

type recordingDriver struct {
	events  []event
	running bool
	blanked bool
	sync    bool
}

func (d *recordingDriver) ArmTransfer(buf []byte, off, n int) {
	d.events = append(d.events, event{kind: "arm", off: off, n: n})
}

func (d *recordingDriver) SetSync(active bool) {
	d.sync = active
}

func (d *recordingDriver) StartPixelClock() {
	d.running = true
	d.blanked = false
}

func (d *recordingDriver) StopPixelClock() { d.running = false }
func (d *recordingDriver) Blank()          { d.blanked = true }

func (d *recordingDriver) arms() []event {
	var out []event
	for _, e := range d.events {
		if e.kind == "arm" {
			out = append(out, e)
		}
	}
	return out
}

const (
	testStride = 321
	testRows   = 240
)

func newTestController() (*Controller, *recordingDriver) {
	drv := &recordingDriver{}
	buf := make([]byte, testStride*testRows)
	return New(VGA, drv, buf, testStride), drv
}

func TestOffsetResetsOncePerFrame(t *testing.T) {
	c, _ := newTestController()

	resets := 0
	for i := 0; i < 3*VGA.FramePeriod; i++ {
		c.OnLineTick()
		st := c.State()
		if st.HSync == 0 {
			resets++
			if st.Offset != 0 {
				t.Fatalf("tick %d: Offset = %d after reset; want 0", i, st.Offset)
			}
		}
	}
	if resets != 3 {
		t.Fatalf("resets = %d; want 3", resets)
	}
	if got := c.Stats().Frames; got != 3 {
		t.Fatalf("Stats().Frames = %d; want 3", got)
	}
}

func TestVSyncPulse(t *testing.T) {
	c, drv := newTestController()

	// Advance to the last tick of the frame so the next tick wraps to 0.
	for i := 0; i < VGA.FramePeriod-1; i++ {
		c.OnLineTick()
	}
	for tick := 0; tick < 10; tick++ {
		c.OnLineTick()
		want := tick < VGA.VSyncPulse
		if drv.sync != want || c.State().VSync != want {
			t.Fatalf("tick %d: sync = %v; want %v", tick, drv.sync, want)
		}
	}
}

func TestTransfersPerFrameAreLineDoubled(t *testing.T) {
	c, drv := newTestController()

	// One full frame, starting from hsync 0.
	for i := 0; i < VGA.FramePeriod; i++ {
		c.OnLineTick()
	}
	drv.events = nil
	for i := 0; i < VGA.FramePeriod; i++ {
		c.OnLineTick()
	}

	arms := drv.arms()
	if len(arms) != VGA.ActiveLines() {
		t.Fatalf("transfers = %d; want %d", len(arms), VGA.ActiveLines())
	}
	for i, a := range arms {
		if a.n != testStride {
			t.Fatalf("transfer %d: len = %d; want %d", i, a.n, testStride)
		}
		// Ticks 36,37 send row 0, 38,39 row 1, ..., 514 row 239.
		wantRow := i / 2
		if a.off != wantRow*testStride {
			t.Fatalf("transfer %d: off = %d; want %d", i, a.off, wantRow*testStride)
		}
	}
	if last := arms[len(arms)-1].off; last != (testRows-1)*testStride {
		t.Fatalf("last offset = %d; want %d", last, (testRows-1)*testStride)
	}
}

func TestNoTransferOutsideActiveWindow(t *testing.T) {
	c, drv := newTestController()
	for i := 0; i < VGA.FramePeriod; i++ {
		c.OnLineTick()
		h := c.State().HSync
		armed := len(drv.arms()) > 0
		inWindow := h >= VGA.ActiveStart && h <= VGA.ActiveStop
		if armed != inWindow {
			t.Fatalf("hsync %d: armed = %v; want %v", h, armed, inWindow)
		}
		drv.events = nil
	}
}

func TestTransferCompleteBlanks(t *testing.T) {
	c, drv := newTestController()
	for i := 0; i < VGA.ActiveStart; i++ {
		c.OnLineTick()
	}
	if !drv.running {
		t.Fatalf("pixel clock not started at hsync %d", c.State().HSync)
	}
	st := c.State()
	if st.XferOffset != 0 || st.XferLen != testStride {
		t.Fatalf("State() transfer = %d,%d; want 0,%d", st.XferOffset, st.XferLen, testStride)
	}

	c.OnTransferComplete()
	if drv.running || !drv.blanked {
		t.Fatalf("after complete running = %v, blanked = %v; want false, true", drv.running, drv.blanked)
	}
}

func TestShortBufferHoldsLastRow(t *testing.T) {
	drv := &recordingDriver{}
	const rows = 10
	c := New(VGA, drv, make([]byte, testStride*rows), testStride)
	for i := 0; i < VGA.FramePeriod; i++ {
		c.OnLineTick()
	}
	for _, a := range drv.arms() {
		if a.off+a.n > testStride*rows {
			t.Fatalf("transfer %d+%d past buffer of %d", a.off, a.n, testStride*rows)
		}
	}
}
