package hal

// outputPin is the part of machine.Pin the bit-banged video path uses.
type outputPin interface {
	Set(high bool)
}

// pinVideo drives the sync and colour pins directly. There is no DMA on
// this path: the pixel clock is the CPU writing one byte per loop turn,
// so the horizontal resolution is whatever the core manages in the
// active window.
//
// Both sync outputs are active low. The HSYNC pulse opens every line and
// spans the tick handler.
type pinVideo struct {
	hsync outputPin
	vsync outputPin
	data  [8]outputPin

	src     []byte
	running bool
}

func (v *pinVideo) ArmTransfer(buf []byte, off, n int) {
	if off < 0 || n <= 0 || off >= len(buf) {
		v.src = nil
		return
	}
	end := off + n
	if end > len(buf) {
		end = len(buf)
	}
	v.src = buf[off:end]
}

func (v *pinVideo) SetSync(active bool) { v.vsync.Set(!active) }

func (v *pinVideo) StartPixelClock() { v.running = true }
func (v *pinVideo) StopPixelClock()  { v.running = false }

func (v *pinVideo) Blank() { v.write(0) }

func (v *pinVideo) write(b byte) {
	for i, p := range v.data {
		p.Set(b&(1<<i) != 0)
	}
}

// line runs one scanline: sync pulse, tick, then the armed transfer.
func (v *pinVideo) line(onTick, onComplete func()) {
	v.hsync.Set(false)
	onTick()
	v.hsync.Set(true)

	if !v.running || v.src == nil {
		return
	}
	for _, b := range v.src {
		v.write(b)
	}
	v.src = nil
	onComplete()
}
