//go:build !tinygo

package hal

import "sync"

// Raster capacity of the host monitor: one stored line per transfer, two
// transfers per frame buffer row.
const (
	hostVideoWidth = 321
	hostVideoLines = 480
)

// hostVideo stands in for the timer/DMA pair. Every armed transfer is
// copied into the next raster line; the vertical sync pulse flips the
// finished raster to the front so the window shows what was scanned out.
type hostVideo struct {
	width int
	lines int

	back []byte
	row  int
	src  []byte

	running bool
	sync    bool
	blanked bool

	period     int
	onTick     func()
	onComplete func()

	mu        sync.Mutex
	front     []byte
	frames    uint64
	transfers uint64
}

func newHostVideo(width, lines int) *hostVideo {
	return &hostVideo{
		width: width,
		lines: lines,
		back:  make([]byte, width*lines),
		front: make([]byte, width*lines),
	}
}

func (v *hostVideo) ArmTransfer(buf []byte, off, n int) {
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

func (v *hostVideo) SetSync(active bool) {
	if active && !v.sync {
		v.present()
	}
	v.sync = active
}

func (v *hostVideo) StartPixelClock() {
	v.running = true
	v.blanked = false
}

func (v *hostVideo) StopPixelClock() { v.running = false }
func (v *hostVideo) Blank()          { v.blanked = true }

func (v *hostVideo) Start(linesPerFrame int, onTick, onComplete func()) {
	v.period = linesPerFrame
	v.onTick = onTick
	v.onComplete = onComplete
}

// runFrame advances the scanline clock by one frame period.
func (v *hostVideo) runFrame() {
	if v.onTick == nil {
		return
	}
	for i := 0; i < v.period; i++ {
		v.onTick()
		if v.running && v.src != nil {
			v.emit()
			if v.onComplete != nil {
				v.onComplete()
			}
		}
	}
}

func (v *hostVideo) emit() {
	if v.row < v.lines {
		line := v.back[v.row*v.width : (v.row+1)*v.width]
		n := copy(line, v.src)
		clear(line[n:])
		v.row++
	}
	v.src = nil
	v.transfers++
}

func (v *hostVideo) present() {
	v.mu.Lock()
	defer v.mu.Unlock()
	copy(v.front, v.back)
	v.frames++
	v.row = 0
}

// snapshotRGBA expands the last complete frame into dst, cols pixels per line.
func (v *hostVideo) snapshotRGBA(dst []byte, cols int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if cols > v.width {
		cols = v.width
	}
	for y := 0; y < v.lines; y++ {
		src := v.front[y*v.width:]
		for x := 0; x < cols; x++ {
			j := (y*cols + x) * 4
			if j+3 >= len(dst) {
				return
			}
			r, g, b := rgb888From332(src[x])
			dst[j+0] = r
			dst[j+1] = g
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}
}

func (v *hostVideo) frameCount() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}
