package hal

import (
	"fmt"
	"strings"
	"testing"
)

// tracePin appends "name=0/1" to a shared trace on every write.
type tracePin struct {
	name  string
	trace *[]string
	high  bool
}

func (p *tracePin) Set(high bool) {
	p.high = high
	v := 0
	if high {
		v = 1
	}
	*p.trace = append(*p.trace, fmt.Sprintf("%s=%d", p.name, v))
}

func newTracedVideo() (*pinVideo, *[]string) {
	trace := &[]string{}
	v := &pinVideo{
		hsync: &tracePin{name: "h", trace: trace},
		vsync: &tracePin{name: "v", trace: trace},
	}
	for i := range v.data {
		v.data[i] = &tracePin{name: fmt.Sprintf("d%d", i), trace: trace}
	}
	return v, trace
}

func TestPinVideoHSyncEveryLine(t *testing.T) {
	v, trace := newTracedVideo()
	ticks := 0
	onTick := func() {
		ticks++
		*trace = append(*trace, "tick")
	}

	for i := 0; i < 3; i++ {
		v.line(onTick, func() {})
	}
	want := "h=0 tick h=1 h=0 tick h=1 h=0 tick h=1"
	if got := strings.Join(*trace, " "); got != want {
		t.Fatalf("trace = %q; want %q", got, want)
	}
	if ticks != 3 {
		t.Fatalf("ticks = %d; want 3", ticks)
	}
}

func TestPinVideoTransferAfterSync(t *testing.T) {
	v, trace := newTracedVideo()
	completed := 0
	onTick := func() {
		v.SetSync(true)
		v.ArmTransfer([]byte{0x81}, 0, 1)
		v.StartPixelClock()
	}
	onComplete := func() {
		completed++
		v.StopPixelClock()
	}

	v.line(onTick, onComplete)
	got := strings.Join(*trace, " ")
	want := "h=0 v=0 h=1 d0=1 d1=0 d2=0 d3=0 d4=0 d5=0 d6=0 d7=1"
	if got != want {
		t.Fatalf("trace = %q; want %q", got, want)
	}
	if completed != 1 || v.src != nil {
		t.Fatalf("completed = %d, src = %v; want 1, nil", completed, v.src)
	}

	// Without a running pixel clock the line carries sync only.
	*trace = nil
	v.line(func() {}, onComplete)
	if got := strings.Join(*trace, " "); got != "h=0 h=1" {
		t.Fatalf("idle trace = %q", got)
	}
}
