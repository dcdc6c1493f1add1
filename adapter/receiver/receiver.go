// Package receiver assembles command lines from the serial byte stream and
// hands them to the main loop.
//
// OnByte is the producer and runs in the byte-received context; Next and
// Err are the consumer and run in the main loop. There is exactly one of
// each, so the queue needs no lock: a slot is filled completely before the
// head that publishes it is stored.
package receiver

import (
	"errors"
	"sync/atomic"
)

// LineCapacity is the longest line accepted, terminator excluded.
const LineCapacity = 1024

// Line terminators. Some terminals send CR and LF, so LF is dropped and
// '.' is accepted as a terminator too.
const (
	CR  = '\r'
	LF  = '\n'
	Dot = '.'
)

const slots = 4

var (
	ErrLineOverflow = errors.New("line too long")
	ErrBusy         = errors.New("busy")
)

// Line is one received command without its terminator.
type Line struct {
	n   int
	buf [LineCapacity]byte
}

// Bytes aliases the line's storage and is valid until the Line is reused.
func (l *Line) Bytes() []byte { return l.buf[:l.n] }

func (l *Line) Len() int       { return l.n }
func (l *Line) String() string { return string(l.Bytes()) }

// Receiver is a line assembler feeding a fixed-slot queue.
type Receiver struct {
	_ [0]func() // prevent accidental copying.

	// Producer-only state.
	cur      Line
	overflow bool

	head  atomic.Uint32
	tail  atomic.Uint32
	slots [slots]Line

	overflows atomic.Uint32
	drops     atomic.Uint32
}

// OnByte feeds one received byte.
func (r *Receiver) OnByte(b byte) {
	switch b {
	case LF:
		return
	case CR, Dot:
		r.terminate()
		return
	}
	if r.cur.n >= LineCapacity {
		r.overflow = true
		return
	}
	r.cur.buf[r.cur.n] = b
	r.cur.n++
}

func (r *Receiver) terminate() {
	defer func() {
		r.cur.n = 0
		r.overflow = false
	}()

	if r.overflow {
		r.overflows.Add(1)
		return
	}
	if r.cur.n == 0 {
		return
	}

	head := r.head.Load()
	if head-r.tail.Load() >= slots {
		r.drops.Add(1)
		return
	}
	slot := &r.slots[head%slots]
	slot.n = copy(slot.buf[:], r.cur.buf[:r.cur.n])
	r.head.Store(head + 1)
}

// Next copies the oldest pending line into dst. It reports false when
// nothing is pending.
func (r *Receiver) Next(dst *Line) bool {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return false
	}
	src := &r.slots[tail%slots]
	dst.n = copy(dst.buf[:], src.buf[:src.n])
	r.tail.Store(tail + 1)
	return true
}

// Err returns and clears the errors seen since the last call: one
// ErrLineOverflow per oversized line and one ErrBusy per line dropped on a
// full queue.
func (r *Receiver) Err() error {
	var errs []error
	for i := r.overflows.Swap(0); i > 0; i-- {
		errs = append(errs, ErrLineOverflow)
	}
	for i := r.drops.Swap(0); i > 0; i-- {
		errs = append(errs, ErrBusy)
	}
	return errors.Join(errs...)
}

// Pending is the number of queued lines.
func (r *Receiver) Pending() int {
	return int(r.head.Load() - r.tail.Load())
}
