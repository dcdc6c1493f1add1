package app

import (
	"errors"
	"io"
	"time"

	"vgaserial/hal"
)

var errNoSerial = errors.New("serial: not available")

// readSerial feeds received bytes to the receiver until the link closes.
// It stands in for the byte-received interrupt.
func (e *Engine) readSerial() {
	s := e.h.Serial()
	if s == nil {
		logLine(e.h, errNoSerial.Error())
		return
	}

	var buf [64]byte
	for {
		n, err := s.Read(buf[:])
		for _, b := range buf[:n] {
			e.rx.OnByte(b)
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			logLine(e.h, "serial: input closed")
			return
		case errors.Is(err, hal.ErrNotImplemented):
			logLine(e.h, errNoSerial.Error())
			return
		default:
			logLine(e.h, "serial: "+err.Error())
			time.Sleep(10 * time.Millisecond)
		}
	}
}
