package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Serial is the byte link commands arrive on and diagnostics leave by.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Video is the scanout boundary: sync output, pixel clock and the line
// transfer engine, plus the scanline clock that paces them.
//
// ArmTransfer only records the source; bytes move once StartPixelClock
// has been called and the transfer-complete callback fires after the last
// byte. A transfer armed while another is running replaces it.
type Video interface {
	ArmTransfer(buf []byte, off, n int)
	SetSync(active bool)
	StartPixelClock()
	StopPixelClock()
	Blank()

	// Start begins delivering scanline ticks, linesPerFrame per frame.
	// It returns immediately; callbacks run on the video clock's context.
	Start(linesPerFrame int, onTick, onComplete func())
}

// HAL provides the only contact point between the adapter and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Serial() Serial
	Video() Video
}
