//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig selects the host-side stand-ins for the adapter's peripherals.
type HostConfig struct {
	// Port is a serial device path; empty means stdin/stdout.
	Port string
	Baud int
	// Script is replayed through the serial receive path before live input.
	Script string
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	serial *hostSerial
	video  *hostVideo
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	logger := &hostLogger{w: os.Stderr}
	serial, err := openHostSerial(cfg)
	if err != nil {
		return nil, err
	}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		serial: serial,
		video:  newHostVideo(hostVideoWidth, hostVideoLines),
	}, nil
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Serial() Serial { return h.serial }
func (h *hostHAL) Video() Video   { return h.video }

// Close restores the terminal and releases the serial port.
func (h *hostHAL) Close() error {
	return h.serial.Close()
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.w, s, "\r\n")
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\r', '\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
