//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tarm/serial"
	"golang.org/x/term"
)

type hostSerial struct {
	mu sync.Mutex
	r  io.Reader
	w  io.Writer

	// interrupt is called when Ctrl-C arrives on a raw terminal.
	interrupt func()
	closers   []func() error
}

func openHostSerial(cfg HostConfig) (*hostSerial, error) {
	s := &hostSerial{}
	if cfg.Port != "" {
		baud := cfg.Baud
		if baud <= 0 {
			baud = 115200
		}
		port, err := serial.OpenPort(&serial.Config{
			Name:        cfg.Port,
			Baud:        baud,
			ReadTimeout: 100 * time.Millisecond,
		})
		if err != nil {
			return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
		}
		s.r, s.w = portReader{port}, port
		s.closers = append(s.closers, port.Close)
	} else {
		s.r, s.w = os.Stdin, os.Stdout
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			// Raw mode: each keystroke reaches the receiver as it would over a UART.
			old, err := term.MakeRaw(fd)
			if err != nil {
				return nil, fmt.Errorf("stdin raw mode: %w", err)
			}
			s.closers = append(s.closers, func() error { return term.Restore(fd, old) })
			s.r = &rawReader{r: os.Stdin, s: s}
		}
	}

	if cfg.Script != "" {
		f, err := os.Open(cfg.Script)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open script: %w", err)
		}
		s.r = io.MultiReader(f, s.r)
		s.closers = append(s.closers, f.Close)
	}
	return s, nil
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *hostSerial) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

// portReader hides read timeouts. The port reports an expired timeout as
// io.EOF, which would otherwise end the input.
type portReader struct {
	p *serial.Port
}

func (r portReader) Read(b []byte) (int, error) {
	n, err := r.p.Read(b)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// keyInterrupt is Ctrl-C; raw mode delivers it as a byte instead of a signal.
const keyInterrupt = 0x03

type rawReader struct {
	r io.Reader
	s *hostSerial
}

func (r *rawReader) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	for i := 0; i < n; i++ {
		if b[i] != keyInterrupt {
			continue
		}
		r.s.mu.Lock()
		fn := r.s.interrupt
		r.s.mu.Unlock()
		if fn != nil {
			fn()
		}
		return i, io.EOF
	}
	return n, err
}

func (s *hostSerial) onInterrupt(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupt = fn
}
