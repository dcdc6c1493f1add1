//go:build !tinygo

// Command vgasend streams a command script to the adapter over a serial
// port and prints the diagnostics it sends back.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tarm/serial"
)

const defaultBaud = 115200

func main() {
	var port string
	var baud int
	var inPath string
	var delay time.Duration
	var linger time.Duration
	flag.StringVar(&port, "port", "", "Serial device the adapter is attached to.")
	flag.IntVar(&baud, "baud", defaultBaud, "Serial baud rate.")
	flag.StringVar(&inPath, "in", "-", "Command script to send (- for stdin).")
	flag.DurationVar(&delay, "delay", 20*time.Millisecond, "Pause after each command.")
	flag.DurationVar(&linger, "linger", 200*time.Millisecond, "How long to wait for replies after the last command.")
	flag.Parse()

	if port == "" {
		fmt.Fprintln(os.Stderr, "error: -port is required")
		os.Exit(2)
	}

	if err := run(port, baud, inPath, delay, linger); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(port string, baud int, inPath string, delay, linger time.Duration) error {
	var in io.Reader = os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("open script %q: %w", inPath, err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        port,
		Baud:        baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("open serial %q: %w", port, err)
	}
	defer func() { _ = p.Close() }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		echo(os.Stdout, p)
	}()

	n, err := send(p, in, delay)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "sent %d commands\n", n)

	time.Sleep(linger)
	_ = p.Close()
	<-done
	return nil
}

// echo copies replies until the port is closed. Read timeouts show up as
// io.EOF and are not the end of the stream.
func echo(w io.Writer, r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = w.Write(buf[:n])
		}
		if err != nil && err != io.EOF {
			return
		}
	}
}
