package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

var errClosed = errors.New("port closed")

func TestSend(t *testing.T) {
	script := strings.Join([]string{
		"# demo",
		"c,wit.",
		"",
		"  l,10,20,30,40,rood,3  ",
		"t,10,10,zwart,hallo wereld,consolas,1,normaal",
		".",
	}, "\n")

	var out bytes.Buffer
	n, err := send(&out, strings.NewReader(script), 0)
	if err != nil {
		t.Fatalf("send() err = %v", err)
	}
	if n != 3 {
		t.Fatalf("send() n = %d; want 3", n)
	}
	want := "c,wit\rl,10,20,30,40,rood,3\rt,10,10,zwart,hallo wereld,consolas,1,normaal\r"
	if got := out.String(); got != want {
		t.Fatalf("send() wrote %q; want %q", got, want)
	}
}

func TestEchoStopsOnClose(t *testing.T) {
	var out bytes.Buffer
	echo(&out, &closingReader{chunks: []string{"wrong color\r\n", "", "busy\r\n"}})
	if got, want := out.String(), "wrong color\r\nbusy\r\n"; got != want {
		t.Fatalf("echo() wrote %q; want %q", got, want)
	}
}

// closingReader returns each chunk with io.EOF, the way a serial port
// reports a read timeout, then a hard error.
type closingReader struct {
	chunks []string
}

func (r *closingReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, errClosed
	}
	c := r.chunks[0]
	r.chunks = r.chunks[1:]
	return copy(p, c), io.EOF
}
