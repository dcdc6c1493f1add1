package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// Terminator appended to every command; the adapter also accepts '.'.
const terminator = "\r"

// send writes each command line of script to w. Blank lines and lines
// starting with '#' are skipped, and a trailing '.' terminator in the
// script is replaced by CR.
func send(w io.Writer, script io.Reader, delay time.Duration) (int, error) {
	sc := bufio.NewScanner(script)
	n := 0
	for lineNo := 1; sc.Scan(); lineNo++ {
		cmd, ok := commandLine(sc.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, cmd+terminator); err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		n++
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("read script: %w", err)
	}
	return n, nil
}

func commandLine(s string) (string, bool) {
	s = strings.TrimRight(s, " \t\r")
	s = strings.TrimLeft(s, " \t")
	if s == "" || strings.HasPrefix(s, "#") {
		return "", false
	}
	s = strings.TrimSuffix(s, ".")
	return s, s != ""
}
