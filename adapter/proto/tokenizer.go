package proto

// Tokenizer extracts comma-delimited fields from one command line.
//
// The returned strings are copies, but the scratch buffer behind them is
// shared, so a Tokenizer must not be used from more than one goroutine.
type Tokenizer struct {
	line []byte
	out  []byte
}

// Reset points the tokenizer at a new line.
func (t *Tokenizer) Reset(line []byte) {
	t.line = line
	t.out = t.out[:0]
}

// Field returns field index (0 is the command character). Spaces are
// dropped unless text is set. A missing field is empty.
func (t *Tokenizer) Field(index int, text bool) string {
	t.out = t.out[:0]
	n := 0
	for _, c := range t.line {
		if c == ',' {
			n++
			if n > index {
				break
			}
			continue
		}
		if n < index {
			continue
		}
		if c == ' ' && !text {
			continue
		}
		t.out = append(t.out, c)
	}
	return string(t.out)
}

// Int parses field index as a decimal integer. Like atoi it accepts an
// optional sign and stops at the first non-digit; ok is false when the
// field was empty or had trailing garbage.
func (t *Tokenizer) Int(index int) (v int, ok bool) {
	return atoi(t.Field(index, false))
}

func atoi(s string) (int, bool) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	v := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if v < 1<<31 {
			v = v*10 + int(s[i]-'0')
		}
	}
	ok := i > start && i == len(s)
	if neg {
		v = -v
	}
	return v, ok
}
