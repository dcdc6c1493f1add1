package proto

import (
	"errors"
	"fmt"
	"math"

	"vgaserial/adapter/palette"
)

var (
	ErrEmptyLine      = errors.New("empty line")
	ErrUnknownCommand = errors.New("unknown command")
)

// Diagnostics sent back over the link for protocol errors.
const (
	MsgUnknownCommand = "no comando"
	MsgWrongNumber    = "wrong number"
	MsgTextTooLong    = "text too long"
)

// Command characters.
const (
	CmdLine   = 'l'
	CmdText   = 't'
	CmdRect   = 'r'
	CmdBitmap = 'b'
	CmdClear  = 'c'
)

// Reporter receives diagnostics.
type Reporter interface {
	Report(msg string)
}

// Dispatcher decodes command lines into a Record.
//
// Malformed or out-of-range numbers decode as 0 and unknown names as the default code;
// both are reported and decoding carries on. Only an unrecognised command
// character fails the whole line.
type Dispatcher struct {
	tok Tokenizer
	res *palette.Resolver
	rep Reporter
}

func NewDispatcher(res *palette.Resolver, rep Reporter) *Dispatcher {
	return &Dispatcher{res: res, rep: rep}
}

// Parse fills rec from line. On error rec is left untouched.
func (d *Dispatcher) Parse(line []byte, rec *Record) error {
	if len(line) == 0 {
		return ErrEmptyLine
	}
	d.tok.Reset(line)

	switch line[0] {
	case CmdLine:
		rec.Kind = KindLine
		rec.Line = Line{
			X1:     d.u16(1),
			Y1:     d.u16(2),
			X2:     d.u16(3),
			Y2:     d.u16(4),
			Color:  d.res.Color(d.tok.Field(5, false)),
			Weight: d.u8(6),
		}
	case CmdText:
		rec.Kind = KindText
		rec.Text = Text{
			X:     d.u16(1),
			Y:     d.u16(2),
			Color: d.res.Color(d.tok.Field(3, false)),
		}
		txt := d.tok.Field(4, true)
		if len(txt) > MaxTextLen {
			d.report(MsgTextTooLong)
		}
		copy(rec.Text.Text[:], txt)
		rec.Text.Font = d.res.Font(d.tok.Field(5, true))
		rec.Text.Size = d.u8(6)
		rec.Text.Style = d.res.Style(d.tok.Field(7, false))
	case CmdRect:
		rec.Kind = KindRect
		rec.Rect = Rect{
			X:           d.u16(1),
			Y:           d.u16(2),
			Width:       d.u16(3),
			Height:      d.u16(4),
			Fill:        d.res.Color(d.tok.Field(5, false)),
			Filled:      d.num(6, 1) != 0,
			Border:      d.res.Color(d.tok.Field(7, false)),
			BorderWidth: d.u16(8),
		}
	case CmdBitmap:
		rec.Kind = KindBitmap
		rec.Bitmap = Bitmap{
			ID: d.u16(1),
			X:  d.u16(2),
			Y:  d.u16(3),
		}
	case CmdClear:
		rec.Kind = KindClear
		rec.Clear = Clear{Color: d.res.Color(d.tok.Field(1, false))}
	default:
		d.report(MsgUnknownCommand)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, line[0])
	}
	return nil
}

// num parses field index as a value in [0, max].
func (d *Dispatcher) num(index, max int) int {
	v, ok := d.tok.Int(index)
	if !ok || v < 0 || v > max {
		d.report(MsgWrongNumber)
		return 0
	}
	return v
}

func (d *Dispatcher) u8(index int) uint8 {
	return uint8(d.num(index, math.MaxUint8))
}

func (d *Dispatcher) u16(index int) uint16 {
	return uint16(d.num(index, math.MaxUint16))
}

func (d *Dispatcher) report(msg string) {
	if d.rep != nil {
		d.rep.Report(msg)
	}
}
