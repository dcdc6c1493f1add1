package proto

import (
	"errors"
	"strings"
	"testing"

	"vgaserial/adapter/palette"
)

type recorder struct {
	msgs []string
}

func (r *recorder) Report(msg string) { r.msgs = append(r.msgs, msg) }

func newTestDispatcher() (*Dispatcher, *recorder) {
	rec := &recorder{}
	return NewDispatcher(palette.NewResolver(rec), rec), rec
}

func TestParseLine(t *testing.T) {
	d, diag := newTestDispatcher()
	var rec Record
	if err := d.Parse([]byte("l,10,20,30,40,rood,3"), &rec); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	want := Line{X1: 10, Y1: 20, X2: 30, Y2: 40, Color: palette.Red, Weight: 3}
	if rec.Kind != KindLine || rec.Line != want {
		t.Fatalf("Parse() = %v %+v; want line %+v", rec.Kind, rec.Line, want)
	}
	if len(diag.msgs) != 0 {
		t.Fatalf("diagnostics = %v; want none", diag.msgs)
	}
}

func TestParseIgnoresPaddingSpaces(t *testing.T) {
	d, diag := newTestDispatcher()
	var rec Record
	if err := d.Parse([]byte("r, 5 , 6 ,100, 50 ,geel, 1 ,blauw, 2"), &rec); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	want := Rect{X: 5, Y: 6, Width: 100, Height: 50, Fill: palette.Yellow, Filled: true, Border: palette.Blue, BorderWidth: 2}
	if rec.Kind != KindRect || rec.Rect != want {
		t.Fatalf("Parse() = %v %+v; want rect %+v", rec.Kind, rec.Rect, want)
	}
	if len(diag.msgs) != 0 {
		t.Fatalf("diagnostics = %v; want none", diag.msgs)
	}
}

func TestParseText(t *testing.T) {
	d, diag := newTestDispatcher()
	var rec Record
	if err := d.Parse([]byte("t,12,34,lichtblauw,de kat,consolas,2,cursief"), &rec); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	tx := rec.Text
	if rec.Kind != KindText || tx.X != 12 || tx.Y != 34 || tx.Color != palette.LightBlue {
		t.Fatalf("Parse() = %v %+v", rec.Kind, tx)
	}
	if got := tx.String(); got != "de kat" {
		t.Fatalf("Text = %q; want %q", got, "de kat")
	}
	if tx.Font != palette.FontConsolas || tx.Size != 2 || tx.Style != palette.StyleCursive {
		t.Fatalf("font/size/style = %d/%d/%d", tx.Font, tx.Size, tx.Style)
	}
	if len(diag.msgs) != 0 {
		t.Fatalf("diagnostics = %v; want none", diag.msgs)
	}
}

func TestParseTextTruncates(t *testing.T) {
	d, diag := newTestDispatcher()
	var rec Record
	long := strings.Repeat("x", MaxTextLen+10)
	if err := d.Parse([]byte("t,0,0,wit,"+long+",arial,1,normaal"), &rec); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	if got := rec.Text.String(); got != long[:MaxTextLen] {
		t.Fatalf("Text len = %d; want %d", len(got), MaxTextLen)
	}
	if len(diag.msgs) != 1 || diag.msgs[0] != MsgTextTooLong {
		t.Fatalf("diagnostics = %v; want [%q]", diag.msgs, MsgTextTooLong)
	}
}

func TestParseBitmapAndClear(t *testing.T) {
	d, _ := newTestDispatcher()
	var rec Record
	if err := d.Parse([]byte("b,2,100,50"), &rec); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	if rec.Kind != KindBitmap || rec.Bitmap != (Bitmap{ID: 2, X: 100, Y: 50}) {
		t.Fatalf("Parse() = %v %+v", rec.Kind, rec.Bitmap)
	}

	rec.Reset()
	if err := d.Parse([]byte("c,wit"), &rec); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	if rec.Kind != KindClear || rec.Clear.Color != palette.White {
		t.Fatalf("Parse() = %v %+v", rec.Kind, rec.Clear)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	d, diag := newTestDispatcher()
	var rec Record
	err := d.Parse([]byte("x,1,2,3"), &rec)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("Parse() err = %v; want ErrUnknownCommand", err)
	}
	if rec != (Record{}) {
		t.Fatalf("record touched: %+v", rec)
	}
	if len(diag.msgs) != 1 || diag.msgs[0] != MsgUnknownCommand {
		t.Fatalf("diagnostics = %v; want [%q]", diag.msgs, MsgUnknownCommand)
	}
}

func TestParseBadValuesDegrade(t *testing.T) {
	d, diag := newTestDispatcher()
	var rec Record
	if err := d.Parse([]byte("l,abc,20,30,40,paars,1"), &rec); err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	if rec.Line.X1 != 0 || rec.Line.Color != palette.Default {
		t.Fatalf("Parse() = %+v; want X1=0 and default colour", rec.Line)
	}
	want := []string{MsgWrongNumber, palette.MsgWrongColor}
	if strings.Join(diag.msgs, "|") != strings.Join(want, "|") {
		t.Fatalf("diagnostics = %v; want %v", diag.msgs, want)
	}
}

func TestRecordReset(t *testing.T) {
	d, _ := newTestDispatcher()
	var rec Record
	_ = d.Parse([]byte("t,1,2,rood,abc,arial,1,vet"), &rec)
	rec.Reset()
	if rec != (Record{}) {
		t.Fatalf("Reset() left %+v", rec)
	}
}

func TestParseOutOfRangeNumbers(t *testing.T) {
	tests := []struct {
		line  string
		check func(Record) bool
		nmsg  int
	}{
		{"l,70000,20,30,40,rood,256", func(r Record) bool {
			return r.Line == Line{X1: 0, Y1: 20, X2: 30, Y2: 40, Color: palette.Red, Weight: 0}
		}, 2},
		{"l,65535,0,0,0,rood,255", func(r Record) bool {
			return r.Line.X1 == 65535 && r.Line.Weight == 255
		}, 0},
		{"b,-1,10,10", func(r Record) bool {
			return r.Bitmap == Bitmap{ID: 0, X: 10, Y: 10}
		}, 1},
		{"t,1,2,rood,300,arial,1,hi", func(r Record) bool {
			return r.Text.Size == 0 && r.Text.X == 1
		}, 1},
		{"r,0,0,10,10,rood,2,blauw,1", func(r Record) bool {
			return !r.Rect.Filled
		}, 1},
	}
	for _, tt := range tests {
		d, diag := newTestDispatcher()
		var rec Record
		if err := d.Parse([]byte(tt.line), &rec); err != nil {
			t.Fatalf("Parse(%q) err = %v", tt.line, err)
		}
		if !tt.check(rec) {
			t.Fatalf("Parse(%q) = %+v", tt.line, rec)
		}
		if len(diag.msgs) != tt.nmsg {
			t.Fatalf("Parse(%q) diagnostics = %v; want %d", tt.line, diag.msgs, tt.nmsg)
		}
		for _, m := range diag.msgs {
			if m != MsgWrongNumber {
				t.Fatalf("Parse(%q) diagnostic %q; want %q", tt.line, m, MsgWrongNumber)
			}
		}
	}
}
