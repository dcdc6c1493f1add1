package app

import (
	"vgaserial/adapter/proto"
)

// Acknowledgements logged in verbose mode.
var acks = map[proto.Kind]string{
	proto.KindLine:   "comando lijn",
	proto.KindRect:   "comando rechthoek",
	proto.KindText:   "comando tekst",
	proto.KindBitmap: "comando bitmap",
	proto.KindClear:  "comando clearscherm",
}

// Dispatch decodes one command line and draws it. Bad fields have already
// been reported when it returns; the record is always left cleared.
func (e *Engine) Dispatch(line []byte) error {
	if len(line) == 0 {
		return nil
	}
	defer e.rec.Reset()

	if err := e.disp.Parse(line, &e.rec); err != nil {
		if e.cfg.Verbose {
			logLine(e.h, "dispatch: "+err.Error())
		}
		return err
	}
	e.render(&e.rec)
	if e.cfg.Verbose {
		logLine(e.h, acks[e.rec.Kind])
	}
	return nil
}

func (e *Engine) render(rec *proto.Record) {
	switch rec.Kind {
	case proto.KindLine:
		l := &rec.Line
		e.gfx.Line(int(l.X1), int(l.Y1), int(l.X2), int(l.Y2), uint8(l.Color), int(l.Weight))
	case proto.KindText:
		t := &rec.Text
		e.gfx.Text(int(t.X), int(t.Y), uint8(t.Color), t.Text[:], uint8(t.Font), t.Size, uint8(t.Style))
	case proto.KindRect:
		r := &rec.Rect
		e.gfx.Rect(int(r.X), int(r.Y), int(r.Width), int(r.Height),
			uint8(r.Fill), r.Filled, uint8(r.Border), int(r.BorderWidth))
	case proto.KindBitmap:
		b := &rec.Bitmap
		e.gfx.Bitmap(int(b.X), int(b.Y), b.ID, 0, false)
	case proto.KindClear:
		e.gfx.Clear(uint8(rec.Clear.Color))
	}
}
