package app

import (
	"vgaserial/adapter/gfx"
	"vgaserial/adapter/palette"
	"vgaserial/adapter/proto"
	"vgaserial/hal"
)

// diagnostics sends short error strings back over the serial link and
// copies them to the log.
type diagnostics struct {
	serial hal.Serial
	log    hal.Logger
}

func (d *diagnostics) Report(msg string) {
	if d.serial != nil {
		_, _ = d.serial.Write([]byte(msg + "\r\n"))
	}
	if d.log != nil {
		d.log.WriteLineString("diag: " + msg)
	}
}

// reportErr reports every error joined into err.
func (d *diagnostics) reportErr(err error) {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			d.reportErr(e)
		}
		return
	}
	d.Report(err.Error())
}

var (
	_ palette.Reporter = (*diagnostics)(nil)
	_ proto.Reporter   = (*diagnostics)(nil)
	_ gfx.Reporter     = (*diagnostics)(nil)
)
