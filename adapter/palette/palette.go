// Package palette maps the symbolic names used on the command link to the
// numeric codes the drawing engine works with.
package palette

import "image/color"

// Code is a resolved colour, font or style code.
type Code uint8

// Default is returned for any name that is not recognised.
const Default Code = 0

// RGB332 colour codes (rrrgggbb), as written into the frame buffer.
const (
	Black        Code = 0x00
	Blue         Code = 0x03
	LightBlue    Code = 0x4B
	Green        Code = 0x1C
	LightGreen   Code = 0x5D
	Cyan         Code = 0x1F
	LightCyan    Code = 0x5F
	Red          Code = 0xE0
	LightRed     Code = 0xE9
	Magenta      Code = 0xE3
	LightMagenta Code = 0xEB
	Brown        Code = 0x88
	Yellow       Code = 0xFC
	Gray         Code = 0x92
	White        Code = 0xFF
)

const (
	FontArial    Code = 1
	FontConsolas Code = 2
)

const (
	StyleNormal  Code = 1
	StyleBold    Code = 2
	StyleCursive Code = 3
)

// Diagnostics sent back over the link when a lookup fails.
const (
	MsgWrongColor = "wrong color"
	MsgWrongFont  = "wrong font"
	MsgWrongStyle = "wrong style"
)

var colors = map[string]Code{
	"zwart":        Black,
	"blauw":        Blue,
	"lichtblauw":   LightBlue,
	"groen":        Green,
	"lichtgroen":   LightGreen,
	"cyaan":        Cyan,
	"lichtcyaan":   LightCyan,
	"rood":         Red,
	"lichtrood":    LightRed,
	"magenta":      Magenta,
	"lichtmagenta": LightMagenta,
	"bruin":        Brown,
	"geel":         Yellow,
	"grijs":        Gray,
	"wit":          White,
}

var fonts = map[string]Code{
	"arial":    FontArial,
	"ariel":    FontArial, // spelling used by existing command scripts
	"consolas": FontConsolas,
}

var styles = map[string]Code{
	"normaal": StyleNormal,
	"vet":     StyleBold,
	"cursief": StyleCursive,
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(msg string)
}

// Resolver looks names up by exact match. A nil Reporter drops diagnostics.
type Resolver struct {
	rep Reporter
}

func NewResolver(rep Reporter) *Resolver {
	return &Resolver{rep: rep}
}

func (r *Resolver) Color(name string) Code { return r.lookup(colors, name, MsgWrongColor) }
func (r *Resolver) Font(name string) Code  { return r.lookup(fonts, name, MsgWrongFont) }
func (r *Resolver) Style(name string) Code { return r.lookup(styles, name, MsgWrongStyle) }

func (r *Resolver) lookup(table map[string]Code, name, msg string) Code {
	if c, ok := table[name]; ok {
		return c
	}
	if r != nil && r.rep != nil {
		r.rep.Report(msg)
	}
	return Default
}

// ColorNames returns the recognised colour names in unspecified order.
func ColorNames() []string {
	out := make([]string, 0, len(colors))
	for name := range colors {
		out = append(out, name)
	}
	return out
}

// FromColor quantises c to the nearest lower RGB332 code.
func FromColor(c color.Color) Code {
	r, g, b, _ := c.RGBA()
	return Code(byte(r>>13)<<5 | byte(g>>13)<<2 | byte(b>>14))
}
