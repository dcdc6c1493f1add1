//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	serial *uartSerial
	video  *pinVideo
}

// New returns a Pico (RP2040) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Video: HSYNC on GP11, VSYNC on GP10 (both active low), RGB332 data on
// GP2..GP9 (bit 0 on GP2).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    &pinLED{pin: ledPin},
		serial: &uartSerial{uart: uart},
		video: newPinVideo(machine.GP11, machine.GP10, [8]machine.Pin{
			machine.GP2, machine.GP3, machine.GP4, machine.GP5,
			machine.GP6, machine.GP7, machine.GP8, machine.GP9,
		}),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) LED() LED       { return h.led }
func (h *tinyGoHAL) Serial() Serial { return h.serial }
func (h *tinyGoHAL) Video() Video   { return h.video }
