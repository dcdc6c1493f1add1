//go:build tinygo && baremetal

package main

import (
	"vgaserial/app"
	"vgaserial/hal"
)

func main() {
	app.Run(hal.New())
}
