//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"vgaserial/app"
	"vgaserial/hal"
	"vgaserial/internal/buildinfo"
)

func main() {
	var cfg hal.HeadlessConfig
	var appCfg app.Config
	var version bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N scanned-out frames in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Host.Port, "port", "", "Serial device to read commands from (default stdin/stdout).")
	flag.IntVar(&cfg.Host.Baud, "baud", 115200, "Serial baud rate for -port.")
	flag.StringVar(&cfg.Host.Script, "script", "", "Command file replayed before live input.")
	flag.StringVar(&appCfg.AssetsDir, "assets", "", "Directory of <id>.bmp bitmaps added to the built-in set.")
	flag.BoolVar(&appCfg.Verbose, "verbose", false, "Log every executed command.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println("vgaserial", buildinfo.Long())
		return
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, cfg.Host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
