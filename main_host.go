//go:build !tinygo

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"bootui/boot"
	"bootui/hal"
	"bootui/internal/buildinfo"
)

func main() {
	configPath := flag.String("config", "bootui.toml", "Path to the TOML config file.")
	modeFlag := flag.String("mode", "", "Boot mode: recovery, diagnostics or firmware-sync.")
	detachable := flag.Bool("detachable", false, "Simulate a detachable (button-only input).")
	flashPath := flag.String("flash", "", "Backing file for the simulated flash.")
	headless := flag.Bool("headless", false, "Run without a window.")
	lidMS := flag.Uint("close-lid-after-ms", 0, "Headless: close the lid after this many ms.")
	flag.Parse()

	cfg, err := boot.LoadHostConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Explicit flags override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *modeFlag
		case "detachable":
			cfg.Detachable = *detachable
		case "flash":
			cfg.FlashPath = *flashPath
		case "headless":
			cfg.Headless = *headless
		case "close-lid-after-ms":
			cfg.CloseLidAfterMS = uint32(*lidMS)
		}
	})

	mode, err := boot.ParseMode(cfg.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	payload := func(h hal.HAL) error {
		params, err := boot.Run(h, boot.Config{
			Mode:       mode,
			Detachable: cfg.Detachable,
			Version:    buildinfo.Short(),
		})
		if err != nil {
			return err
		}
		if params.RecoveryRequested {
			h.Logger().WriteLineString(fmt.Sprintf(
				"host: would boot recovery image (locale=%s)", params.Locale))
		}
		return nil
	}

	hostCfg := hal.HostConfig{
		Detachable:  cfg.Detachable,
		FlashPath:   cfg.FlashPath,
		WindowScale: cfg.WindowScale,
	}

	if cfg.Headless {
		err = hal.RunHeadless(payload, hal.HeadlessConfig{
			Host:          hostCfg,
			CloseLidAfter: time.Duration(cfg.CloseLidAfterMS) * time.Millisecond,
		})
	} else {
		err = hal.RunWindow(payload, hostCfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
