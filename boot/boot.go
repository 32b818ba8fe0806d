// Package boot wires the HAL into the UI loop: it selects the initial
// screen from the boot mode, supplies the global action, and turns the
// loop's terminal result into a power-off or a return to the boot
// sequence.
package boot

import (
	"fmt"
	"runtime/debug"

	"bootui/hal"
	"bootui/screens"
	"bootui/ui"
)

// Mode is the reason the payload was entered.
type Mode uint8

const (
	// ModeRecovery shows the recovery selection menu.
	ModeRecovery Mode = iota
	// ModeDiagnostics jumps straight into the diagnostics menu.
	ModeDiagnostics
	// ModeFirmwareSync shows the non-interactive update screen.
	ModeFirmwareSync
)

// MediaPoller reports whether bootable recovery media is plugged in.
// It is polled once per loop tick and must not block.
type MediaPoller interface {
	Present() bool
}

type Config struct {
	Mode       Mode
	Detachable bool
	Version    string
	// Media is optional; without it the disk step never auto-refreshes.
	Media MediaPoller
}

// Run drives the UI until it exits or powers down. The returned params
// tell the caller whether to continue into recovery boot.
func Run(h hal.HAL, cfg Config) (params *screens.KernelParams, err error) {
	log := h.Logger()

	defer func() {
		if v := recover(); v != nil {
			screens.RenderCrash(h.Display(), log, v, debug.Stack())
			err = fmt.Errorf("boot: ui panic: %v", v)
		}
	}()

	var fw hal.Firmware
	if f := h.Flash(); f != nil {
		fw = hal.NewFlashFirmware(f, log)
	} else {
		fw = zeroFirmware{}
	}

	params = &screens.KernelParams{}
	model, reg := screens.New(screens.Config{
		Log:         log,
		Version:     cfg.Version,
		PolicyFlags: fw.PolicyFlags(),
	})
	params.Locale = model.Locale()

	loop := ui.New(ui.Config{
		Registry:   reg,
		Renderer:   screens.NewRendererFor(h.Display(), model),
		Keys:       h.Keys(),
		Power:      h.Power(),
		Firmware:   fw,
		Clock:      h.Clock(),
		Log:        log,
		Detachable: cfg.Detachable,
		Params:     params,
	})

	initial := initialScreen(cfg.Mode)
	if log != nil {
		log.WriteLineString(fmt.Sprintf("boot: entering ui, mode=%d screen=%d", cfg.Mode, initial))
	}

	switch loop.Run(initial, globalAction(cfg, log)) {
	case ui.Shutdown:
		if log != nil {
			log.WriteLineString("boot: shutdown requested")
		}
		h.Power().Off()
		return params, nil
	case ui.ExitUI:
		if log != nil {
			log.WriteLineString("boot: ui exited, resuming boot sequence")
		}
		return params, nil
	}
	return params, nil
}

// zeroFirmware stands in when the board exposes no flash.
type zeroFirmware struct{}

func (zeroFirmware) PolicyFlags() hal.PolicyFlag { return 0 }

func initialScreen(m Mode) ui.ScreenID {
	switch m {
	case ModeDiagnostics:
		return screens.ScreenDiagnostics
	case ModeFirmwareSync:
		return screens.ScreenFirmwareSync
	default:
		return screens.ScreenRecoverySelect
	}
}

// globalAction is the bottom of the dispatch cascade. In recovery mode
// it watches the media poller and repaints the disk step when media
// appears or disappears.
func globalAction(cfg Config, log hal.Logger) ui.Action {
	if cfg.Mode != ModeRecovery || cfg.Media == nil {
		return nil
	}
	var present bool
	return func(c *ui.Context) (ui.Result, error) {
		now := cfg.Media.Present()
		if now == present {
			return ui.Continue, nil
		}
		present = now
		if log != nil {
			log.WriteLineString(fmt.Sprintf("boot: recovery media present=%v", now))
		}
		if c.Screen == screens.ScreenRecoveryDiskStep {
			return ui.Redraw, nil
		}
		return ui.Continue, nil
	}
}
