//go:build !tinygo

package boot

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// HostConfig is the simulator configuration, loaded from a TOML file
// and overridable by flags at the entry point.
type HostConfig struct {
	// Mode is "recovery", "diagnostics" or "firmware-sync".
	Mode string `toml:"mode"`
	// Detachable selects the button-only input model.
	Detachable bool `toml:"detachable"`
	// FlashPath is the backing file for the simulated flash.
	FlashPath string `toml:"flash_path"`
	// WindowScale multiplies the 320x240 panel for the host window.
	WindowScale int `toml:"window_scale"`
	// Headless skips the window and drives the loop against a wall
	// clock; CloseLidAfterMS then bounds the run.
	Headless        bool   `toml:"headless"`
	CloseLidAfterMS uint32 `toml:"close_lid_after_ms"`
}

// DefaultHostConfig is what a missing or empty config file yields.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Mode:        "recovery",
		WindowScale: 2,
	}
}

// LoadHostConfig reads path, falling back to defaults when the file
// does not exist. A present-but-broken file is an error; silently
// running with defaults would mask a typo.
func LoadHostConfig(path string) (HostConfig, error) {
	cfg := DefaultHostConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("boot: read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("boot: parse config %s: %w", path, err)
	}
	if cfg.WindowScale < 1 {
		cfg.WindowScale = 1
	}
	return cfg, nil
}

// ParseMode maps the config string onto a boot mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "recovery":
		return ModeRecovery, nil
	case "diagnostics":
		return ModeDiagnostics, nil
	case "firmware-sync":
		return ModeFirmwareSync, nil
	}
	return ModeRecovery, fmt.Errorf("boot: unknown mode %q", s)
}
