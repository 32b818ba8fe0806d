package ui

import "bootui/hal"

// powerButtonState is the edge-detection state of the physical power
// button. The button's level at boot is unknown: a button already down
// at the first poll must not shut the machine off until it has been
// seen up at least once.
type powerButtonState uint8

const (
	powerHeldSinceBoot powerButtonState = iota
	powerReleased
	powerPressed
)

// shutdownMonitor folds the raw shutdown signals, the GBB policy, and
// the power short-press key event into one decision per tick.
type shutdownMonitor struct {
	detachable bool
	power      powerButtonState
}

// requested reports whether shutdown fires this tick.
//
// Lid closure is level-triggered with no debounce and wins ties with
// the power channel; the GBB lid-disable flag masks it entirely. On
// detachable hardware the power button navigates instead of shutting
// down, so both its raw signal and its short-press key are ignored
// here.
func (m *shutdownMonitor) requested(reasons hal.ShutdownReason, flags hal.PolicyFlag, key hal.KeyCode) bool {
	if reasons&hal.ReasonLidClosed != 0 && flags&hal.FlagDisableLidShutdown == 0 {
		return true
	}
	if m.detachable {
		return false
	}
	if key == hal.ButtonPowerShortPress {
		return true
	}

	if reasons&hal.ReasonPowerButton != 0 {
		// Arm only from an observed release; held-since-boot stays
		// inert until the first release.
		if m.power == powerReleased {
			m.power = powerPressed
		}
	} else {
		m.power = powerReleased
	}
	return m.power == powerPressed
}
