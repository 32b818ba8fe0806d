//go:build !tinygo

package hal

import "time"

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig
	// CloseLidAfter closes the simulated lid after the given delay,
	// terminating the payload through the normal shutdown path.
	// Zero means the lid stays open.
	CloseLidAfter time.Duration
}

// RunHeadless runs the payload without opening a window. Without a
// window there is no key input; the payload ends via the lid timer or
// its own logic.
func RunHeadless(payload func(HAL) error, cfg HeadlessConfig) error {
	h := NewHost(cfg.Host).(*hostHAL)

	if cfg.CloseLidAfter > 0 {
		t := time.AfterFunc(cfg.CloseLidAfter, h.power.closeLid)
		defer t.Stop()
	}
	return payload(h)
}
