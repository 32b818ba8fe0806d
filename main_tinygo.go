//go:build tinygo && baremetal && (rp2040 || rp2350)

package main

import (
	"bootui/boot"
	"bootui/hal"
	"bootui/internal/buildinfo"
)

func main() {
	h := hal.NewBoard()
	params, err := boot.Run(h, boot.Config{
		Mode:       boot.ModeRecovery,
		Detachable: true,
		Version:    buildinfo.Short(),
	})
	if err != nil {
		h.Logger().WriteLineString(err.Error())
	}
	if params != nil && params.RecoveryRequested {
		h.Logger().WriteLineString("board: ready to boot recovery image")
	}

	// The firmware takes over from here; there is nothing to return to.
	for {
		h.Clock().SleepMS(1000)
	}
}
