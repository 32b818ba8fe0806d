package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode identifies one input event from the fixed firmware key
// vocabulary. Boards without a keyboard report the short-press button
// variants instead of key codes.
type KeyCode uint16

const (
	KeyNone KeyCode = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEsc

	// Short presses of the physical buttons on keyboard-less boards.
	ButtonPowerShortPress
	ButtonVolUpShortPress
	ButtonVolDownShortPress
)

// Keys reads input events. Read never blocks; it returns KeyNone when
// no event is pending.
type Keys interface {
	Read() KeyCode
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// ShutdownReason is a bitmask of raw hardware shutdown signals.
type ShutdownReason uint32

const (
	ReasonPowerButton ShutdownReason = 1 << iota
	ReasonLidClosed
)

// Power reports the raw shutdown signals and can cut power.
type Power interface {
	// ShutdownReasons returns the signals as sampled right now; it is
	// level-triggered, not latched (except for lid closure, which the
	// hardware holds once the lid is down).
	ShutdownReasons() ShutdownReason
	// Off powers the machine down. It does not return on real hardware.
	Off()
}

// PolicyFlag is a bitmask of firmware-resident policy bits (the GBB
// flags), read from the flash-backed config block.
type PolicyFlag uint32

const (
	FlagDisableLidShutdown PolicyFlag = 1 << iota
)

// Firmware exposes the boot-time policy configuration.
type Firmware interface {
	PolicyFlags() PolicyFlag
}

// Clock is a millisecond counter plus a bounded delay.
//
// NowMS is monotonically increasing and wraps at the uint32 boundary;
// callers must compute intervals with wrapping subtraction.
type Clock interface {
	NowMS() uint32
	SleepMS(ms uint32)
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// HAL provides the only contact point between the payload and the
// outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Keys() Keys
	Power() Power
	Firmware() Firmware
	Clock() Clock
	Flash() Flash
}
