//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// HostConfig controls the host simulator backend.
type HostConfig struct {
	// Detachable makes the keyboard emit the physical-button short
	// presses (volume up/down, power) instead of arrow/enter codes.
	Detachable bool
	// FlashPath overrides the backing file for the simulated flash.
	FlashPath string
	// WindowScale is the window pixel scale (default 2).
	WindowScale int
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	keys   *hostKeys
	power  *hostPower
	fw     Firmware
	clock  *hostClock
	flash  *hostFlash
}

// NewHost returns a host HAL implementation. Policy flags are read from
// the GBB block of the simulated flash.
func NewHost(cfg HostConfig) HAL {
	logger := &hostLogger{w: os.Stdout}
	flash := newHostFlash(cfg.FlashPath)
	h := &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(320, 240),
		keys:   newHostKeys(cfg.Detachable),
		power:  &hostPower{},
		fw:     NewFlashFirmware(flash, logger),
		clock:  newHostClock(),
		flash:  flash,
	}
	return h
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) Display() Display   { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Keys() Keys         { return h.keys }
func (h *hostHAL) Power() Power       { return h.power }
func (h *hostHAL) Firmware() Firmware { return h.fw }
func (h *hostHAL) Clock() Clock       { return h.clock }
func (h *hostHAL) Flash() Flash       { return h.flash }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

// NowMS wraps at the uint32 boundary like the hardware millisecond
// counter does.
func (c *hostClock) NowMS() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

func (c *hostClock) SleepMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// hostPower models the EC shutdown signals: the power-button bit tracks
// a key held in the window, the lid bit latches once closed.
type hostPower struct {
	mu          sync.Mutex
	powerHeld   bool
	lidClosed   bool
	poweredDown bool
}

func (p *hostPower) ShutdownReasons() ShutdownReason {
	p.mu.Lock()
	defer p.mu.Unlock()
	var r ShutdownReason
	if p.powerHeld {
		r |= ReasonPowerButton
	}
	if p.lidClosed {
		r |= ReasonLidClosed
	}
	return r
}

func (p *hostPower) Off() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.poweredDown = true
}

func (p *hostPower) setPowerHeld(held bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.powerHeld = held
}

func (p *hostPower) closeLid() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lidClosed = true
}

func (p *hostPower) off() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.poweredDown
}
