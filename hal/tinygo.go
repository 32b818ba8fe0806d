//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/st7789"
)

// Board pin map (Pico-class carrier, detachable form factor):
//
//	UART0 GP0/GP1  console, 115200 8N1
//	SPI1  GP10-15  ST7789 240x240 panel
//	GP2/GP3        volume up/down buttons (active low)
//	GP4            power button (active low)
//	GP5            lid switch (low = closed)
type boardHAL struct {
	logger *uartLogger
	fb     *boardFramebuffer
	keys   *boardKeys
	power  *boardPower
	fw     Firmware
	clock  *boardClock
	flash  Flash
}

// NewBoard returns the bare-metal HAL implementation.
func NewBoard() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	fb := newBoardFramebuffer(240, 240)

	buttons := newBoardButtons()
	flash := newRP2Flash()

	return &boardHAL{
		logger: logger,
		fb:     fb,
		keys:   &boardKeys{buttons: buttons},
		power:  &boardPower{buttons: buttons, logger: logger},
		fw:     NewFlashFirmware(flash, logger),
		clock:  newBoardClock(),
		flash:  flash,
	}
}

func (h *boardHAL) Logger() Logger     { return h.logger }
func (h *boardHAL) Display() Display   { return boardDisplay{fb: h.fb} }
func (h *boardHAL) Keys() Keys         { return h.keys }
func (h *boardHAL) Power() Power       { return h.power }
func (h *boardHAL) Firmware() Firmware { return h.fw }
func (h *boardHAL) Clock() Clock       { return h.clock }
func (h *boardHAL) Flash() Flash       { return h.flash }

type boardDisplay struct {
	fb *boardFramebuffer
}

func (d boardDisplay) Framebuffer() Framebuffer { return d.fb }

// boardFramebuffer keeps the pixel buffer in RAM and pushes rows to the
// panel on Present. The buffer is little-endian RGB565; the panel wants
// the high byte first, so rows are swapped through a small scratch
// buffer on the way out.
type boardFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	row    []byte
	panel  *st7789.Device
}

func newBoardFramebuffer(w, h int) *boardFramebuffer {
	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 62_500_000,
	})
	panel := st7789.New(machine.SPI1, machine.GP15, machine.GP14, machine.GP13, machine.GP8)
	panel.Configure(st7789.Config{
		Width:    int16(w),
		Height:   int16(h),
		Rotation: st7789.NO_ROTATION,
	})

	stride := w * 2
	return &boardFramebuffer{
		w:      w,
		h:      h,
		stride: stride,
		buf:    make([]byte, stride*h),
		row:    make([]byte, stride),
		panel:  &panel,
	}
}

func (f *boardFramebuffer) Width() int          { return f.w }
func (f *boardFramebuffer) Height() int         { return f.h }
func (f *boardFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *boardFramebuffer) StrideBytes() int    { return f.stride }
func (f *boardFramebuffer) Buffer() []byte      { return f.buf }

func (f *boardFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *boardFramebuffer) Present() error {
	for y := 0; y < f.h; y++ {
		src := f.buf[y*f.stride : y*f.stride+f.stride]
		for i := 0; i+1 < len(src); i += 2 {
			f.row[i] = src[i+1]
			f.row[i+1] = src[i]
		}
		if err := f.panel.DrawRGBBitmap8(0, int16(y), f.row, int16(f.w), 1); err != nil {
			return err
		}
	}
	return nil
}

// boardButtons samples the physical buttons. Levels are active low.
type boardButtons struct {
	volUp machine.Pin
	volDn machine.Pin
	pwr   machine.Pin
	lid   machine.Pin

	volUpWasDown bool
	volDnWasDown bool
	pwrWasDown   bool
}

func newBoardButtons() *boardButtons {
	b := &boardButtons{
		volUp: machine.GP2,
		volDn: machine.GP3,
		pwr:   machine.GP4,
		lid:   machine.GP5,
	}
	for _, pin := range []machine.Pin{b.volUp, b.volDn, b.pwr, b.lid} {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return b
}

func (b *boardButtons) powerDown() bool { return !b.pwr.Get() }
func (b *boardButtons) lidClosed() bool { return !b.lid.Get() }

// shortPress reports a press-then-release edge on one button.
func shortPress(down bool, wasDown *bool) bool {
	released := *wasDown && !down
	*wasDown = down
	return released
}

type boardKeys struct {
	buttons *boardButtons
}

// Read reports at most one short press per call; simultaneous presses
// surface on consecutive polls.
func (k *boardKeys) Read() KeyCode {
	b := k.buttons
	if shortPress(!b.volUp.Get(), &b.volUpWasDown) {
		return ButtonVolUpShortPress
	}
	if shortPress(!b.volDn.Get(), &b.volDnWasDown) {
		return ButtonVolDownShortPress
	}
	if shortPress(b.powerDown(), &b.pwrWasDown) {
		return ButtonPowerShortPress
	}
	return KeyNone
}

type boardPower struct {
	buttons *boardButtons
	logger  *uartLogger
}

func (p *boardPower) ShutdownReasons() ShutdownReason {
	var r ShutdownReason
	if p.buttons.powerDown() {
		r |= ReasonPowerButton
	}
	if p.buttons.lidClosed() {
		r |= ReasonLidClosed
	}
	return r
}

// Off has no PMIC to talk to on this carrier; park the core.
func (p *boardPower) Off() {
	p.logger.WriteLineString("power: halted")
	for {
		time.Sleep(time.Second)
	}
}

type boardClock struct {
	start time.Time
}

func newBoardClock() *boardClock {
	return &boardClock{start: time.Now()}
}

func (c *boardClock) NowMS() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

func (c *boardClock) SleepMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
