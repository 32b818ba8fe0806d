package boot

import (
	"strings"
	"testing"

	"bootui/hal"
)

type fakeHAL struct {
	log   *fakeLogger
	disp  fakeDisplay
	keys  *fakeKeys
	power *fakePower
	clock *fakeClock
	flash hal.Flash
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		log:   &fakeLogger{},
		disp:  fakeDisplay{fb: newFakeFB(320, 240)},
		keys:  &fakeKeys{},
		power: &fakePower{},
		clock: &fakeClock{},
	}
}

func (h *fakeHAL) Logger() hal.Logger     { return h.log }
func (h *fakeHAL) Display() hal.Display   { return h.disp }
func (h *fakeHAL) Keys() hal.Keys         { return h.keys }
func (h *fakeHAL) Power() hal.Power       { return h.power }
func (h *fakeHAL) Firmware() hal.Firmware { return nil }
func (h *fakeHAL) Clock() hal.Clock       { return h.clock }
func (h *fakeHAL) Flash() hal.Flash       { return h.flash }

type fakeLogger struct {
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type fakeFB struct {
	w, h int
	buf  []byte
}

func newFakeFB(w, h int) *fakeFB {
	return &fakeFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) ClearRGB(r, g, b uint8)  {}
func (f *fakeFB) Present() error          { return nil }

type fakeDisplay struct {
	fb *fakeFB
}

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type fakeKeys struct {
	seq []hal.KeyCode
}

func (k *fakeKeys) Read() hal.KeyCode {
	if len(k.seq) == 0 {
		return hal.KeyNone
	}
	c := k.seq[0]
	k.seq = k.seq[1:]
	return c
}

type fakePower struct {
	lidAfter int
	offs     int
}

func (p *fakePower) ShutdownReasons() hal.ShutdownReason {
	if p.lidAfter > 0 {
		p.lidAfter--
		if p.lidAfter == 0 {
			return hal.ReasonLidClosed
		}
	}
	return 0
}

func (p *fakePower) Off() { p.offs++ }

type fakeClock struct {
	now uint32
}

func (c *fakeClock) NowMS() uint32     { return c.now }
func (c *fakeClock) SleepMS(ms uint32) { c.now += ms }

type fakeMedia struct {
	presentAfter int
	ticks        int
}

func (m *fakeMedia) Present() bool {
	m.ticks++
	return m.ticks >= m.presentAfter
}

func TestRunShutdownPowersOff(t *testing.T) {
	h := newFakeHAL()
	h.power.lidAfter = 5

	if _, err := Run(h, Config{Mode: ModeRecovery, Version: "test"}); err != nil {
		t.Fatal(err)
	}
	if h.power.offs != 1 {
		t.Fatalf("Off called %d times, want 1", h.power.offs)
	}
}

func TestRunRecoveryBootPath(t *testing.T) {
	h := newFakeHAL()
	// Select "Recovery using external disk", then confirm the boot item.
	h.keys.seq = []hal.KeyCode{hal.KeyNone, hal.KeyDown, hal.KeyEnter, hal.KeyEnter}

	params, err := Run(h, Config{Mode: ModeRecovery, Version: "test"})
	if err != nil {
		t.Fatal(err)
	}
	if !params.RecoveryRequested {
		t.Fatal("recovery not requested after confirm")
	}
	if h.power.offs != 0 {
		t.Fatal("ui exit must not power off")
	}
	if params.Locale == "" {
		t.Error("locale default not populated")
	}
}

func TestRunDiagnosticsPowerOffItem(t *testing.T) {
	h := newFakeHAL()
	// Navigate to the last menu item (power off) and confirm it.
	h.keys.seq = []hal.KeyCode{
		hal.KeyNone,
		hal.KeyDown, hal.KeyDown, hal.KeyDown,
		hal.KeyDown, hal.KeyDown, hal.KeyDown,
		hal.KeyEnter,
	}

	if _, err := Run(h, Config{Mode: ModeDiagnostics, Version: "test"}); err != nil {
		t.Fatal(err)
	}
	if h.power.offs != 1 {
		t.Fatalf("Off called %d times, want 1", h.power.offs)
	}
}

func TestRunMediaPollerLogsTransition(t *testing.T) {
	h := newFakeHAL()
	h.power.lidAfter = 10
	media := &fakeMedia{presentAfter: 3}

	if _, err := Run(h, Config{Mode: ModeRecovery, Media: media}); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, line := range h.log.lines {
		if strings.Contains(line, "media present=true") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no media transition logged: %v", h.log.lines)
	}
}

func TestRunRecoversFromPanic(t *testing.T) {
	h := newFakeHAL()
	h.flash = panicFlash{}

	if _, err := Run(h, Config{Mode: ModeRecovery}); err == nil {
		t.Fatal("want an error after a ui panic")
	}
	found := false
	for _, line := range h.log.lines {
		if strings.Contains(line, "panic") {
			found = true
		}
	}
	if !found {
		t.Fatalf("panic not logged: %v", h.log.lines)
	}
}

type panicFlash struct{}

func (panicFlash) SizeBytes() uint32                        { return 0 }
func (panicFlash) EraseBlockBytes() uint32                  { return 0 }
func (panicFlash) ReadAt(p []byte, off uint32) (int, error) { panic("flash fault") }
func (panicFlash) WriteAt(p []byte, off uint32) (int, error) {
	panic("flash fault")
}
func (panicFlash) Erase(off, size uint32) error { return nil }
