package screens

import (
	"testing"

	"bootui/hal"
	"bootui/ui"
)

type memFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFB(w, h int) *memFB {
	return &memFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { f.presents++; return nil }

func (f *memFB) ClearRGB(r, g, b uint8) {
	p := (uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | uint16(b>>3)&0x1F
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *memFB) dirty() bool {
	for _, b := range f.buf {
		if b != 0 {
			return true
		}
	}
	return false
}

type memDisplay struct {
	fb *memFB
}

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

func TestRendererDrawsEveryScreen(t *testing.T) {
	m, reg := newTestModel(t)
	fb := newMemFB(320, 240)
	r := NewRendererFor(memDisplay{fb: fb}, m)

	for _, id := range []ui.ScreenID{
		ScreenFirmwareSync, ScreenRecoverySelect, ScreenRecoveryPhoneStep,
		ScreenRecoveryDiskStep, ScreenLanguageSelect, ScreenDiagnostics,
		ScreenDiagStorageHealth, ScreenDebugInfo,
	} {
		if err := r.Draw(reg.Lookup(id), 0); err != nil {
			t.Fatalf("draw %d: %v", id, err)
		}
		if !fb.dirty() {
			t.Errorf("screen %d drew nothing", id)
		}
	}
	if fb.presents != 8 {
		t.Errorf("presents = %d, want one per draw", fb.presents)
	}
}

func TestRendererHighlightsSelection(t *testing.T) {
	m, reg := newTestModel(t)
	fb := newMemFB(320, 240)
	r := NewRendererFor(memDisplay{fb: fb}, m)

	menu := reg.Lookup(ScreenDiagnostics)
	if err := r.Draw(menu, 0); err != nil {
		t.Fatal(err)
	}
	first := append([]byte(nil), fb.buf...)

	if err := r.Draw(menu, 3); err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range first {
		if first[i] != fb.buf[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("moving the selection did not change the frame")
	}
}

func TestRendererStatusLine(t *testing.T) {
	m, reg := newTestModel(t)
	fb := newMemFB(320, 240)
	r := NewRendererFor(memDisplay{fb: fb}, m)

	diag := reg.Lookup(ScreenDiagMemoryFull)
	c := &ui.Context{Screen: ScreenDiagMemoryFull}
	for i := 0; i < diagTicks; i++ {
		if _, err := diag.Action(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Draw(diag, 0); err != nil {
		t.Fatal(err)
	}
	if !fb.dirty() {
		t.Error("status frame is blank")
	}
}

func TestRenderCrashPresentsFrame(t *testing.T) {
	fb := newMemFB(320, 240)
	log := &recLogger{}

	RenderCrash(memDisplay{fb: fb}, log, "boom", []byte("goroutine 1 [running]:\nmain.main()"))

	if fb.presents != 1 {
		t.Errorf("presents = %d, want 1", fb.presents)
	}
	if len(log.lines) == 0 {
		t.Error("panic was not logged")
	}
}
