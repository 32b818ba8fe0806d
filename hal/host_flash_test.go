//go:build !tinygo

package hal

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestFlash(t *testing.T) *hostFlash {
	t.Helper()
	f := newHostFlash(filepath.Join(t.TempDir(), "test.flash"))
	if f.f == nil {
		t.Fatal("flash backing file not created")
	}
	t.Cleanup(func() { _ = f.f.Close() })
	return f
}

func TestHostFlashEraseThenWrite(t *testing.T) {
	f := newTestFlash(t)

	if err := f.Erase(0, f.EraseBlockBytes()); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	want := EncodeGBB(FlagDisableLidShutdown)
	if _, err := f.WriteAt(want, GBBOffset); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	got := make([]byte, GBBSize)
	if _, err := f.ReadAt(got, GBBOffset); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	flags, err := ParseGBB(got)
	if err != nil {
		t.Fatalf("ParseGBB: %v", err)
	}
	if flags != FlagDisableLidShutdown {
		t.Fatalf("flags = %#x, want %#x", flags, FlagDisableLidShutdown)
	}
}

func TestHostFlashWriteRequiresErase(t *testing.T) {
	f := newTestFlash(t)

	if err := f.Erase(0, f.EraseBlockBytes()); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := f.WriteAt([]byte{0x00, 0x00}, 0); err != nil {
		t.Fatalf("first write: %v", err)
	}
	// 0 -> 1 bit transitions need an erase cycle first.
	if _, err := f.WriteAt([]byte{0xFF, 0xFF}, 0); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("err = %v, want ErrFlashWriteRequiresErase", err)
	}
}

func TestHostFlashEraseAlignment(t *testing.T) {
	f := newTestFlash(t)

	if err := f.Erase(1, hostFlashEraseBlockBytes); err == nil {
		t.Fatal("unaligned erase offset accepted")
	}
	if err := f.Erase(0, 100); err == nil {
		t.Fatal("unaligned erase size accepted")
	}
}
