//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// rp2Flash exposes the on-package QSPI flash. The GBB block lives at
// offset 0 of the region machine.Flash maps, after the firmware image.
type rp2Flash struct {
	size      uint32
	eraseSize uint32
}

func newRP2Flash() Flash {
	f := &rp2Flash{}
	if sz := machine.Flash.Size(); sz > 0 {
		f.size = clampU32(sz)
	}
	if bs := machine.Flash.EraseBlockSize(); bs > 0 {
		f.eraseSize = clampU32(bs)
	}
	return f
}

func clampU32(v int64) uint32 {
	if v > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}

func (f *rp2Flash) SizeBytes() uint32       { return f.size }
func (f *rp2Flash) EraseBlockBytes() uint32 { return f.eraseSize }

func (f *rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (f *rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, nil
}

func (f *rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if f.eraseSize == 0 {
		return ErrNotImplemented
	}
	if off%f.eraseSize != 0 || size%f.eraseSize != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: unaligned", off, size)
	}
	return machine.Flash.EraseBlocks(int64(off/f.eraseSize), int64(size/f.eraseSize))
}
