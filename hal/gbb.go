package hal

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// The GBB block sits at the start of flash: a 4-byte magic, a uint16
// format version, 2 reserved bytes, and the uint32 policy flag word.
// All integers little-endian.
const (
	GBBOffset  = 0
	GBBSize    = 12
	gbbVersion = 1
)

var gbbMagic = [4]byte{'$', 'G', 'B', 'B'}

var (
	ErrGBBMissing = errors.New("gbb: block missing")
	ErrGBBVersion = errors.New("gbb: unsupported version")
)

// EncodeGBB serializes a GBB block for flashing.
func EncodeGBB(flags PolicyFlag) []byte {
	b := make([]byte, GBBSize)
	copy(b[0:4], gbbMagic[:])
	binary.LittleEndian.PutUint16(b[4:6], gbbVersion)
	binary.LittleEndian.PutUint32(b[8:12], uint32(flags))
	return b
}

// ParseGBB decodes a GBB block. A blank (erased) or mismatched block
// reports ErrGBBMissing.
func ParseGBB(b []byte) (PolicyFlag, error) {
	if len(b) < GBBSize {
		return 0, fmt.Errorf("gbb: short block (%d bytes)", len(b))
	}
	if [4]byte(b[0:4]) != gbbMagic {
		return 0, ErrGBBMissing
	}
	if v := binary.LittleEndian.Uint16(b[4:6]); v != gbbVersion {
		return 0, fmt.Errorf("%w: %d", ErrGBBVersion, v)
	}
	return PolicyFlag(binary.LittleEndian.Uint32(b[8:12])), nil
}

// flashFirmware reads the policy flags once at startup; the GBB block
// never changes while the payload runs.
type flashFirmware struct {
	flags PolicyFlag
}

// NewFlashFirmware reads the GBB block from flash. A missing or
// unreadable block falls back to zero flags (every shutdown trigger
// enabled), which is the safe default for a recovery payload.
func NewFlashFirmware(f Flash, log Logger) Firmware {
	var buf [GBBSize]byte
	if _, err := f.ReadAt(buf[:], GBBOffset); err != nil {
		if log != nil {
			log.WriteLineString(fmt.Sprintf("gbb: flash read failed: %v", err))
		}
		return &flashFirmware{}
	}
	flags, err := ParseGBB(buf[:])
	if err != nil {
		if log != nil {
			log.WriteLineString(fmt.Sprintf("gbb: %v; using zero flags", err))
		}
		return &flashFirmware{}
	}
	return &flashFirmware{flags: flags}
}

func (fw *flashFirmware) PolicyFlags() PolicyFlag { return fw.flags }
