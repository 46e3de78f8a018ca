// Package boot provides the DMG boot ROM. The emulator runs without
// one, starting from the register values the boot ROM leaves behind,
// but one can be supplied to emulate the boot process.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the size of a DMG boot ROM.
const Size = 256

// ErrInvalidBootROM is returned when the boot ROM is not 256 bytes.
var ErrInvalidBootROM = errors.New("boot: invalid boot rom")

// ROM represents a boot ROM. While mapped, it overlays the cartridge
// at 0x0000-0x00FF, and is unmapped for good by a non-zero write
// to types.BDIS.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM returns a ROM for the given bytes, which must be
// exactly Size bytes long.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidBootROM, len(b))
	}

	// calculate checksum
	bootChecksum := md5.Sum(b)

	raw := make([]byte, Size)
	copy(raw, b)
	return &ROM{
		raw:      raw,
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr&0xFF]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom, as determined by its checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownBootROMChecksums = map[string]string{
	DMG0:         "Game Boy (DMG-0)",
	DMG:          "Game Boy (DMG-01)",
	MGB:          "Game Boy Pocket",
	SGB:          "Super Game Boy",
	SGB2:         "Super Game Boy 2",
	FORTUNE:      "Fortune/Bitman 3000B",
	GAME_FIGHTER: "Game Fighter",
	MAX_STATION:  "Max Station",
}

const (
	// DMG0 is the early DMG boot ROM, only sold in Japan. It flashes
	// the screen on a failed logo check instead of hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the boot ROM of the DMG-01.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by one byte, leaving 0xFF in A.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB hands the cartridge header to the SNES instead of
	// scrolling the logo.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs from SGB by one byte, leaving 0xFF in A.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"

	FORTUNE      = "92ed4eca17d61fcd53f8a64c3ce84743"
	GAME_FIGHTER = "6a7b8ee12a793f66a969c6a2b8926cc9"
	MAX_STATION  = "77a7021db824010a678791f6d062943d"
)
