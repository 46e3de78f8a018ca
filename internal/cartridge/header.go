package cartridge

import (
	"fmt"
	"strings"
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x01: 2 * 1024,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

// Type is the cartridge type byte, found at 0x0147 in the ROM
// header. It determines the memory bank controller.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC5        Type = 0x19
)

// String returns the name of the cartridge type.
func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBATT:
		return "MBC1+RAM+BATTERY"
	case MBC2, MBC2BATT:
		return "MBC2"
	case ROMRAM:
		return "ROM+RAM"
	case ROMRAMBATT:
		return "ROM+RAM+BATTERY"
	case MBC3:
		return "MBC3"
	case MBC5:
		return "MBC5"
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// TypeOffset is the offset of the cartridge type byte in the ROM.
const TypeOffset = 0x0147

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	CartridgeType Type
	// ROMSize in bytes, calculated by 32kB x (1 << n). Zero if the
	// size code is not a valid one.
	ROMSize uint
	// RAMSize in bytes.
	RAMSize uint

	// raw size codes, as found at 0x0148 and 0x0149
	romSizeCode uint8
	ramSizeCode uint8

	HeaderChecksum uint8
	// computedChecksum is the header checksum computed over 0x0134-0x014C
	computedChecksum uint8
}

// parseHeader parses the header of the given ROM (0x0100 - 0x014F)
// and returns a Header.
func parseHeader(header []byte) Header {
	h := Header{}

	// parse the title, which is padded with zeroes
	h.Title = strings.TrimRight(string(header[0x34:0x44]), "\x00")

	// parse the cartridge type
	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.romSizeCode = header[0x48]
	if h.romSizeCode <= 0x08 {
		h.ROMSize = (32 * 1024) << h.romSizeCode
	}

	// parse the RAM size
	h.ramSizeCode = header[0x49]
	h.RAMSize = ramMAP[h.ramSizeCode]

	// parse and compute the header checksum
	h.HeaderChecksum = header[0x4D]
	for _, b := range header[0x34:0x4D] {
		h.computedChecksum = h.computedChecksum - b - 1
	}

	return h
}

// ChecksumValid returns true if the header checksum matches the
// checksum computed over the header bytes.
func (h Header) ChecksumValid() bool {
	return h.HeaderChecksum == h.computedChecksum
}

// Banks returns the number of 16kB ROM banks the header declares.
func (h Header) Banks() int {
	return int(h.ROMSize / 0x4000)
}

func (h Header) String() string {
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
