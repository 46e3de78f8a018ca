// Package cartridge provides the game cartridge: the ROM image, any
// external RAM and the memory bank controller that maps them into
// the address space.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/dmg/internal/types"
)

var (
	// ErrROMTooSmall is returned when the ROM is smaller than the
	// two 16kB banks every cartridge maps.
	ErrROMTooSmall = errors.New("cartridge: rom too small")
	// ErrROMSizeMismatch is returned when the ROM size does not match
	// the size declared in the header.
	ErrROMSizeMismatch = errors.New("cartridge: rom size mismatch")
	// ErrUnsupportedType is returned for cartridge types that have no
	// memory bank controller implementation.
	ErrUnsupportedType = errors.New("cartridge: unsupported type")
)

// MinimumSize is the smallest valid ROM, two 16kB banks.
const MinimumSize = 0x8000

// Cartridge represents a game cartridge. Read and Write receive
// addresses in the 0x0000-0x7FFF and 0xA000-0xBFFF ranges.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header
	types.Stater
}

// New parses the header of the given ROM, validates it and returns
// the Cartridge matching its type. Every problem found with the ROM
// is reported in the returned error.
func New(rom []byte) (Cartridge, error) {
	if len(rom) < MinimumSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}

	// parse the cartridge header (0x0100 - 0x014F)
	header := parseHeader(rom[0x100:0x150])

	var result *multierror.Error
	if len(rom)%0x4000 != 0 {
		result = multierror.Append(result, fmt.Errorf("%w: %d bytes is not a whole number of banks", ErrROMSizeMismatch, len(rom)))
	}
	if header.ROMSize == 0 {
		result = multierror.Append(result, fmt.Errorf("%w: invalid size code 0x%02X", ErrROMSizeMismatch, header.romSizeCode))
	} else if header.ROMSize != uint(len(rom)) {
		result = multierror.Append(result, fmt.Errorf("%w: header declares %d bytes, got %d", ErrROMSizeMismatch, header.ROMSize, len(rom)))
	}

	var cart Cartridge
	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		cart = NewROMCartridge(rom, header)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		cart = NewMemoryBankedCartridge1(rom, header)
	default:
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUnsupportedType, header.CartridgeType))
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cart, nil
}
