package cartridge

import (
	"errors"
	"fmt"
)

// ErrRAMSizeMismatch is returned when battery RAM doesn't match the
// RAM size of the cartridge.
var ErrRAMSizeMismatch = errors.New("cartridge: ram size mismatch")

// Battery is implemented by cartridges with external RAM, which keeps
// its contents with the power off when the cartridge has a battery.
type Battery interface {
	// RAM returns the external RAM.
	RAM() []byte
	// LoadRAM replaces the external RAM with b.
	LoadRAM(b []byte) error
}

// HasBattery returns true if the cartridge type has battery backed RAM.
func (t Type) HasBattery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT:
		return true
	}
	return false
}

func loadRAM(ram, b []byte) error {
	if len(b) != len(ram) {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrRAMSizeMismatch, len(ram), len(b))
	}
	copy(ram, b)
	return nil
}

var (
	_ Battery = (*ROMCartridge)(nil)
	_ Battery = (*MemoryBankedCartridge1)(nil)
)

// RAM returns the external RAM.
func (r *ROMCartridge) RAM() []byte {
	return r.ram
}

// LoadRAM replaces the external RAM with b.
func (r *ROMCartridge) LoadRAM(b []byte) error {
	return loadRAM(r.ram, b)
}

// RAM returns the external RAM, every bank.
func (m *MemoryBankedCartridge1) RAM() []byte {
	return m.ram
}

// LoadRAM replaces the external RAM with b.
func (m *MemoryBankedCartridge1) LoadRAM(b []byte) error {
	return loadRAM(m.ram, b)
}
