// Package mmu provides the address space of the Game Boy that is
// backed by plain memory: the cartridge (with the boot ROM overlaid
// until it is disabled), work RAM and its echo, and high RAM. Video
// memory and the hardware registers are routed by the io.Bus.
package mmu

import (
	"github.com/thelolagemann/dmg/internal/boot"
	"github.com/thelolagemann/dmg/internal/cartridge"
	"github.com/thelolagemann/dmg/internal/ram"
	"github.com/thelolagemann/dmg/internal/types"
)

const (
	wramSize = 0x2000
	hramSize = 0x7F
)

// AddressSpace handles the memory of the Game Boy that is not owned
// by another component.
type AddressSpace struct {
	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (2x 16kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *ram.RAM

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM
}

// NewAddressSpace returns a new AddressSpace for the given cartridge,
// registering the boot ROM disable register on the hardware table.
// A nil boot ROM starts with the cartridge mapped.
func NewAddressSpace(h *types.HardwareRegisters, cart cartridge.Cartridge, bootROM *boot.ROM) *AddressSpace {
	m := &AddressSpace{
		bootROM:     bootROM,
		bootROMDone: bootROM == nil,
		Cart:        cart,
		wRAM:        ram.NewRAM(wramSize),
		zRAM:        ram.NewRAM(hramSize),
	}
	h.RegisterHardware(
		types.BDIS,
		func(v uint8) {
			// the boot rom can't be mapped back in
			if v != 0 {
				m.bootROMDone = true
			}
		}, func() uint8 {
			if m.bootROMDone {
				return 0xFF
			}
			return 0xFE
		},
	)
	return m
}

// BootROMMapped reports whether the boot ROM overlays the cartridge.
func (m *AddressSpace) BootROMMapped() bool {
	return !m.bootROMDone
}

// Read returns the value at the given address. Addresses outside of
// the ranges owned by the AddressSpace read as 0xFF.
func (m *AddressSpace) Read(address uint16) uint8 {
	switch {
	case address < types.VRAMStart:
		// handle the boot ROM (if enabled)
		if !m.bootROMDone && address < types.BootROMMaxSize {
			return m.bootROM.Read(address)
		}
		return m.Cart.Read(address)
	case address >= types.ExternalRAM && address < types.WRAMStart:
		return m.Cart.Read(address)
	case address >= types.WRAMStart && address < types.OAMStart:
		return m.wRAM.Read(address & 0x1FFF)
	case address >= types.HRAMStart && address < types.IE:
		return m.zRAM.Read(address - types.HRAMStart)
	}
	return 0xFF
}

// Write writes the value to the given address. Writes into the ROM
// area are handled by the cartridge's bank controller.
func (m *AddressSpace) Write(address uint16, value uint8) {
	switch {
	case address < types.VRAMStart,
		address >= types.ExternalRAM && address < types.WRAMStart:
		m.Cart.Write(address, value)
	case address >= types.WRAMStart && address < types.OAMStart:
		m.wRAM.Write(address&0x1FFF, value)
	case address >= types.HRAMStart && address < types.IE:
		m.zRAM.Write(address-types.HRAMStart, value)
	}
}

var _ types.Stater = (*AddressSpace)(nil)

func (m *AddressSpace) Load(s *types.State) {
	m.bootROMDone = s.ReadBool() || m.bootROM == nil
	m.Cart.Load(s)
	m.wRAM.Load(s)
	m.zRAM.Load(s)
}

func (m *AddressSpace) Save(s *types.State) {
	s.WriteBool(m.bootROMDone)
	m.Cart.Save(s)
	m.wRAM.Save(s)
	m.zRAM.Save(s)
}
