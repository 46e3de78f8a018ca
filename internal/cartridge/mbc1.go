package cartridge

import "github.com/thelolagemann/dmg/internal/types"

// BankingMode selects what the 0x4000-0x5FFF register writes to.
type BankingMode uint8

const (
	// ROMBankingMode routes 0x4000-0x5FFF writes to bits 5-6 of the
	// ROM bank number.
	ROMBankingMode BankingMode = iota
	// RAMBankingMode routes 0x4000-0x5FFF writes to the RAM bank.
	RAMBankingMode
)

// BankState is the banking state of an MBC1 controller.
type BankState struct {
	// ROMBank is the bank mapped into 0x4000-0x7FFF, before masking to
	// the size of the ROM. It is never 0, 0x20, 0x40 or 0x60.
	ROMBank uint8
	// RAMBank is the bank selected through 0x4000-0x5FFF. It is only
	// mapped while Mode is RAMBankingMode.
	RAMBank    uint8
	RAMEnabled bool
	Mode       BankingMode
}

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This cartridge type has external RAM and
// supports switching between up to 128 ROM banks and 4 RAM banks.
type MemoryBankedCartridge1 struct {
	rom []byte
	ram []byte

	romLow  uint8 // lower 5 bits, never 0
	romHigh uint8 // upper 2 bits
	ramBank uint8

	ramEnabled bool
	mode       BankingMode

	header Header
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header Header) *MemoryBankedCartridge1 {
	m := &MemoryBankedCartridge1{
		rom:    rom,
		romLow: 1,
		header: header,
	}
	if header.CartridgeType != MBC1 {
		m.ram = make([]byte, header.RAMSize)
	}
	return m
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address] // first bank is always fixed
	case address < 0x8000:
		return m.rom[m.romOffset()+int(address-0x4000)] // switchable bank
	}

	if m.ramEnabled {
		if offset, ok := m.ramOffset(address); ok {
			return m.ram[offset]
		}
	}
	return 0xFF
}

// Write writes to the banking registers when the address is in ROM,
// or to the selected RAM bank when the address is in 0xA000-0xBFFF.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = len(m.ram) > 0 && value&0x0F == 0x0A
	case address < 0x4000:
		// ROM bank number (lower 5 bits)
		m.romLow = value & 0x1F
		if m.romLow == 0 {
			m.romLow = 1
		}
	case address < 0x6000:
		if m.mode == ROMBankingMode {
			m.romHigh = value & 0x03
		} else {
			m.ramBank = value & 0x03
		}
	case address < 0x8000:
		// ROM/RAM mode select
		m.mode = BankingMode(value & 0x01)
	default:
		if !m.ramEnabled {
			return
		}
		if offset, ok := m.ramOffset(address); ok {
			m.ram[offset] = value
		}
	}
}

// romOffset returns the offset of the switchable ROM bank, masked to
// the number of banks present.
func (m *MemoryBankedCartridge1) romOffset() int {
	banks := len(m.rom) / 0x4000
	return (int(m.romHigh<<5|m.romLow) % banks) * 0x4000
}

// ramOffset translates an address in 0xA000-0xBFFF to an offset in
// the RAM of the cartridge.
func (m *MemoryBankedCartridge1) ramOffset(address uint16) (int, bool) {
	bank := 0
	if m.mode == RAMBankingMode {
		bank = int(m.ramBank)
	}
	offset := bank*0x2000 + int(address&0x1FFF)
	if len(m.ram) == 0 {
		return 0, false
	}
	return offset % len(m.ram), true
}

// BankState returns the current banking state.
func (m *MemoryBankedCartridge1) BankState() BankState {
	return BankState{
		ROMBank:    m.romHigh<<5 | m.romLow,
		RAMBank:    m.ramBank,
		RAMEnabled: m.ramEnabled,
		Mode:       m.mode,
	}
}

// Header returns the parsed cartridge header.
func (m *MemoryBankedCartridge1) Header() Header {
	return m.header
}

var _ types.Stater = (*MemoryBankedCartridge1)(nil)

// Load loads the banking state and RAM of the cartridge.
func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.romLow = s.Read8()
	m.romHigh = s.Read8()
	m.ramBank = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.mode = BankingMode(s.Read8())
	s.ReadData(m.ram)
}

// Save saves the banking state and RAM of the cartridge.
func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.Write8(m.romLow)
	s.Write8(m.romHigh)
	s.Write8(m.ramBank)
	s.WriteBool(m.ramEnabled)
	s.Write8(uint8(m.mode))
	s.WriteData(m.ram)
}
