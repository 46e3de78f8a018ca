package cartridge

import "github.com/thelolagemann/dmg/internal/types"

// ROMCartridge represents a ROM cartridge. This cartridge type is the
// simplest cartridge type and has no MBC. The ROM is mapped directly
// into 0x0000-0x7FFF and the optional RAM into 0xA000-0xBFFF.
type ROMCartridge struct {
	rom []byte
	ram []byte

	header Header
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header Header) *ROMCartridge {
	r := &ROMCartridge{
		rom:    rom,
		header: header,
	}
	if header.CartridgeType != ROM {
		r.ram = make([]byte, header.RAMSize)
	}
	return r
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address < 0x8000 {
		return r.rom[address]
	}
	if offset := int(address & 0x1FFF); offset < len(r.ram) {
		return r.ram[offset]
	}
	return 0xFF
}

// Write writes the value to RAM, writes to the ROM are ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address < 0x8000 {
		return
	}
	if offset := int(address & 0x1FFF); offset < len(r.ram) {
		r.ram[offset] = value
	}
}

// Header returns the parsed cartridge header.
func (r *ROMCartridge) Header() Header {
	return r.header
}

// Load loads the RAM of the cartridge.
func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.ram)
}

// Save saves the RAM of the cartridge, ROM is read-only.
func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.ram)
}
