package types

import (
	"fmt"
)

// HardwareRegisters is a table of hardware IO, which can be read
// and written to. The table is indexed by the address of the
// hardware register ANDed with 0x007F, with the IE register
// (0xFFFF) stored at index 0x7F.
//
// Each Bus owns its own table, so that multiple emulator instances
// never share hardware state.
type HardwareRegisters [0x80]*HardwareRegister

// HardwareRegister represents a hardware register of the Game
// Boy. The hardware IO are used to control and read the state
// of the hardware.
type HardwareRegister struct {
	write func(v uint8)
	read  func() uint8
}

// NoRead is a read function for write-only registers, which
// always read back as 0xFF.
func NoRead() uint8 {
	return 0xFF
}

// NoWrite is a write function for read-only registers.
func NoWrite(uint8) {}

// unusedIO shares its table slot with IE and is never backed by
// a register.
const unusedIO HardwareAddress = 0xFF7F

func index(address HardwareAddress) uint16 {
	if address == IE {
		return 0x7F
	}
	return address & HardwareMask
}

// RegisterHardware registers a hardware register with the given
// address and read/write functions. A nil read function makes the
// register read as 0xFF, a nil write function discards writes.
// Registering the same address twice panics, as that indicates two
// components claiming the same register.
func (h *HardwareRegisters) RegisterHardware(address HardwareAddress, write func(v uint8), read func() uint8) {
	if address < IOStart || address == unusedIO || (address >= HRAMStart && address != IE) {
		panic(fmt.Sprintf("hardware: 0x%04X is not a hardware register", address))
	}
	i := index(address)
	if h[i] != nil {
		panic(fmt.Sprintf("hardware: 0x%04X has already been registered", address))
	}
	if write == nil {
		write = NoWrite
	}
	if read == nil {
		read = NoRead
	}

	h[i] = &HardwareRegister{
		write: write,
		read:  read,
	}
}

// Has reports whether a hardware register is registered at the
// given address.
func (h *HardwareRegisters) Has(address HardwareAddress) bool {
	if address == unusedIO {
		return false
	}
	return h[index(address)] != nil
}

// Read returns the value of the hardware register for
// the given address. Unregistered registers read as 0xFF.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	if address == unusedIO {
		return 0xFF
	}
	if r := h[index(address)]; r != nil {
		return r.read()
	}
	return 0xFF
}

// Write writes the given value to the hardware register
// for the given address. Writes to unregistered registers
// are discarded.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	if address == unusedIO {
		return
	}
	if r := h[index(address)]; r != nil {
		r.write(value)
	}
}
