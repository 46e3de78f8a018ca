// Package io provides the Bus of the Game Boy, which routes every
// CPU read and write to the component owning the address.
package io

import (
	"github.com/thelolagemann/dmg/internal/boot"
	"github.com/thelolagemann/dmg/internal/cartridge"
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/joypad"
	"github.com/thelolagemann/dmg/internal/mmu"
	"github.com/thelolagemann/dmg/internal/ppu"
	"github.com/thelolagemann/dmg/internal/serial"
	"github.com/thelolagemann/dmg/internal/timer"
	"github.com/thelolagemann/dmg/internal/types"
	"github.com/thelolagemann/dmg/pkg/log"
)

// Bus owns the memory mapped components of the Game Boy.
//
//	0x0000 - 0x7FFF  cartridge ROM (boot ROM overlay)  mmu.AddressSpace
//	0x8000 - 0x9FFF  video RAM                          ppu.PPU
//	0xA000 - 0xBFFF  external RAM                       mmu.AddressSpace
//	0xC000 - 0xFDFF  work RAM and echo                  mmu.AddressSpace
//	0xFE00 - 0xFE9F  object attribute memory            ppu.PPU
//	0xFEA0 - 0xFEFF  unusable, reads 0x00
//	0xFF00 - 0xFF7F  hardware registers, unused read 0xFF
//	0xFF80 - 0xFFFE  high RAM                           mmu.AddressSpace
//	0xFFFF           interrupt enable                   interrupts.Service
type Bus struct {
	hardware types.HardwareRegisters

	memory     *mmu.AddressSpace
	video      *ppu.PPU
	timer      *timer.Controller
	input      *joypad.State
	interrupts *interrupts.Service
	serial     *serial.Controller

	dmaSource uint8
	stall     int

	log log.Logger
}

// NewBus returns a new Bus for the given cartridge, creating the
// components it owns. bootROM may be nil.
func NewBus(cart cartridge.Cartridge, bootROM *boot.ROM, l log.Logger) *Bus {
	if l == nil {
		l = log.NewNullLogger()
	}
	b := &Bus{log: l}

	b.interrupts = interrupts.NewService(&b.hardware)
	b.memory = mmu.NewAddressSpace(&b.hardware, cart, bootROM)
	b.video = ppu.New(&b.hardware, b.interrupts)
	b.timer = timer.NewController(&b.hardware, b.interrupts)
	b.input = joypad.New(&b.hardware, b.interrupts)
	b.serial = serial.NewController(&b.hardware, b.interrupts)

	b.hardware.RegisterHardware(
		types.DMA,
		b.startDMATransfer,
		func() uint8 {
			return b.dmaSource
		},
	)

	return b
}

// Read returns the value at the given address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < types.VRAMStart:
		return b.memory.Read(address)
	case address < types.ExternalRAM:
		return b.video.Read(address)
	case address < types.OAMStart:
		return b.memory.Read(address)
	case address < types.UnusableStart:
		return b.video.Read(address)
	case address < types.IOStart:
		b.log.Debugf("io: read from unusable address 0x%04X", address)
		return 0x00
	case address < types.HRAMStart, address == types.IE:
		if !b.hardware.Has(address) {
			b.log.Debugf("io: read from unmapped register 0x%04X", address)
		}
		return b.hardware.Read(address)
	default:
		return b.memory.Read(address)
	}
}

// Write writes the value to the given address.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < types.VRAMStart:
		b.memory.Write(address, value)
	case address < types.ExternalRAM:
		b.video.Write(address, value)
	case address < types.OAMStart:
		b.memory.Write(address, value)
	case address < types.UnusableStart:
		b.video.Write(address, value)
	case address < types.IOStart:
		b.log.Debugf("io: write 0x%02X to unusable address 0x%04X", value, address)
	case address < types.HRAMStart, address == types.IE:
		if !b.hardware.Has(address) {
			b.log.Debugf("io: write 0x%02X to unmapped register 0x%04X", value, address)
		}
		b.hardware.Write(address, value)
	default:
		b.memory.Write(address, value)
	}
}

// Tick advances the components clocked alongside the CPU by the
// given number of T-cycles.
func (b *Bus) Tick(cycles int) {
	b.video.Step(cycles)
	b.timer.Tick(cycles)
}

// TakeStall returns the number of cycles the CPU was stalled for by
// a DMA transfer since the last call, and resets it.
func (b *Bus) TakeStall() int {
	stall := b.stall
	b.stall = 0
	return stall
}

// PPU returns the pixel processing unit.
func (b *Bus) PPU() *ppu.PPU {
	return b.video
}

// Timer returns the timer.
func (b *Bus) Timer() *timer.Controller {
	return b.timer
}

// Joypad returns the joypad.
func (b *Bus) Joypad() *joypad.State {
	return b.input
}

// Interrupts returns the interrupt service.
func (b *Bus) Interrupts() *interrupts.Service {
	return b.interrupts
}

// Serial returns the serial controller.
func (b *Bus) Serial() *serial.Controller {
	return b.serial
}

// AddressSpace returns the memory backing the cartridge, work and
// high RAM.
func (b *Bus) AddressSpace() *mmu.AddressSpace {
	return b.memory
}

var _ types.Stater = (*Bus)(nil)

// Load loads the state of the Bus and every component it owns.
func (b *Bus) Load(s *types.State) {
	b.dmaSource = s.Read8()
	b.stall = int(s.Read32())
	b.interrupts.Load(s)
	b.memory.Load(s)
	b.video.Load(s)
	b.timer.Load(s)
	b.input.Load(s)
	b.serial.Load(s)
}

// Save saves the state of the Bus and every component it owns.
func (b *Bus) Save(s *types.State) {
	s.Write8(b.dmaSource)
	s.Write32(uint32(b.stall))
	b.interrupts.Save(s)
	b.memory.Save(s)
	b.video.Save(s)
	b.timer.Save(s)
	b.input.Save(s)
	b.serial.Save(s)
}
