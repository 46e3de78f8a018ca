// Package interrupts provides the interrupt controller, holding the
// interrupt enable (IE) and interrupt flag (IF) registers.
package interrupts

import (
	"github.com/thelolagemann/dmg/internal/types"
)

// Flag is a bitset over the five interrupt sources.
type Flag = uint8

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag Flag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag Flag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag Flag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag Flag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low.
	JoypadFlag Flag = types.Bit4

	// mask covers the five interrupt sources.
	mask Flag = 0x1F
)

// Vectors holds the address the CPU jumps to for each interrupt,
// indexed by the bit position of the interrupt flag.
var Vectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the CPU's IME is set, the CPU will jump to the
// interrupt vector, and the corresponding bit in the Flag
// register will be cleared.
type Service struct {
	Flag   Flag // interrupt Flag (types.IF)
	Enable Flag // interrupt Enable (types.IE)
}

// NewService returns a new Service, registering the IF and
// IE registers on the given hardware table.
func NewService(h *types.HardwareRegisters) *Service {
	s := &Service{}
	h.RegisterHardware(
		types.IF,
		func(v uint8) {
			s.Flag = v & mask // only the first 5 bits are used
		}, func() uint8 {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		},
	)
	h.RegisterHardware(
		types.IE,
		func(v uint8) {
			s.Enable = v
		}, func() uint8 {
			return s.Enable
		},
	)

	return s
}

// Pending returns the interrupts that are both requested and
// enabled.
func (s *Service) Pending() Flag {
	return s.Enable & s.Flag & mask
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Pending() != 0
}

// Request requests the specified interrupts, by setting
// the corresponding bits in the Flag register.
func (s *Service) Request(flag Flag) {
	s.Flag |= flag & mask
}

// Vector returns the vector of the highest priority pending
// interrupt, clearing its bit in the Flag register. VBlank has
// the highest priority and Joypad the lowest. ok is false when
// no interrupt is pending.
func (s *Service) Vector() (vector uint16, ok bool) {
	pending := s.Pending()
	if pending == 0 {
		return 0, false
	}
	for i := uint8(0); i < 5; i++ {
		// get the flag for the current interrupt
		flag := Flag(1 << i)

		if pending&flag != 0 {
			// clear the interrupt flag and return the vector
			s.Flag &^= flag
			return Vectors[i], true
		}
	}

	return 0, false
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
}
