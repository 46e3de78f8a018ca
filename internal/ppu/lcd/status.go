package lcd

import (
	"github.com/thelolagemann/dmg/pkg/bits"
)

// Status represents the LCD status register. It contains information about the
// current state of the LCD controller. Its value is stored in the types.STAT
// register as follows:
//
//	Bit 7 - Unused, always reads 1
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see Mode) (Read Only)
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	// Coincidence is set while LY equals LYC.
	Coincidence bool
	// Mode is the current mode of the LCD controller.
	Mode Mode
}

// NewStatus returns a new Status.
func NewStatus() *Status {
	return &Status{}
}

// Write writes the interrupt enable bits, the lower 3 bits are read-only.
func (s *Status) Write(value uint8) {
	s.CoincidenceInterrupt = bits.Test(value, 6)
	s.OAMInterrupt = bits.Test(value, 5)
	s.VBlankInterrupt = bits.Test(value, 4)
	s.HBlankInterrupt = bits.Test(value, 3)
}

// Read returns the value of the status register.
func (s *Status) Read() uint8 {
	value := uint8(0x80)
	value = bits.SetTo(value, 6, s.CoincidenceInterrupt)
	value = bits.SetTo(value, 5, s.OAMInterrupt)
	value = bits.SetTo(value, 4, s.VBlankInterrupt)
	value = bits.SetTo(value, 3, s.HBlankInterrupt)
	value = bits.SetTo(value, 2, s.Coincidence)
	return value | s.Mode&0x03
}

// InterruptEnabled reports whether entering the given mode should
// request a STAT interrupt.
func (s *Status) InterruptEnabled(mode Mode) bool {
	switch mode {
	case HBlank:
		return s.HBlankInterrupt
	case VBlank:
		return s.VBlankInterrupt
	case OAM:
		return s.OAMInterrupt
	}
	return false
}
