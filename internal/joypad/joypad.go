// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
	"github.com/thelolagemann/dmg/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown

	buttonCount = 8
)

const (
	rowActions    = 0
	rowDirections = 1
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// rows holds the two 4-bit button rows, action buttons
	// in row 0 and direction buttons in row 1. A 0 in a bit
	// indicates that the button is pressed.
	rows     [2]uint8
	selected uint8 // bits 4-5 of the last write to P1

	irq *interrupts.Service
}

// New returns a new joypad state, registering P1 on the given
// hardware table.
func New(h *types.HardwareRegisters, irq *interrupts.Service) *State {
	s := &State{
		rows:     [2]uint8{0x0F, 0x0F},
		selected: 0x30,
		irq:      irq,
	}
	h.RegisterHardware(types.P1, s.Write, s.Read)

	return s
}

// Write stores the row select bits.
func (s *State) Write(v uint8) {
	s.selected = v & 0x30
}

// Read returns the rows selected by the last write. When both
// rows are selected, a button reads as pressed if it is pressed
// in either row.
func (s *State) Read() uint8 {
	row := uint8(0x0F)
	if s.selected&types.Bit4 == 0 {
		row &= s.rows[rowDirections]
	}
	if s.selected&types.Bit5 == 0 {
		row &= s.rows[rowActions]
	}

	return 0xC0 | s.selected | row
}

func locate(button Button) (row int, bit uint8, ok bool) {
	return int(button / 4), button % 4, button < buttonCount
}

// Press presses a button, requesting the joypad interrupt
// when the button was not already held. Unknown buttons are
// ignored.
func (s *State) Press(button Button) {
	row, bit, ok := locate(button)
	if !ok {
		return
	}
	if bits.Test(s.rows[row], bit) {
		s.irq.Request(interrupts.JoypadFlag)
	}
	// reset the button bit in the row (0 = pressed)
	s.rows[row] = bits.Reset(s.rows[row], bit)
}

// Release releases a button.
func (s *State) Release(button Button) {
	row, bit, ok := locate(button)
	if !ok {
		return
	}
	// set the button bit in the row (1 = released)
	s.rows[row] = bits.Set(s.rows[row], bit)
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.rows[rowActions] = st.Read8()
	s.rows[rowDirections] = st.Read8()
	s.selected = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.rows[rowActions])
	st.Write8(s.rows[rowDirections])
	st.Write8(s.selected)
}
