// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
)

const (
	// DividerPeriod is the number of cycles between increments
	// of the DIV register (16384Hz).
	DividerPeriod = 256
)

// periods holds the number of cycles between TIMA increments
// for each TAC frequency selector, in the order 4096Hz, 262144Hz,
// 65536Hz and 16384Hz.
var periods = [4]int{1024, 16, 64, 256}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	// internal accumulators, not visible on the bus
	divCycles  int
	timaCycles int

	div  uint8
	tima uint8
	tma  uint8
	tac  uint8

	irq *interrupts.Service
}

// NewController returns a new timer controller, registering
// DIV, TIMA, TMA and TAC on the given hardware table.
func NewController(h *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq: irq,
	}
	h.RegisterHardware(
		types.DIV,
		func(v uint8) {
			// any write resets the divider
			c.div = 0
			c.divCycles = 0
			c.timaCycles = 0
		}, func() uint8 {
			return c.div
		},
	)
	h.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			c.tima = v
		}, func() uint8 {
			return c.tima
		},
	)
	h.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
		}, func() uint8 {
			return c.tma
		},
	)
	h.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0b111
		}, func() uint8 {
			return c.tac | 0b11111000
		},
	)

	return c
}

// Enabled returns true if TAC bit 2 is set.
func (c *Controller) Enabled() bool {
	return c.tac&types.Bit2 != 0
}

// Period returns the number of cycles between TIMA increments
// selected by TAC.
func (c *Controller) Period() int {
	return periods[c.tac&0b11]
}

// Tick advances the timer by the given number of cycles. DIV is
// incremented every 256 cycles; when enabled, TIMA is incremented
// once per Period cycles, reloading from TMA and requesting the
// timer interrupt when it overflows.
func (c *Controller) Tick(cycles int) {
	c.divCycles += cycles
	for c.divCycles >= DividerPeriod {
		c.divCycles -= DividerPeriod
		c.div++
	}

	if !c.Enabled() {
		return
	}

	c.timaCycles += cycles
	period := c.Period()
	for c.timaCycles >= period {
		c.timaCycles -= period
		c.tima++

		// check for overflow
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.div = s.Read8()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()
	c.divCycles = int(s.Read16())
	c.timaCycles = int(s.Read16())
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.Write16(uint16(c.divCycles))
	s.Write16(uint16(c.timaCycles))
}
