// Package serial provides a minimal serial port. There is no link
// cable on the other end: a transfer started with the internal
// clock completes immediately, the outgoing byte is handed to an
// optional sink, and 0xFF (an unconnected line) is shifted in.
// Test ROMs use this to report their results.
package serial

import (
	"io"

	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
)

// Controller is the serial controller, holding the SB and SC
// registers.
type Controller struct {
	data    uint8 // types.SB
	control uint8 // types.SC

	sink io.Writer
	irq  *interrupts.Service
}

// NewController creates a new Controller, registering SB and SC
// on the given hardware table.
func NewController(h *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq: irq,
	}
	h.RegisterHardware(types.SB, func(v uint8) {
		c.data = v
	}, func() uint8 {
		return c.data
	})
	h.RegisterHardware(types.SC, func(v uint8) {
		c.control = v & (types.Bit7 | types.Bit0)

		// transfer requested using the internal clock?
		if c.control == types.Bit7|types.Bit0 {
			c.transfer()
		}
	}, func() uint8 {
		return c.control | 0x7E
	})

	return c
}

// Attach sets the writer that receives every transferred byte.
func (c *Controller) Attach(w io.Writer) {
	c.sink = w
}

func (c *Controller) transfer() {
	if c.sink != nil {
		_, _ = c.sink.Write([]byte{c.data})
	}

	c.data = 0xFF
	c.control &^= types.Bit7
	c.irq.Request(interrupts.SerialFlag)
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.control = s.Read8()
}

func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.control)
}
