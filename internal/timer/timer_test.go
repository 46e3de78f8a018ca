package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
)

func newTimer() (*Controller, *interrupts.Service, *types.HardwareRegisters) {
	h := &types.HardwareRegisters{}
	irq := interrupts.NewService(h)
	return NewController(h, irq), irq, h
}

func TestController_Divider(t *testing.T) {
	c, _, h := newTimer()

	c.Tick(255)
	assert.Equal(t, uint8(0), h.Read(types.DIV))
	c.Tick(1)
	assert.Equal(t, uint8(1), h.Read(types.DIV))

	// wraps after 256 increments
	c.Tick(255 * 256)
	assert.Equal(t, uint8(0), h.Read(types.DIV))

	c.Tick(3 * 256)
	h.Write(types.DIV, 0x55)
	assert.Equal(t, uint8(0), h.Read(types.DIV), "writing DIV resets it")
	c.Tick(255)
	assert.Equal(t, uint8(0), h.Read(types.DIV), "writing DIV resets the accumulator")
}

func TestController_Disabled(t *testing.T) {
	c, irq, h := newTimer()
	h.Write(types.TAC, 0x01) // fastest frequency, but disabled

	c.Tick(4096)
	assert.Equal(t, uint8(0), h.Read(types.TIMA))
	assert.Equal(t, uint8(0), irq.Flag)
	assert.Equal(t, uint8(0xF9), h.Read(types.TAC))
}

func TestController_Frequencies(t *testing.T) {
	for _, tt := range []struct {
		tac    uint8
		period int
	}{
		{0x04, 1024},
		{0x05, 16},
		{0x06, 64},
		{0x07, 256},
	} {
		t.Run("", func(t *testing.T) {
			c, _, h := newTimer()
			h.Write(types.TAC, tt.tac)
			require.Equal(t, tt.period, c.Period())

			c.Tick(tt.period - 1)
			assert.Equal(t, uint8(0), h.Read(types.TIMA))
			c.Tick(1)
			assert.Equal(t, uint8(1), h.Read(types.TIMA))
			c.Tick(tt.period * 3)
			assert.Equal(t, uint8(4), h.Read(types.TIMA))
		})
	}
}

func TestController_Overflow(t *testing.T) {
	c, irq, h := newTimer()
	h.Write(types.TAC, 0x05) // enabled, 16 cycles
	h.Write(types.TMA, 0xF0)
	h.Write(types.TIMA, 0xFE)

	c.Tick(16)
	assert.Equal(t, uint8(0xFF), h.Read(types.TIMA))
	assert.Zero(t, irq.Flag&interrupts.TimerFlag)

	c.Tick(16)
	assert.Equal(t, uint8(0xF0), h.Read(types.TIMA), "reloads from TMA on overflow")
	assert.Equal(t, interrupts.TimerFlag, irq.Flag&interrupts.TimerFlag)

	// the interrupt is raised exactly once per overflow
	irq.Flag = 0
	c.Tick(16 * 15)
	assert.Equal(t, uint8(0xFF), h.Read(types.TIMA))
	assert.Zero(t, irq.Flag)
	c.Tick(16)
	assert.Equal(t, uint8(0xF0), h.Read(types.TIMA))
	assert.Equal(t, interrupts.TimerFlag, irq.Flag)
}

func TestController_State(t *testing.T) {
	c, _, h := newTimer()
	h.Write(types.TAC, 0x06)
	h.Write(types.TMA, 0x42)
	c.Tick(1000)

	st := types.NewState()
	c.Save(st)

	c2, _, h2 := newTimer()
	c2.Load(types.StateFromBytes(st.Bytes()))
	assert.Equal(t, h.Read(types.DIV), h2.Read(types.DIV))
	assert.Equal(t, h.Read(types.TIMA), h2.Read(types.TIMA))
	assert.Equal(t, h.Read(types.TMA), h2.Read(types.TMA))
	assert.Equal(t, h.Read(types.TAC), h2.Read(types.TAC))
	assert.Equal(t, c.timaCycles, c2.timaCycles)
}
