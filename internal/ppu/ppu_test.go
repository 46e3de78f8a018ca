package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/ppu/lcd"
	"github.com/thelolagemann/dmg/internal/ppu/palette"
	"github.com/thelolagemann/dmg/internal/types"
)

func newPPU() (*PPU, *types.HardwareRegisters, *interrupts.Service) {
	h := &types.HardwareRegisters{}
	irq := interrupts.NewService(h)
	return New(h, irq), h, irq
}

func TestPPU_FrameTiming(t *testing.T) {
	p, h, _ := newPPU()
	h.Write(types.LCDC, 0x91)

	var lines []uint8
	last := uint8(0xFF)
	for cycles := 0; cycles < FrameCycles; cycles += 4 {
		if p.LY() != last {
			last = p.LY()
			lines = append(lines, last)
		}
		p.Step(4)
	}

	require.Len(t, lines, 154)
	for i, ly := range lines {
		assert.Equal(t, uint8(i), ly)
	}

	// exactly one frame brings the PPU back to the start of line 0
	assert.Equal(t, uint8(0), p.LY())
	assert.Equal(t, lcd.OAM, p.Mode)
	assert.Equal(t, 70224, FrameCycles)
}

func TestPPU_ModeThresholds(t *testing.T) {
	p, h, _ := newPPU()
	h.Write(types.LCDC, 0x91)

	steps := []struct {
		cycles int
		mode   lcd.Mode
		ly     uint8
	}{
		{79, lcd.OAM, 0},
		{1, lcd.VRAM, 0},
		{171, lcd.VRAM, 0},
		{1, lcd.HBlank, 0},
		{203, lcd.HBlank, 0},
		{1, lcd.OAM, 1},
		// surplus cycles carry over into the next mode
		{456 + 80 + 10, lcd.VRAM, 2},
	}
	for _, s := range steps {
		p.Step(s.cycles)
		assert.Equal(t, s.mode, p.Mode)
		assert.Equal(t, s.ly, p.LY())
	}
	assert.Equal(t, lcd.VRAM, h.Read(types.STAT)&0x03)
}

func TestPPU_FirstScanline(t *testing.T) {
	t.Run("one mode per call", func(t *testing.T) {
		p, h, _ := newPPU()
		h.Write(types.LCDC, 0x90)

		p.Step(lcd.OAMCycles)
		p.Step(lcd.VRAMCycles)
		assert.Equal(t, lcd.HBlank, p.Mode)

		p.Step(lcd.HBlankCycles - 1)
		assert.Equal(t, lcd.HBlank, p.Mode)
		assert.Equal(t, uint8(0), p.LY())

		p.Step(1)
		assert.Equal(t, lcd.OAM, p.Mode)
		assert.Equal(t, uint8(1), p.LY())
	})
	t.Run("single call", func(t *testing.T) {
		p, h, _ := newPPU()
		h.Write(types.LCDC, 0x90)

		p.Step(lcd.ScanlineCycles - 1)
		assert.Equal(t, lcd.HBlank, p.Mode)
		assert.Equal(t, uint8(0), p.LY())

		p.Step(1)
		assert.Equal(t, lcd.OAM, p.Mode)
		assert.Equal(t, uint8(1), p.LY())
	})
}

func TestPPU_VBlank(t *testing.T) {
	p, h, irq := newPPU()
	h.Write(types.LCDC, 0x91)

	p.Step(ScreenHeight*lcd.ScanlineCycles - 1)
	assert.False(t, p.HasFrame())
	assert.Zero(t, irq.Flag&interrupts.VBlankFlag)

	p.Step(1)
	assert.Equal(t, lcd.VBlank, p.Mode)
	assert.Equal(t, uint8(144), p.LY())
	assert.NotZero(t, irq.Flag&interrupts.VBlankFlag)
	assert.True(t, p.HasFrame())
	p.Frame()
	assert.False(t, p.HasFrame())
}

func TestPPU_CoincidenceInterrupt(t *testing.T) {
	p, h, irq := newPPU()
	h.Write(types.LYC, 5)
	h.Write(types.STAT, 0x40)
	h.Write(types.LCDC, 0x91)

	requests := 0
	for cycles := 0; cycles < FrameCycles; cycles += 4 {
		p.Step(4)
		if irq.Flag&interrupts.LCDFlag != 0 {
			requests++
			irq.Flag &^= interrupts.LCDFlag
			assert.Equal(t, uint8(5), p.LY())
			assert.NotZero(t, h.Read(types.STAT)&types.Bit2)
		}
	}
	assert.Equal(t, 1, requests)

	// writing LYC re-evaluates the comparison
	h.Write(types.LYC, p.LY())
	assert.NotZero(t, irq.Flag&interrupts.LCDFlag)
}

func TestPPU_ModeInterrupts(t *testing.T) {
	p, h, irq := newPPU()
	h.Write(types.STAT, 0x08)
	h.Write(types.LCDC, 0x91)

	p.Step(lcd.OAMCycles + lcd.VRAMCycles - 1)
	assert.Zero(t, irq.Flag&interrupts.LCDFlag)
	p.Step(1)
	assert.NotZero(t, irq.Flag&interrupts.LCDFlag)
}

func TestPPU_Registers(t *testing.T) {
	p, h, _ := newPPU()

	t.Run("LY is read only", func(t *testing.T) {
		h.Write(types.LCDC, 0x91)
		p.Step(lcd.ScanlineCycles * 3)
		h.Write(types.LY, 0x42)
		assert.Equal(t, uint8(3), h.Read(types.LY))
	})
	t.Run("STAT bit 7 reads set", func(t *testing.T) {
		h.Write(types.STAT, 0x00)
		assert.Equal(t, uint8(0x80), h.Read(types.STAT)&0x80)
	})
	t.Run("LCD off", func(t *testing.T) {
		h.Write(types.LCDC, 0x11)
		assert.Equal(t, uint8(0), p.LY())
		assert.Equal(t, lcd.HBlank, p.Mode)

		p.Step(FrameCycles)
		assert.Equal(t, uint8(0), p.LY())
		assert.Equal(t, lcd.HBlank, p.Mode)
	})
	t.Run("read write", func(t *testing.T) {
		for _, addr := range []uint16{types.SCY, types.SCX, types.BGP, types.OBP0, types.OBP1, types.WY, types.WX, types.LYC} {
			h.Write(addr, 0x5A)
			assert.Equal(t, uint8(0x5A), h.Read(addr))
		}
	})
}

func TestTile_RowBits(t *testing.T) {
	p, _, _ := newPPU()

	// low byte at the even address, high byte at the odd address
	p.Write(0x8000, 0x3C)
	p.Write(0x8001, 0x7E)
	assert.Equal(t, [8]uint8{0, 2, 3, 3, 3, 3, 2, 0}, p.TileAt(0)[0])

	// the last row of the last tile
	p.Write(0x97FE, 0x80)
	p.Write(0x97FF, 0x01)
	assert.Equal(t, [8]uint8{1, 0, 0, 0, 0, 0, 0, 2}, p.TileAt(tileCount-1)[7])

	assert.Equal(t, uint8(0x3C), p.Read(0x8000))
}

// fillTile sets every pixel of the tile at the given address to colour 3.
func fillTile(p *PPU, address uint16) {
	for i := uint16(0); i < 16; i++ {
		p.Write(address+i, 0xFF)
	}
}

func renderFrame(p *PPU) Frame {
	p.Step(FrameCycles)
	return p.Frame()
}

func TestPPU_Background(t *testing.T) {
	p, h, _ := newPPU()
	fillTile(p, 0x8010)
	p.Write(0x9800, 0x01)
	h.Write(types.BGP, 0xE4)
	h.Write(types.LCDC, 0x91)

	f := renderFrame(p)
	for x := 0; x < 8; x++ {
		assert.Equal(t, palette.Black, f[0][x])
		assert.Equal(t, palette.Black, f[7][x])
	}
	assert.Equal(t, palette.White, f[0][8])
	assert.Equal(t, palette.White, f[8][0])

	t.Run("scrolled", func(t *testing.T) {
		h.Write(types.SCX, 4)
		h.Write(types.SCY, 4)
		f := renderFrame(p)
		assert.Equal(t, palette.Black, f[0][0])
		assert.Equal(t, palette.Black, f[3][3])
		assert.Equal(t, palette.White, f[4][0])
		assert.Equal(t, palette.White, f[0][4])
	})
	t.Run("signed addressing", func(t *testing.T) {
		h.Write(types.SCX, 0)
		h.Write(types.SCY, 0)
		// tile 0x80 with signed addressing is at 0x8800
		fillTile(p, 0x8800)
		p.Write(0x9800, 0x80)
		h.Write(types.LCDC, 0x81)
		f := renderFrame(p)
		assert.Equal(t, palette.Black, f[0][0])
	})
	t.Run("disabled", func(t *testing.T) {
		h.Write(types.LCDC, 0x90)
		f := renderFrame(p)
		assert.Equal(t, palette.White, f[0][0])
	})
}

func TestPPU_Window(t *testing.T) {
	p, h, _ := newPPU()
	fillTile(p, 0x8010)
	// window map at 0x9C00 is all tile 1
	for i := uint16(0); i < 0x400; i++ {
		p.Write(0x9C00+i, 0x01)
	}
	h.Write(types.BGP, 0xE4)
	h.Write(types.WY, 10)
	h.Write(types.WX, 7+20)
	h.Write(types.LCDC, 0xF1)

	f := renderFrame(p)
	assert.Equal(t, palette.White, f[9][30])
	assert.Equal(t, palette.White, f[10][19])
	assert.Equal(t, palette.Black, f[10][20])
	assert.Equal(t, palette.Black, f[143][159])
}

func TestPPU_Sprites(t *testing.T) {
	setup := func(attr uint8) (*PPU, *types.HardwareRegisters) {
		p, h, _ := newPPU()
		// sprite tile 1 has a single colour 1 pixel in its top-left corner
		p.Write(0x8010, 0x80)
		h.Write(types.OBP0, 0xE4)
		h.Write(types.OBP1, 0x1B)
		h.Write(types.BGP, 0xE4)
		p.Write(0xFE00, 16)
		p.Write(0xFE01, 8)
		p.Write(0xFE02, 0x01)
		p.Write(0xFE03, attr)
		h.Write(types.LCDC, 0x93)
		return p, h
	}

	t.Run("plain", func(t *testing.T) {
		p, _ := setup(0x00)
		f := renderFrame(p)
		assert.Equal(t, palette.LightGrey, f[0][0])
		assert.Equal(t, palette.White, f[0][1])
	})
	t.Run("second palette", func(t *testing.T) {
		p, _ := setup(0x10)
		f := renderFrame(p)
		assert.Equal(t, palette.DarkGrey, f[0][0])
	})
	t.Run("flipped", func(t *testing.T) {
		p, _ := setup(0x60)
		f := renderFrame(p)
		assert.Equal(t, palette.White, f[0][0])
		assert.Equal(t, palette.LightGrey, f[7][7])
	})
	t.Run("disabled", func(t *testing.T) {
		p, h := setup(0x00)
		h.Write(types.LCDC, 0x91)
		f := renderFrame(p)
		assert.Equal(t, palette.White, f[0][0])
	})
	t.Run("behind background", func(t *testing.T) {
		p, _ := setup(0x80)
		// background colour 0 never hides a sprite
		f := renderFrame(p)
		assert.Equal(t, palette.LightGrey, f[0][0])

		fillTile(p, 0x8020)
		p.Write(0x9800, 0x02)
		f = renderFrame(p)
		assert.Equal(t, palette.Black, f[0][0])
	})
	t.Run("tall sprites", func(t *testing.T) {
		p, h := setup(0x00)
		// bottom half comes from tile 1 when tile 0 is selected
		p.Write(0xFE02, 0x00)
		h.Write(types.LCDC, 0x97)
		f := renderFrame(p)
		assert.Equal(t, palette.White, f[0][0])
		assert.Equal(t, palette.LightGrey, f[8][0])
	})
}

func TestPPU_SpriteLimit(t *testing.T) {
	p, h, _ := newPPU()
	fillTile(p, 0x8010)
	h.Write(types.OBP0, 0xE4)
	// 11 sprites side by side on the first line
	for i := uint16(0); i < 11; i++ {
		p.Write(0xFE00+i*4, 16)
		p.Write(0xFE01+i*4, uint8(8+i*8))
		p.Write(0xFE02+i*4, 0x01)
	}
	h.Write(types.LCDC, 0x93)

	f := renderFrame(p)
	assert.Equal(t, palette.Black, f[0][79])
	assert.Equal(t, palette.White, f[0][80])
}

func TestPPU_State(t *testing.T) {
	p, h, _ := newPPU()
	fillTile(p, 0x8010)
	p.Write(0x9800, 0x01)
	p.Write(0xFE00, 0x20)
	h.Write(types.BGP, 0xE4)
	h.Write(types.SCX, 3)
	h.Write(types.LCDC, 0x91)
	p.Step(1234)

	s := types.NewState()
	p.Save(s)

	restored, rh, _ := newPPU()
	restored.Load(s)
	require.NoError(t, s.Err())

	assert.Equal(t, p.LY(), restored.LY())
	assert.Equal(t, p.Mode, restored.Mode)
	assert.Equal(t, p.TileAt(1), restored.TileAt(1))
	assert.Equal(t, uint8(0x20), restored.Read(0xFE00))
	assert.Equal(t, uint8(3), rh.Read(types.SCX))
	assert.Equal(t, h.Read(types.LCDC), rh.Read(types.LCDC))

	// the frame buffer isn't part of the state, so the first frame
	// after loading is partially drawn
	p.Step(2 * FrameCycles)
	restored.Step(2 * FrameCycles)
	assert.Equal(t, p.Frame(), restored.Frame())
}
