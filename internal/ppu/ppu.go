// Package ppu provides the (P)ixel (P)rocessing (U)nit of the Game Boy.
// It owns video RAM and the object attribute table, steps through the
// four LCD modes and renders a scanline at the end of each pixel
// transfer.
package ppu

import (
	"image"
	"sort"

	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/ppu/lcd"
	"github.com/thelolagemann/dmg/internal/ppu/palette"
	"github.com/thelolagemann/dmg/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144

	// lastLine is the last line of VBlank.
	lastLine = 153
	// FrameCycles is the number of T-cycles the LCD takes to draw a frame.
	FrameCycles = (lastLine + 1) * lcd.ScanlineCycles

	maxSpritesPerLine = 10
)

// Frame holds the shade of each pixel of the screen, indexed by [y][x].
type Frame [ScreenHeight][ScreenWidth]palette.Colour

// Image returns the frame as an image, using the given palette.
func (f *Frame) Image(p palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			img.SetRGBA(x, y, p.RGBA(f[y][x]))
		}
	}
	return img
}

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	*lcd.Controller // types.LCDC
	*lcd.Status     // types.STAT

	// Rendering state
	modeClock  int   // cycles spent in the current mode
	ly         uint8 // Current line (0-153)
	windowLine uint8 // Window line counter

	// Scroll registers
	scy, scx uint8 // Background viewport position
	wy, wx   uint8 // Window Position

	lyCompare uint8 // LYC register value

	// Palette registers
	bgp, obp0, obp1 uint8

	vRAM  [0x2000]uint8
	tiles [tileCount]Tile
	oam   *OAM

	// Frame buffers
	frame         Frame
	PreparedFrame Frame
	frameReady    bool

	// colour numbers of the background and window on the current
	// line, used for sprite priority
	bgLine [ScreenWidth]uint8

	irq *interrupts.Service
}

// New creates a PPU, registering the LCD registers on the given
// hardware table.
func New(h *types.HardwareRegisters, irq *interrupts.Service) *PPU {
	p := &PPU{
		Controller: lcd.NewController(),
		Status:     lcd.NewStatus(),
		oam:        NewOAM(),
		irq:        irq,
	}

	h.RegisterHardware(
		types.LCDC,
		p.writeLCDC,
		func() uint8 {
			return p.Controller.Read()
		},
	)
	h.RegisterHardware(
		types.STAT,
		func(v uint8) {
			p.Status.Write(v)
		}, func() uint8 {
			return p.Status.Read()
		},
	)
	h.RegisterHardware(
		types.SCY,
		func(v uint8) {
			p.scy = v
		}, func() uint8 {
			return p.scy
		},
	)
	h.RegisterHardware(
		types.SCX,
		func(v uint8) {
			p.scx = v
		}, func() uint8 {
			return p.scx
		},
	)
	// LY is read-only
	h.RegisterHardware(
		types.LY,
		types.NoWrite,
		func() uint8 {
			return p.ly
		},
	)
	h.RegisterHardware(
		types.LYC,
		func(v uint8) {
			p.lyCompare = v
			if p.Enabled {
				p.compareLYC()
			}
		}, func() uint8 {
			return p.lyCompare
		},
	)
	h.RegisterHardware(
		types.BGP,
		func(v uint8) {
			p.bgp = v
		}, func() uint8 {
			return p.bgp
		},
	)
	h.RegisterHardware(
		types.OBP0,
		func(v uint8) {
			p.obp0 = v
		}, func() uint8 {
			return p.obp0
		},
	)
	h.RegisterHardware(
		types.OBP1,
		func(v uint8) {
			p.obp1 = v
		}, func() uint8 {
			return p.obp1
		},
	)
	h.RegisterHardware(
		types.WY,
		func(v uint8) {
			p.wy = v
		}, func() uint8 {
			return p.wy
		},
	)
	h.RegisterHardware(
		types.WX,
		func(v uint8) {
			p.wx = v
		}, func() uint8 {
			return p.wx
		},
	)

	return p
}

func (p *PPU) writeLCDC(v uint8) {
	wasEnabled := p.Enabled
	p.Controller.Write(v)

	switch {
	case wasEnabled && !p.Enabled:
		// when the LCD is off, LY reads 0, and STAT mode reads 0 (HBlank)
		p.ly = 0
		p.windowLine = 0
		p.modeClock = 0
		p.Mode = lcd.HBlank
	case !wasEnabled && p.Enabled:
		// the first line starts without an OAM STAT interrupt
		p.ly = 0
		p.windowLine = 0
		p.modeClock = 0
		p.Mode = lcd.OAM
		p.compareLYC()
	}
}

// Step advances the PPU by the given number of T-cycles. Cycles
// left over after a mode ends count towards the next mode.
func (p *PPU) Step(cycles int) {
	if !p.Enabled {
		return
	}
	p.modeClock += cycles

	for {
		switch p.Mode {
		case lcd.OAM:
			if p.modeClock < lcd.OAMCycles {
				return
			}
			p.modeClock -= lcd.OAMCycles
			p.setMode(lcd.VRAM)
		case lcd.VRAM:
			if p.modeClock < lcd.VRAMCycles {
				return
			}
			p.modeClock -= lcd.VRAMCycles
			p.renderScanline()
			p.setMode(lcd.HBlank)
		case lcd.HBlank:
			if p.modeClock < lcd.HBlankCycles {
				return
			}
			p.modeClock -= lcd.HBlankCycles
			p.setLY(p.ly + 1)
			if p.ly == ScreenHeight {
				p.setMode(lcd.VBlank)
				p.irq.Request(interrupts.VBlankFlag)
				p.PreparedFrame = p.frame
				p.frameReady = true
			} else {
				p.setMode(lcd.OAM)
			}
		case lcd.VBlank:
			if p.modeClock < lcd.ScanlineCycles {
				return
			}
			p.modeClock -= lcd.ScanlineCycles
			if p.ly == lastLine {
				p.windowLine = 0
				p.setLY(0)
				p.setMode(lcd.OAM)
			} else {
				p.setLY(p.ly + 1)
			}
		}
	}
}

// setMode changes the mode reported in STAT, requesting a STAT
// interrupt if the mode's interrupt is enabled.
func (p *PPU) setMode(mode lcd.Mode) {
	p.Mode = mode
	if p.Status.InterruptEnabled(mode) {
		p.irq.Request(interrupts.LCDFlag)
	}
}

func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	p.compareLYC()
}

// compareLYC updates the coincidence flag, requesting a STAT
// interrupt when LY becomes equal to LYC.
func (p *PPU) compareLYC() {
	equal := p.ly == p.lyCompare
	if equal && !p.Coincidence && p.CoincidenceInterrupt {
		p.irq.Request(interrupts.LCDFlag)
	}
	p.Coincidence = equal
}

// LY returns the current line.
func (p *PPU) LY() uint8 {
	return p.ly
}

// HasFrame reports whether a frame has been completed since the last
// call to Frame.
func (p *PPU) HasFrame() bool {
	return p.frameReady
}

// Frame returns the last completed frame.
func (p *PPU) Frame() Frame {
	p.frameReady = false
	return p.PreparedFrame
}

// Read returns the value at the given address in VRAM (0x8000-0x9FFF)
// or OAM (0xFE00-0xFE9F).
func (p *PPU) Read(address uint16) uint8 {
	if address >= types.OAMStart {
		return p.oam.Read(address - types.OAMStart)
	}
	return p.vRAM[address-types.VRAMStart]
}

// Write writes the value to the given address in VRAM (0x8000-0x9FFF)
// or OAM (0xFE00-0xFE9F).
func (p *PPU) Write(address uint16, value uint8) {
	if address >= types.OAMStart {
		p.oam.Write(address-types.OAMStart, value)
		return
	}
	offset := address - types.VRAMStart
	p.vRAM[offset] = value
	if offset < tileCount*16 {
		p.updateTile(offset)
	}
}

// updateTile decodes the tile row containing the given VRAM offset.
func (p *PPU) updateTile(offset uint16) {
	offset &^= 1
	p.tiles[offset/16].updateRow(int(offset%16)/2, p.vRAM[offset], p.vRAM[offset+1])
}

// TileAt returns the decoded tile at the given index of the tile cache.
func (p *PPU) TileAt(index int) Tile {
	return p.tiles[index]
}

// renderScanline draws the current line into the frame buffer.
func (p *PPU) renderScanline() {
	if p.ly >= ScreenHeight {
		return
	}
	p.renderBackground()
	p.renderWindow()
	if p.SpriteEnabled {
		p.renderSprites()
	}
}

// tileMapColour returns the colour number of the pixel at (x, y) of
// the 256x256 tile map starting at mapAddress.
func (p *PPU) tileMapColour(mapAddress uint16, x, y uint8) uint8 {
	id := p.vRAM[mapAddress-types.VRAMStart+uint16(y/8)*32+uint16(x/8)]
	return p.tiles[tileIndex(id, p.UsingSignedTileData())][y%8][x%8]
}

func (p *PPU) renderBackground() {
	line := &p.frame[p.ly]
	if !p.BackgroundEnabled {
		for x := range line {
			line[x] = palette.White
			p.bgLine[x] = 0
		}
		return
	}

	y := p.ly + p.scy
	for x := uint8(0); x < ScreenWidth; x++ {
		colour := p.tileMapColour(p.BackgroundTileMapAddress, x+p.scx, y)
		p.bgLine[x] = colour
		line[x] = palette.Map(p.bgp, colour)
	}
}

func (p *PPU) renderWindow() {
	if !p.WindowEnabled || !p.BackgroundEnabled || p.ly < p.wy || p.wx > ScreenWidth+6 {
		return
	}

	line := &p.frame[p.ly]
	start := int(p.wx) - 7
	for x := start; x < ScreenWidth; x++ {
		if x < 0 {
			continue
		}
		colour := p.tileMapColour(p.WindowTileMapAddress, uint8(x-start), p.windowLine)
		p.bgLine[x] = colour
		line[x] = palette.Map(p.bgp, colour)
	}
	p.windowLine++
}

func (p *PPU) renderSprites() {
	sprites := p.oam.spritesOnLine(p.ly, p.SpriteSize)

	// the sprite with the smaller X coordinate has priority, ties
	// are won by the earlier OAM entry
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].X < sprites[j].X
	})

	line := &p.frame[p.ly]
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]

		row := int(p.ly) - s.Y
		if s.flipY {
			row = int(p.SpriteSize) - 1 - row
		}
		id := s.TileID
		if p.SpriteSize == 16 {
			id &= 0xFE
		}
		tile := &p.tiles[int(id)+row/8]

		obp := p.obp0
		if s.useSecondPalette {
			obp = p.obp1
		}

		for px := 0; px < 8; px++ {
			x := s.X + px
			if x < 0 || x >= ScreenWidth {
				continue
			}
			col := px
			if s.flipX {
				col = 7 - px
			}
			colour := tile[row%8][col]
			if colour == 0 {
				continue
			}
			if s.behindBG && p.bgLine[x] != 0 {
				continue
			}
			line[x] = palette.Map(obp, colour)
		}
	}
}

var _ types.Stater = (*PPU)(nil)

func (p *PPU) Load(s *types.State) {
	p.Controller.Write(s.Read8())
	p.Status.Write(s.Read8())
	p.Coincidence = s.ReadBool()
	p.Mode = s.Read8() & 0x03
	p.modeClock = int(s.Read32())
	p.ly = s.Read8()
	p.windowLine = s.Read8()
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.wy = s.Read8()
	p.wx = s.Read8()
	p.lyCompare = s.Read8()
	p.bgp = s.Read8()
	p.obp0 = s.Read8()
	p.obp1 = s.Read8()

	var vRAM [0x2000]uint8
	s.ReadData(vRAM[:])
	for i, v := range vRAM {
		p.Write(types.VRAMStart+uint16(i), v)
	}
	var oam [160]uint8
	s.ReadData(oam[:])
	for i, v := range oam {
		p.oam.Write(uint16(i), v)
	}
}

func (p *PPU) Save(s *types.State) {
	s.Write8(p.Controller.Read())
	s.Write8(p.Status.Read())
	s.WriteBool(p.Coincidence)
	s.Write8(p.Mode)
	s.Write32(uint32(p.modeClock))
	s.Write8(p.ly)
	s.Write8(p.windowLine)
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.lyCompare)
	s.Write8(p.bgp)
	s.Write8(p.obp0)
	s.Write8(p.obp1)
	s.WriteData(p.vRAM[:])
	s.WriteData(p.oam.raw[:])
}
