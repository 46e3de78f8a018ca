// Package lcd provides the LCD control and status registers.
package lcd

import (
	"github.com/thelolagemann/dmg/pkg/bits"
)

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (types.LCDC) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. When set, the LCD is enabled.
	Enabled bool
	// WindowTileMapAddress represents the Window Tile Map Display Select bit,
	// stored as the start address of the tile map.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// TileDataAddress represents the BG & Window Tile Data Select bit,
	// stored as the start address of the tile data. At 0x8800 tile
	// numbers are signed, relative to 0x9000.
	TileDataAddress uint16
	// BackgroundTileMapAddress represents the BG Tile Map Display Select bit,
	// stored as the start address of the tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of sprites, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit. When reset,
	// the background and window are blank.
	BackgroundEnabled bool
}

// NewController returns a new LCD controller, with every bit of
// the register reset.
func NewController() *Controller {
	c := &Controller{}
	c.Write(0x00)
	return c
}

// Write writes the value to the LCD controller.
func (c *Controller) Write(value uint8) {
	c.Enabled = bits.Test(value, 7)
	if bits.Test(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	} else {
		c.WindowTileMapAddress = 0x9800
	}
	c.WindowEnabled = bits.Test(value, 5)
	if bits.Test(value, 4) {
		c.TileDataAddress = 0x8000
	} else {
		c.TileDataAddress = 0x8800
	}
	if bits.Test(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	} else {
		c.BackgroundTileMapAddress = 0x9800
	}
	c.SpriteSize = 8 + bits.Val(value, 2)*8
	c.SpriteEnabled = bits.Test(value, 1)
	c.BackgroundEnabled = bits.Test(value, 0)
}

// Read reads the value from the LCD controller.
func (c *Controller) Read() uint8 {
	var value uint8
	value = bits.SetTo(value, 7, c.Enabled)
	value = bits.SetTo(value, 6, c.WindowTileMapAddress == 0x9C00)
	value = bits.SetTo(value, 5, c.WindowEnabled)
	value = bits.SetTo(value, 4, c.TileDataAddress == 0x8000)
	value = bits.SetTo(value, 3, c.BackgroundTileMapAddress == 0x9C00)
	value = bits.SetTo(value, 2, c.SpriteSize == 16)
	value = bits.SetTo(value, 1, c.SpriteEnabled)
	value = bits.SetTo(value, 0, c.BackgroundEnabled)
	return value
}

// UsingSignedTileData returns true if the LCD controller is using signed tile
// data.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}
