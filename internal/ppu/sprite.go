package ppu

// Sprite is an entry of the object attribute table.
type Sprite struct {
	// Y and X are the screen coordinates of the top-left corner,
	// with the hardware offsets of 16 and 8 already removed.
	Y, X   int
	TileID uint8
	spriteAttributes
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	// (Used for both BG and Window. BG color 0 is always behind OBJ)
	behindBG bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	flipY bool
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	flipX bool
	// Bit 4 - Palette number  (0=OBP0, 1=OBP1)
	useSecondPalette bool
}

// Update updates the sprite from a byte written to its OAM entry.
func (s *Sprite) Update(address uint16, value uint8) {
	switch address % 4 {
	case 0:
		s.Y = int(value) - 16
	case 1:
		s.X = int(value) - 8
	case 2:
		s.TileID = value
	case 3:
		s.behindBG = value&0x80 != 0
		s.flipY = value&0x40 != 0
		s.flipX = value&0x20 != 0
		s.useSecondPalette = value&0x10 != 0
	}
}

// onLine reports whether the sprite covers the given line.
func (s *Sprite) onLine(ly uint8, height uint8) bool {
	return int(ly) >= s.Y && int(ly) < s.Y+int(height)
}
