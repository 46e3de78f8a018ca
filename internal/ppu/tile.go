package ppu

// Tile represents a tile. Each tile has a size of 8x8 pixels and a color
// depth of 4 colors/gray shades. Tiles can be displayed as sprites or as
// background/window tiles. Each entry holds the 2-bit colour number of
// the pixel, indexed by [y][x].
type Tile [8][8]uint8

// tileCount is the number of tiles held in 0x8000-0x97FF.
const tileCount = 384

// updateRow decodes a row of the tile from its two bytes. The low
// byte holds bit 0 of each pixel's colour number and the high byte
// bit 1, with the leftmost pixel in bit 7.
func (t *Tile) updateRow(row int, lo, hi uint8) {
	for x := 0; x < 8; x++ {
		shift := 7 - x
		t[row][x] = (lo>>shift)&1 | (hi>>shift)&1<<1
	}
}

// tileIndex returns the index into the tile cache for the given tile
// number, using signed addressing relative to 0x9000 when signed is set.
func tileIndex(id uint8, signed bool) int {
	if signed {
		return 256 + int(int8(id))
	}
	return int(id)
}
