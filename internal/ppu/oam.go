package ppu

// OAM (Object Attribute Memory) is the memory used to store the
// attributes of the sprites. It is 160 bytes long and is located at
// 0xFE00-0xFE9F in the memory map. It is divided in 40 entries of 4 bytes
// each, each entry representing a sprite.
type OAM struct {
	raw     [160]uint8
	Sprites [40]Sprite
}

// NewOAM returns a new OAM, with every sprite positioned off screen.
func NewOAM() *OAM {
	o := &OAM{}
	for i := range o.raw {
		o.Write(uint16(i), 0)
	}
	return o
}

// Read returns the value at the given offset.
func (o *OAM) Read(address uint16) uint8 {
	return o.raw[address]
}

// Write writes the given value at the given offset, updating the
// decoded sprite.
func (o *OAM) Write(address uint16, value uint8) {
	o.raw[address] = value
	o.Sprites[address>>2].Update(address, value)
}

// spritesOnLine returns the first (up to 10) sprites that cover the
// given line, in OAM order.
func (o *OAM) spritesOnLine(ly uint8, height uint8) []*Sprite {
	visible := make([]*Sprite, 0, maxSpritesPerLine)
	for i := range o.Sprites {
		if o.Sprites[i].onLine(ly, height) {
			visible = append(visible, &o.Sprites[i])
			if len(visible) == maxSpritesPerLine {
				break
			}
		}
	}
	return visible
}
