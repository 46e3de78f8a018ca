package gameboy

import (
	"io"

	"github.com/thelolagemann/dmg/internal/ppu/palette"
	"github.com/thelolagemann/dmg/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger of the GameBoy and its Bus.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. Execution starts at
// 0x0000 with every register zeroed, the boot ROM is unmapped when it
// writes to types.BDIS.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootData = rom
	}
}

// WithSerialOutput attaches w to the serial port, receiving every byte
// the cartridge transfers.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serial = w
	}
}

// WithPalette sets the colours used by GameBoy.Image.
func WithPalette(p palette.Palette) Opt {
	return func(gb *GameBoy) {
		gb.palette = p
	}
}
