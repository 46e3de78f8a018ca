// Package gameboy provides an emulation of a Nintendo Game Boy (DMG).
// It wires the CPU to the Bus and keeps the components cycle
// synchronized.
package gameboy

import (
	"fmt"
	"image"
	goio "io"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmg/internal/boot"
	"github.com/thelolagemann/dmg/internal/cartridge"
	"github.com/thelolagemann/dmg/internal/cpu"
	"github.com/thelolagemann/dmg/internal/io"
	"github.com/thelolagemann/dmg/internal/joypad"
	"github.com/thelolagemann/dmg/internal/ppu"
	"github.com/thelolagemann/dmg/internal/ppu/palette"
	"github.com/thelolagemann/dmg/internal/types"
	"github.com/thelolagemann/dmg/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.FrameCycles
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU *cpu.CPU
	bus *io.Bus

	log.Logger

	bootData []byte
	serial   goio.Writer
	palette  palette.Palette

	frame       ppu.Frame
	cycles      uint64
	breakpoints map[uint16]struct{}
}

// New returns a new GameBoy running the given ROM. The cartridge
// header and the boot ROM, if one was given, are validated before
// any component is created. Without a boot ROM, the GameBoy starts
// at the cartridge entry point with the registers the boot ROM
// would have left behind.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:      log.NewNullLogger(),
		palette:     palette.Palettes[palette.Greyscale],
		breakpoints: make(map[uint16]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	var bootROM *boot.ROM
	if g.bootData != nil {
		if bootROM, err = boot.LoadBootROM(g.bootData); err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		g.Infof("boot ROM %s (%s)", bootROM.Model(), bootROM.Checksum())
	}

	g.bus = io.NewBus(cart, bootROM, g.Logger)
	g.CPU = cpu.New(g.bus, g.bus.Interrupts())
	if bootROM == nil {
		g.skipBootROM()
	}
	if g.serial != nil {
		g.bus.Serial().Attach(g.serial)
	}

	g.Infof("loaded %s", cart.Header())
	return g, nil
}

// skipBootROM puts the hardware in the state the boot ROM leaves it in.
func (g *GameBoy) skipBootROM() {
	g.CPU.SkipBootROM()
	g.bus.Write(types.BGP, 0xFC)
	g.bus.Write(types.LCDC, 0x91)
}

// Step executes a single instruction and advances the rest of the
// hardware by its cost, returning the number of T-cycles elapsed. Step
// panics with a *cpu.DecodeError on an undefined opcode.
func (g *GameBoy) Step() int {
	cycles := g.CPU.Step()
	g.bus.Tick(cycles)
	g.cycles += uint64(cycles)
	return cycles
}

// RunFrame steps the emulation until the PPU has finished the current
// frame, or a frame's worth of cycles elapsed while the LCD is off,
// and returns the frame.
func (g *GameBoy) RunFrame() (frame ppu.Frame, err error) {
	defer recoverDecodeError(&err)

	video := g.bus.PPU()
	for elapsed := 0; !video.HasFrame() && elapsed < CyclesPerFrame; {
		elapsed += g.Step()
	}
	if video.HasFrame() {
		g.frame = video.Frame()
	}
	return g.frame, nil
}

// recoverDecodeError turns a panicking *cpu.DecodeError into an error,
// other panics are left alone.
func recoverDecodeError(err *error) {
	if r := recover(); r != nil {
		de, ok := r.(*cpu.DecodeError)
		if !ok {
			panic(r)
		}
		*err = de
	}
}

// Frame returns the last frame finished by RunFrame.
func (g *GameBoy) Frame() ppu.Frame {
	return g.frame
}

// Image returns the last frame coloured by the palette.
func (g *GameBoy) Image() *image.RGBA {
	return g.frame.Image(g.palette)
}

// FrameHash returns a digest of the last frame.
func (g *GameBoy) FrameHash() uint64 {
	raw := make([]byte, 0, ppu.ScreenWidth*ppu.ScreenHeight)
	for y := range g.frame {
		for _, shade := range g.frame[y] {
			raw = append(raw, uint8(shade))
		}
	}
	return xxhash.Sum64(raw)
}

// Cycles returns the number of T-cycles elapsed since the GameBoy was
// created.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Press presses the given button.
func (g *GameBoy) Press(button joypad.Button) {
	g.bus.Joypad().Press(button)
}

// Release releases the given button.
func (g *GameBoy) Release(button joypad.Button) {
	g.bus.Joypad().Release(button)
}

// Header returns the header of the loaded cartridge.
func (g *GameBoy) Header() cartridge.Header {
	return g.bus.AddressSpace().Cart.Header()
}
