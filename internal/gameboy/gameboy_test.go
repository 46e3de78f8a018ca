package gameboy

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmg/internal/boot"
	"github.com/thelolagemann/dmg/internal/cartridge"
	"github.com/thelolagemann/dmg/internal/cpu"
	"github.com/thelolagemann/dmg/internal/joypad"
	"github.com/thelolagemann/dmg/internal/ppu/palette"
	"github.com/thelolagemann/dmg/internal/types"
)

// newROM returns a 32KiB ROM only cartridge with the program at the
// entry point.
func newROM(title string, program ...uint8) []byte {
	rom := make([]byte, cartridge.MinimumSize)
	copy(rom[0x100:], program)
	copy(rom[0x134:], title)
	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

// fillTile writes 0xFF to every byte of tile 0, turning the whole
// background black, and then loops forever.
var fillTile = []uint8{
	0x21, 0x00, 0x80, // LD HL, 0x8000
	0x0E, 0x10, // LD C, 16
	0x3E, 0xFF, // LD A, 0xFF
	0x22,       // LD (HL+), A
	0x0D,       // DEC C
	0x20, 0xFC, // JR NZ, -4
	0x18, 0xFE, // JR -2
}

func newGameBoy(t *testing.T, rom []byte, opts ...Opt) *GameBoy {
	t.Helper()
	g, err := New(rom, opts...)
	require.NoError(t, err)
	return g
}

func runFrames(t *testing.T, g *GameBoy, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := g.RunFrame()
		require.NoError(t, err)
	}
}

func TestNew(t *testing.T) {
	t.Run("post boot state", func(t *testing.T) {
		g := newGameBoy(t, newROM("POSTBOOT"))
		regs := g.Registers()
		assert.Equal(t, uint16(0x0100), regs.PC)
		assert.Equal(t, uint16(0xFFFE), regs.SP)
		assert.Equal(t, uint8(0x01), regs.A)
		assert.Equal(t, uint8(0xB0), regs.F)
		assert.Equal(t, uint8(0x91), g.ReadByte(types.LCDC))
		assert.Equal(t, uint8(0xFC), g.ReadByte(types.BGP))
		assert.Equal(t, "POSTBOOT", g.Header().Title)
	})
	t.Run("rom too small", func(t *testing.T) {
		_, err := New(make([]byte, 100))
		assert.True(t, errors.Is(err, cartridge.ErrROMTooSmall))
	})
	t.Run("unsupported cartridge", func(t *testing.T) {
		rom := newROM("MBC3")
		rom[cartridge.TypeOffset] = uint8(cartridge.MBC3)
		_, err := New(rom)
		assert.True(t, errors.Is(err, cartridge.ErrUnsupportedType))
	})
	t.Run("invalid boot rom", func(t *testing.T) {
		_, err := New(newROM("BOOT"), WithBootROM(make([]byte, 12)))
		assert.True(t, errors.Is(err, boot.ErrInvalidBootROM))
	})
}

func TestGameBoy_BootROM(t *testing.T) {
	bootROM := make([]byte, boot.Size)
	copy(bootROM, []uint8{
		0x3E, 0x01, // LD A, 1
		0xE0, 0x50, // LDH (0x50), A
	})
	rom := newROM("BOOT")
	rom[0x04], rom[0x05] = 0x18, 0xFE

	g := newGameBoy(t, rom, WithBootROM(bootROM))
	assert.Equal(t, uint16(0x0000), g.Registers().PC)
	assert.Equal(t, uint16(0x0000), g.Registers().SP)
	assert.Equal(t, uint8(0x3E), g.ReadByte(0x0000))

	g.Step()
	g.Step()
	assert.Equal(t, uint16(0x0004), g.Registers().PC)
	assert.Equal(t, uint8(0x00), g.ReadByte(0x0000))
	assert.Equal(t, uint8(0x18), g.ReadByte(0x0004))
}

func TestGameBoy_Step(t *testing.T) {
	g := newGameBoy(t, newROM("STEP", 0x3E, 0x05, 0x3C))

	cycles, err := g.StepInstruction()
	require.NoError(t, err)
	assert.Equal(t, 8, cycles)

	cycles, err = g.StepInstruction()
	require.NoError(t, err)
	assert.Equal(t, 4, cycles)

	regs := g.Registers()
	assert.Equal(t, uint8(0x06), regs.A)
	assert.Equal(t, uint16(0x0103), regs.PC)
	assert.Equal(t, uint8(0), regs.F&0x80)
	assert.Equal(t, uint64(12), g.Cycles())
}

func TestGameBoy_UndefinedOpcode(t *testing.T) {
	g := newGameBoy(t, newROM("BAD", 0x00, 0xDD))

	_, err := g.StepInstruction()
	require.NoError(t, err)

	_, err = g.StepInstruction()
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrUndefinedOpcode))

	var de *cpu.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, uint8(0xDD), de.Opcode)
	assert.Equal(t, uint16(0x0101), de.PC)

	_, err = g.RunFrame()
	assert.True(t, errors.Is(err, cpu.ErrUndefinedOpcode))
}

func TestGameBoy_RunFrame(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		g := newGameBoy(t, newROM("BLANK", 0x18, 0xFE))
		runFrames(t, g, 2)
		frame := g.Frame()
		for y := range frame {
			for x := range frame[y] {
				require.Equal(t, palette.White, frame[y][x])
			}
		}
	})
	t.Run("filled tile", func(t *testing.T) {
		g := newGameBoy(t, newROM("FILL", fillTile...))
		runFrames(t, g, 2)
		frame := g.Frame()
		for y := range frame {
			for x := range frame[y] {
				require.Equal(t, palette.Black, frame[y][x])
			}
		}
		assert.Equal(t, color.RGBA{A: 0xFF}, g.Image().RGBAAt(80, 72))
	})
	t.Run("palette", func(t *testing.T) {
		green := palette.Palettes[palette.Green]
		g := newGameBoy(t, newROM("FILL", fillTile...), WithPalette(green))
		runFrames(t, g, 2)
		assert.Equal(t, green.RGBA(palette.Black), g.Image().RGBAAt(0, 0))
	})
	t.Run("lcd off", func(t *testing.T) {
		g := newGameBoy(t, newROM("LCDOFF",
			0xAF,       // XOR A
			0xE0, 0x40, // LDH (0x40), A
			0x18, 0xFE, // JR -2
		))
		_, err := g.RunFrame()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, g.Cycles(), uint64(CyclesPerFrame))
	})
}

func TestGameBoy_Deterministic(t *testing.T) {
	hash := func(program []uint8) uint64 {
		g := newGameBoy(t, newROM("HASH", program...))
		runFrames(t, g, 3)
		return g.FrameHash()
	}

	assert.Equal(t, hash(fillTile), hash(fillTile))
	assert.NotEqual(t, hash(fillTile), hash([]uint8{0x18, 0xFE}))
}

func TestGameBoy_Serial(t *testing.T) {
	var out bytes.Buffer
	g := newGameBoy(t, newROM("SERIAL",
		0x3E, 'O', // LD A, 'O'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x3E, 'K', // LD A, 'K'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x18, 0xFE, // JR -2
	), WithSerialOutput(&out))

	runFrames(t, g, 1)
	assert.Equal(t, "OK", out.String())
}

func TestGameBoy_Joypad(t *testing.T) {
	g := newGameBoy(t, newROM("JOYPAD"))
	g.bus.Write(types.P1, 0x20) // select the direction keys

	g.Press(joypad.ButtonDown)
	assert.Equal(t, uint8(0x07), g.ReadByte(types.P1)&0x0F)
	assert.NotZero(t, g.bus.Interrupts().Flag&0x10)

	g.Release(joypad.ButtonDown)
	assert.Equal(t, uint8(0x0F), g.ReadByte(types.P1)&0x0F)
}

func TestGameBoy_Breakpoints(t *testing.T) {
	g := newGameBoy(t, newROM("BREAK", 0x00, 0x00, 0x00, 0x18, 0xFB))

	g.SetBreakpoint(0x0103)
	hit, err := g.Continue(1000)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, uint16(0x0103), g.Registers().PC)

	g.ClearBreakpoint(0x0103)
	hit, err = g.Continue(1000)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.Equal(t, []string{
		"0x0100  NOP",
		"0x0101  NOP",
		"0x0102  NOP",
		"0x0103  JR e8 ; $FB",
	}, g.Disassemble(0x0100, 4))
}

func TestGameBoy_State(t *testing.T) {
	g := newGameBoy(t, newROM("STATE", fillTile...))
	runFrames(t, g, 1)

	state, err := g.SaveState()
	require.NoError(t, err)

	runFrames(t, g, 1)
	want, wantRegs := g.FrameHash(), g.Registers()

	require.NoError(t, g.LoadState(state))
	runFrames(t, g, 1)
	assert.Equal(t, want, g.FrameHash())
	assert.Equal(t, wantRegs, g.Registers())

	t.Run("other cartridge", func(t *testing.T) {
		other := newGameBoy(t, newROM("OTHER", fillTile...))
		assert.True(t, errors.Is(other.LoadState(state), ErrStateMismatch))
	})
	t.Run("garbage", func(t *testing.T) {
		assert.True(t, errors.Is(g.LoadState([]byte("not a state")), ErrInvalidState))
	})
	t.Run("truncated", func(t *testing.T) {
		raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(state)))
		require.NoError(t, err)

		// the header and the first few CPU registers
		var buf bytes.Buffer
		w := brotli.NewWriter(&buf)
		_, err = w.Write(raw[:26])
		require.NoError(t, err)
		require.NoError(t, w.Close())

		before, hash := g.Registers(), g.FrameHash()
		assert.True(t, errors.Is(g.LoadState(buf.Bytes()), ErrInvalidState))
		assert.Equal(t, before, g.Registers())

		runFrames(t, g, 1)
		assert.Equal(t, hash, g.FrameHash())
	})
}

func TestGameBoy_Battery(t *testing.T) {
	rom := newROM("BATTERY",
		0x3E, 0x42, // LD A, 0x42
		0xEA, 0x00, 0xA0, // LD (0xA000), A
		0x18, 0xFE, // JR -2
	)
	rom[cartridge.TypeOffset] = uint8(cartridge.ROMRAMBATT)
	rom[0x149] = 0x02
	rom[0x14D] = 0
	for _, b := range rom[0x134:0x14D] {
		rom[0x14D] = rom[0x14D] - b - 1
	}

	g := newGameBoy(t, rom)
	runFrames(t, g, 1)

	ram, ok := g.BatteryRAM()
	require.True(t, ok)
	require.Len(t, ram, 8*1024)
	assert.Equal(t, uint8(0x42), ram[0])

	restored := newGameBoy(t, rom)
	require.NoError(t, restored.LoadBatteryRAM(ram))
	assert.Equal(t, uint8(0x42), restored.ReadByte(0xA000))

	plain := newGameBoy(t, newROM("PLAIN"))
	_, ok = plain.BatteryRAM()
	assert.False(t, ok)
	assert.Error(t, plain.LoadBatteryRAM(ram))
}
