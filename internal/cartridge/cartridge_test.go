package cartridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmg/internal/types"
)

// newROM returns a ROM of the given number of banks, where every
// byte of a bank holds the bank number.
func newROM(banks int, cartType Type, ramCode uint8) []byte {
	rom := make([]byte, banks*0x4000)
	for i := range rom {
		rom[i] = uint8(i / 0x4000)
	}
	copy(rom[0x134:], "TESTROM")
	rom[TypeOffset] = uint8(cartType)
	code := uint8(0)
	for (32*1024)<<code < len(rom) {
		code++
	}
	rom[0x148] = code
	rom[0x149] = ramCode
	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestHeader(t *testing.T) {
	rom := newROM(4, MBC1RAM, 0x03)
	h := parseHeader(rom[0x100:0x150])

	assert.Equal(t, "TESTROM", h.Title)
	assert.Equal(t, MBC1RAM, h.CartridgeType)
	assert.Equal(t, uint(64*1024), h.ROMSize)
	assert.Equal(t, uint(32*1024), h.RAMSize)
	assert.Equal(t, 4, h.Banks())
	assert.True(t, h.ChecksumValid())

	rom[0x14D]++
	assert.False(t, parseHeader(rom[0x100:0x150]).ChecksumValid())
}

func TestNew_Validation(t *testing.T) {
	t.Run("too small", func(t *testing.T) {
		_, err := New(make([]byte, 0x100))
		assert.ErrorIs(t, err, ErrROMTooSmall)
	})
	t.Run("unsupported type", func(t *testing.T) {
		_, err := New(newROM(2, MBC3, 0))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
	t.Run("size mismatch", func(t *testing.T) {
		rom := newROM(2, ROM, 0)
		rom[0x148] = 0x02
		_, err := New(rom)
		assert.ErrorIs(t, err, ErrROMSizeMismatch)
	})
	t.Run("every problem is reported", func(t *testing.T) {
		rom := newROM(2, MBC5, 0)
		rom[0x148] = 0x05
		_, err := New(rom)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedType))
		assert.True(t, errors.Is(err, ErrROMSizeMismatch))
	})
	t.Run("rom only", func(t *testing.T) {
		c, err := New(newROM(2, ROM, 0))
		require.NoError(t, err)
		assert.IsType(t, &ROMCartridge{}, c)
	})
	t.Run("mbc1", func(t *testing.T) {
		c, err := New(newROM(8, MBC1, 0))
		require.NoError(t, err)
		assert.IsType(t, &MemoryBankedCartridge1{}, c)
	})
}

func TestROMCartridge(t *testing.T) {
	t.Run("without ram", func(t *testing.T) {
		c := NewROMCartridge(newROM(2, ROM, 0), Header{CartridgeType: ROM})
		assert.Equal(t, uint8(0), c.Read(0x0000))
		assert.Equal(t, uint8(1), c.Read(0x4000))

		c.Write(0x4000, 0x55)
		assert.Equal(t, uint8(1), c.Read(0x4000))

		c.Write(0xA000, 0x12)
		assert.Equal(t, uint8(0xFF), c.Read(0xA000))
	})
	t.Run("with ram", func(t *testing.T) {
		c := NewROMCartridge(newROM(2, ROMRAM, 0x02), Header{CartridgeType: ROMRAM, RAMSize: 8 * 1024})
		c.Write(0xA123, 0x12)
		assert.Equal(t, uint8(0x12), c.Read(0xA123))
	})
}

func newMBC1(t *testing.T, banks int, cartType Type, ramCode uint8) *MemoryBankedCartridge1 {
	t.Helper()
	c, err := New(newROM(banks, cartType, ramCode))
	require.NoError(t, err)
	return c.(*MemoryBankedCartridge1)
}

func TestMBC1_ROMBanking(t *testing.T) {
	m := newMBC1(t, 64, MBC1, 0)

	// bank 1 is mapped at power on
	assert.Equal(t, uint8(0), m.Read(0x0000))
	assert.Equal(t, uint8(1), m.Read(0x4000))

	tests := []struct {
		name  string
		value uint8
		bank  uint8
	}{
		{"bank 2", 0x02, 2},
		{"bank 0 maps to 1", 0x00, 1},
		{"bank 31", 0x1F, 31},
		{"upper bits ignored", 0xE3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Write(0x2000, tt.value)
			assert.Equal(t, tt.bank, m.BankState().ROMBank)
			assert.Equal(t, tt.bank, m.Read(0x4000))
			assert.Equal(t, tt.bank, m.Read(0x7FFF))
		})
	}

	t.Run("upper bits", func(t *testing.T) {
		m.Write(0x2000, 0x01)
		m.Write(0x4000, 0x01)
		assert.Equal(t, uint8(0x21), m.BankState().ROMBank)
		assert.Equal(t, uint8(0x21), m.Read(0x4000))
	})
	t.Run("0x20 maps to 0x21", func(t *testing.T) {
		m.Write(0x2000, 0x00)
		assert.Equal(t, uint8(0x21), m.BankState().ROMBank)
	})
}

func TestMBC1_BankMasking(t *testing.T) {
	m := newMBC1(t, 4, MBC1, 0)
	m.Write(0x2000, 0x06)
	assert.Equal(t, uint8(2), m.Read(0x4000))
}

func TestMBC1_RAM(t *testing.T) {
	m := newMBC1(t, 4, MBC1RAM, 0x03)

	// disabled RAM reads 0xFF and ignores writes
	m.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0xFF), m.Read(0xA000))

	m.Write(0x0000, 0x0A)
	assert.True(t, m.BankState().RAMEnabled)
	m.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xA000))

	// switch to RAM banking and select bank 2
	m.Write(0x6000, 0x01)
	m.Write(0x4000, 0x02)
	assert.Equal(t, RAMBankingMode, m.BankState().Mode)
	assert.Equal(t, uint8(2), m.BankState().RAMBank)
	assert.Equal(t, uint8(0x00), m.Read(0xA000))
	m.Write(0xA000, 0x24)
	assert.Equal(t, uint8(0x24), m.Read(0xA000))

	// back in ROM banking mode, bank 0 is mapped
	m.Write(0x6000, 0x00)
	assert.Equal(t, uint8(0x42), m.Read(0xA000))

	// any value other than 0x0A disables RAM
	m.Write(0x1FFF, 0x0B)
	assert.False(t, m.BankState().RAMEnabled)
	assert.Equal(t, uint8(0xFF), m.Read(0xA000))
}

func TestMBC1_NoRAMNeverEnables(t *testing.T) {
	m := newMBC1(t, 4, MBC1, 0)
	m.Write(0x0000, 0x0A)
	assert.False(t, m.BankState().RAMEnabled)
	assert.Equal(t, uint8(0xFF), m.Read(0xA000))
}

func TestMBC1_State(t *testing.T) {
	m := newMBC1(t, 8, MBC1RAMBATT, 0x02)
	m.Write(0x0000, 0x0A)
	m.Write(0x2000, 0x05)
	m.Write(0xA010, 0x99)

	s := types.NewState()
	m.Save(s)

	restored := newMBC1(t, 8, MBC1RAMBATT, 0x02)
	restored.Load(s)
	require.NoError(t, s.Err())

	assert.Equal(t, m.BankState(), restored.BankState())
	assert.Equal(t, uint8(0x99), restored.Read(0xA010))
	assert.Equal(t, uint8(5), restored.Read(0x4000))
}

func TestBattery(t *testing.T) {
	assert.True(t, MBC1RAMBATT.HasBattery())
	assert.True(t, ROMRAMBATT.HasBattery())
	assert.False(t, MBC1RAM.HasBattery())

	c := newMBC1(t, 4, MBC1RAMBATT, 0x02)
	c.Write(0x0000, 0x0A)
	c.Write(0xA010, 0x99)

	var battery Battery = c
	saved := append([]byte(nil), battery.RAM()...)
	assert.Equal(t, uint8(0x99), saved[0x10])

	restored := newMBC1(t, 4, MBC1RAMBATT, 0x02)
	require.NoError(t, restored.LoadRAM(saved))
	assert.Equal(t, saved, restored.RAM())

	err := restored.LoadRAM(make([]byte, 3))
	assert.True(t, errors.Is(err, ErrRAMSizeMismatch))
}
