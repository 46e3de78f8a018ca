package gameboy

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/thelolagemann/dmg/internal/ppu"
	"github.com/thelolagemann/dmg/internal/types"
)

const (
	stateMagic   = 0x534D4744 // "DGMS"
	stateVersion = 1
)

var (
	// ErrInvalidState is returned when the data isn't a save state.
	ErrInvalidState = errors.New("gameboy: invalid save state")
	// ErrStateMismatch is returned when a save state was made with a
	// different cartridge.
	ErrStateMismatch = errors.New("gameboy: save state belongs to another cartridge")
)

// SaveState returns the state of the GameBoy, brotli compressed.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := types.NewState()
	s.Write32(stateMagic)
	s.Write8(stateVersion)
	s.Write8(g.Header().HeaderChecksum)
	s.WriteData([]byte(fmt.Sprintf("%-16s", g.Header().Title)))

	g.CPU.Save(s)
	g.bus.Save(s)

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(s.Bytes()); err != nil {
		return nil, fmt.Errorf("gameboy: compress state: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gameboy: compress state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a state made by SaveState. The state must have
// been saved with the same cartridge.
func (g *GameBoy) LoadState(data []byte) error {
	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	s := types.StateFromBytes(raw)
	if s.Read32() != stateMagic || s.Read8() != stateVersion {
		return ErrInvalidState
	}
	title := make([]byte, 16)
	checksum := s.Read8()
	s.ReadData(title)
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if checksum != g.Header().HeaderChecksum || string(title) != fmt.Sprintf("%-16s", g.Header().Title) {
		return ErrStateMismatch
	}

	// a truncated state rolls the machine back to where it was
	previous := types.NewState()
	g.CPU.Save(previous)
	g.bus.Save(previous)

	g.CPU.Load(s)
	g.bus.Load(s)
	if err := s.Err(); err != nil {
		g.CPU.Load(previous)
		g.bus.Load(previous)
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	// the frame buffer isn't part of the state
	g.frame = ppu.Frame{}
	return nil
}
