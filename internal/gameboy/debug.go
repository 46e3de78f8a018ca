package gameboy

import (
	"fmt"

	"github.com/thelolagemann/dmg/internal/cpu"
)

// Registers is a snapshot of the CPU registers.
type Registers struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	Halted                 bool
}

func (r Registers) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)
}

// Registers returns a snapshot of the CPU registers.
func (g *GameBoy) Registers() Registers {
	c := g.CPU
	return Registers{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP:     c.SP,
		PC:     c.PC,
		IME:    c.IME(),
		Halted: c.Halted() || c.Stopped(),
	}
}

// ReadByte returns the value at the given address, as the CPU would
// read it.
func (g *GameBoy) ReadByte(address uint16) uint8 {
	return g.bus.Read(address)
}

// SetBreakpoint stops Continue when the PC reaches the address.
func (g *GameBoy) SetBreakpoint(address uint16) {
	g.breakpoints[address] = struct{}{}
}

// ClearBreakpoint removes the breakpoint at the address.
func (g *GameBoy) ClearBreakpoint(address uint16) {
	delete(g.breakpoints, address)
}

// StepInstruction executes a single instruction, returning its cost.
// An undefined opcode is returned as a *cpu.DecodeError.
func (g *GameBoy) StepInstruction() (cycles int, err error) {
	defer recoverDecodeError(&err)
	return g.Step(), nil
}

// Continue runs until the PC reaches a breakpoint, or at least
// maxCycles T-cycles elapsed. It returns true when a breakpoint
// was hit.
func (g *GameBoy) Continue(maxCycles int) (hit bool, err error) {
	defer recoverDecodeError(&err)

	for elapsed := 0; elapsed < maxCycles; {
		elapsed += g.Step()
		if _, ok := g.breakpoints[g.CPU.PC]; ok {
			g.Debugf("breakpoint at 0x%04X", g.CPU.PC)
			return true, nil
		}
	}
	return false, nil
}

// Disassemble returns the mnemonics of count instructions, starting
// at the given address. Undefined opcodes are listed by name.
func (g *GameBoy) Disassemble(address uint16, count int) []string {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, next, err := cpu.Disassemble(g.bus.Read, address)
		if err != nil {
			g.Debugf("disassemble: %v", err)
		}
		lines = append(lines, fmt.Sprintf("0x%04X  %s", address, text))
		address = next
	}
	return lines
}
