// Package cpu provides the SM83 processor of the Game Boy.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmg/internal/interrupts"
	"github.com/thelolagemann/dmg/internal/types"
	"github.com/thelolagemann/dmg/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// InterruptCycles is the cost of dispatching an interrupt.
	InterruptCycles = 20

	// haltCycles is the cost of a step while halted or stopped.
	haltCycles = 4
)

// Bus is the memory the CPU executes from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	// TakeStall returns and clears the cycles the CPU was stalled
	// for by the last instruction.
	TakeStall() int
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	ime       bool
	eiPending bool
	halted    bool
	stopped   bool

	bus Bus
	irq *interrupts.Service

	// operand holds the immediate value of the current instruction
	operand uint16
}

// New returns a new CPU executing from the given bus, with every
// register zeroed.
func New(bus Bus, irq *interrupts.Service) *CPU {
	c := &CPU{
		bus: bus,
		irq: irq,
	}
	c.initPairs()
	return c
}

// SkipBootROM sets the registers to the values the boot ROM leaves
// behind, so execution can start at the cartridge entry point.
func (c *CPU) SkipBootROM() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
}

// IME returns the interrupt master enable flag.
func (c *CPU) IME() bool {
	return c.ime
}

// Halted returns true if the CPU is waiting in HALT.
func (c *CPU) Halted() bool {
	return c.halted
}

// Stopped returns true if the CPU is waiting in STOP.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// Step executes a single instruction, dispatching a pending interrupt
// first, and returns the number of T-cycles that elapsed. Step panics
// with a *DecodeError when it fetches an undefined opcode.
func (c *CPU) Step() int {
	if (c.halted || c.stopped) && !c.wake() {
		return haltCycles
	}

	cycles := 0
	if c.ime && c.irq.HasInterrupts() {
		cycles += c.dispatch()
	}

	// EI takes effect after the instruction that follows it
	enableIME := c.eiPending

	instruction := c.fetch()
	cycles += int(instruction.Cycles)
	if c.execute(instruction) {
		cycles += int(instruction.CyclesTaken - instruction.Cycles)
	}
	cycles += c.bus.TakeStall()

	if enableIME && c.eiPending {
		c.ime = true
		c.eiPending = false
	}

	return cycles
}

// wake reports whether the CPU can leave HALT or STOP.
func (c *CPU) wake() bool {
	wake := c.irq.HasInterrupts()
	if c.stopped {
		wake = wake || c.irq.Flag&interrupts.JoypadFlag != 0
	}
	if wake {
		c.halted, c.stopped = false, false
	}
	return wake
}

// dispatch pushes the PC and jumps to the vector of the highest
// priority pending interrupt.
func (c *CPU) dispatch() int {
	vector, ok := c.irq.Vector()
	if !ok {
		return 0
	}
	c.ime, c.eiPending = false, false
	c.push(c.PC)
	c.PC = vector
	return InterruptCycles
}

// fetch reads the instruction at the PC along with its immediate
// operand, and advances the PC past it.
func (c *CPU) fetch() Instruction {
	pc := c.PC
	opcode := c.bus.Read(pc)
	instruction, start := InstructionSet[opcode], pc+1
	if opcode == 0xCB {
		instruction, start = InstructionSetCB[c.bus.Read(pc+1)], pc+2
	}
	if instruction.Op == OpInvalid {
		panic(&DecodeError{Opcode: opcode, PC: pc})
	}

	switch pc + uint16(instruction.Length) - start {
	case 1:
		c.operand = uint16(c.bus.Read(start))
	case 2:
		c.operand = utils.BytesToUint16(c.bus.Read(start+1), c.bus.Read(start))
	}
	c.PC = pc + uint16(instruction.Length)
	return instruction
}

// execute performs the instruction, returning true if a conditional
// instruction took its branch.
func (c *CPU) execute(i Instruction) bool {
	switch i.Op {
	case OpNOP:
	case OpLD:
		switch {
		case i.Target == MemImm16 && i.Source == RegSP:
			c.bus.Write(c.operand, uint8(c.SP))
			c.bus.Write(c.operand+1, uint8(c.SP>>8))
		case i.Target.is16():
			c.write16(i.Target, c.read16(i.Source))
		default:
			c.write8(i.Target, c.read8(i.Source))
		}
	case OpLDHL:
		c.HL.SetUint16(c.addSPSigned(uint8(c.operand)))
	case OpPUSH:
		c.push(c.read16(i.Source))
	case OpPOP:
		c.write16(i.Target, c.pop())
	case OpADD:
		switch i.Target {
		case RegHL:
			c.addHL(c.read16(i.Source))
		case RegSP:
			c.SP = c.addSPSigned(uint8(c.operand))
		default:
			c.add(c.read8(i.Source), false)
		}
	case OpADC:
		c.add(c.read8(i.Source), true)
	case OpSUB:
		c.sub(c.read8(i.Source), false)
	case OpSBC:
		c.sub(c.read8(i.Source), true)
	case OpAND:
		c.and(c.read8(i.Source))
	case OpXOR:
		c.xor(c.read8(i.Source))
	case OpOR:
		c.or(c.read8(i.Source))
	case OpCP:
		c.compare(c.read8(i.Source))
	case OpINC:
		if i.Target.is16() {
			c.write16(i.Target, c.read16(i.Target)+1)
		} else {
			c.write8(i.Target, c.increment(c.read8(i.Target)))
		}
	case OpDEC:
		if i.Target.is16() {
			c.write16(i.Target, c.read16(i.Target)-1)
		} else {
			c.write8(i.Target, c.decrement(c.read8(i.Target)))
		}

	// the accumulator rotates always reset Z
	case OpRLCA:
		c.A = c.rotateLeftCarry(c.A)
		c.clearFlag(FlagZero)
	case OpRRCA:
		c.A = c.rotateRightCarry(c.A)
		c.clearFlag(FlagZero)
	case OpRLA:
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	case OpRRA:
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)

	case OpDAA:
		c.decimalAdjust()
	case OpCPL:
		c.complement()
	case OpSCF:
		c.setCarryFlag()
	case OpCCF:
		c.complementCarryFlag()

	case OpJP:
		if !c.condition(i.Cond) {
			return false
		}
		c.PC = c.read16(i.Source)
		return true
	case OpJR:
		if !c.condition(i.Cond) {
			return false
		}
		c.PC += uint16(int16(int8(c.operand)))
		return true
	case OpCALL:
		if !c.condition(i.Cond) {
			return false
		}
		c.push(c.PC)
		c.PC = c.operand
		return true
	case OpRET:
		if !c.condition(i.Cond) {
			return false
		}
		c.PC = c.pop()
		return true
	case OpRETI:
		c.PC = c.pop()
		c.ime = true
		c.eiPending = false
	case OpRST:
		c.push(c.PC)
		c.PC = i.Vector

	case OpHALT:
		c.halted = true
	case OpSTOP:
		c.stopped = true
	case OpDI:
		c.ime = false
		c.eiPending = false
	case OpEI:
		c.eiPending = true

	case OpRLC:
		c.write8(i.Target, c.rotateLeftCarry(c.read8(i.Target)))
	case OpRRC:
		c.write8(i.Target, c.rotateRightCarry(c.read8(i.Target)))
	case OpRL:
		c.write8(i.Target, c.rotateLeftThroughCarry(c.read8(i.Target)))
	case OpRR:
		c.write8(i.Target, c.rotateRightThroughCarry(c.read8(i.Target)))
	case OpSLA:
		c.write8(i.Target, c.shiftLeftArithmetic(c.read8(i.Target)))
	case OpSRA:
		c.write8(i.Target, c.shiftRightArithmetic(c.read8(i.Target)))
	case OpSWAP:
		c.write8(i.Target, c.swap(c.read8(i.Target)))
	case OpSRL:
		c.write8(i.Target, c.shiftRightLogical(c.read8(i.Target)))
	case OpBIT:
		c.testBit(c.read8(i.Source), i.Bit)
	case OpRES:
		c.write8(i.Target, c.read8(i.Target)&^(1<<i.Bit))
	case OpSET:
		c.write8(i.Target, c.read8(i.Target)|1<<i.Bit)
	default:
		panic(fmt.Sprintf("cpu: unhandled instruction %s", i.Name()))
	}
	return false
}

// condition reports whether the flags satisfy the condition.
func (c *CPU) condition(cond Condition) bool {
	switch cond {
	case NZ:
		return !c.isFlagSet(FlagZero)
	case Z:
		return c.isFlagSet(FlagZero)
	case NC:
		return !c.isFlagSet(FlagCarry)
	case CY:
		return c.isFlagSet(FlagCarry)
	}
	return true
}

// register returns the 8-bit register selected by the operand.
func (c *CPU) register(o Operand) *Register {
	switch o {
	case RegA:
		return &c.A
	case RegB:
		return &c.B
	case RegC:
		return &c.C
	case RegD:
		return &c.D
	case RegE:
		return &c.E
	case RegH:
		return &c.H
	case RegL:
		return &c.L
	}
	return nil
}

// address returns the address of a memory operand. (HL+) and (HL-)
// update HL.
func (c *CPU) address(o Operand) uint16 {
	switch o {
	case MemBC:
		return c.BC.Uint16()
	case MemDE:
		return c.DE.Uint16()
	case MemHL:
		return c.HL.Uint16()
	case MemHLInc:
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl + 1)
		return hl
	case MemHLDec:
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl - 1)
		return hl
	case MemImm16:
		return c.operand
	case MemHighC:
		return 0xFF00 | uint16(c.C)
	case MemHighImm8:
		return 0xFF00 | c.operand&0xFF
	}
	panic(fmt.Sprintf("cpu: %v is not a memory operand", o))
}

func (c *CPU) read8(o Operand) uint8 {
	if r := c.register(o); r != nil {
		return *r
	}
	if o == Imm8 || o == Signed8 {
		return uint8(c.operand)
	}
	return c.bus.Read(c.address(o))
}

func (c *CPU) write8(o Operand, value uint8) {
	if r := c.register(o); r != nil {
		*r = value
		return
	}
	c.bus.Write(c.address(o), value)
}

// pair returns the register pair selected by the operand.
func (c *CPU) pair(o Operand) *RegisterPair {
	switch o {
	case RegAF:
		return c.AF
	case RegBC:
		return c.BC
	case RegDE:
		return c.DE
	case RegHL:
		return c.HL
	}
	panic(fmt.Sprintf("cpu: %v is not a register pair", o))
}

func (c *CPU) read16(o Operand) uint16 {
	switch o {
	case RegSP:
		return c.SP
	case Imm16:
		return c.operand
	}
	return c.pair(o).Uint16()
}

func (c *CPU) write16(o Operand, value uint16) {
	if o == RegSP {
		c.SP = value
		return
	}
	c.pair(o).SetUint16(value)
}

// push writes value to the stack, high byte first.
func (c *CPU) push(value uint16) {
	high, low := utils.Uint16ToBytes(value)
	c.SP--
	c.bus.Write(c.SP, high)
	c.SP--
	c.bus.Write(c.SP, low)
}

// pop reads a value from the stack.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return utils.BytesToUint16(high, low)
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - A, F, B, C, D, E, H, L (uint8)
//   - SP, PC (uint16)
//   - IME, pending EI, halted, stopped (bool)
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.ime = s.ReadBool()
	c.eiPending = s.ReadBool()
	c.halted = s.ReadBool()
	c.stopped = s.ReadBool()
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.ime)
	s.WriteBool(c.eiPending)
	s.WriteBool(c.halted)
	s.WriteBool(c.stopped)
}
