package cpu

import (
	"fmt"
)

// Op is the kind of operation an Instruction performs.
type Op uint8

const (
	// OpInvalid marks the opcodes the CPU doesn't define.
	OpInvalid Op = iota
	OpNOP
	OpLD
	OpLDHL // LD HL, SP+e8
	OpPUSH
	OpPOP
	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpXOR
	OpOR
	OpCP
	OpINC
	OpDEC
	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpDAA
	OpCPL
	OpSCF
	OpCCF
	OpJP
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST
	OpHALT
	OpSTOP
	OpDI
	OpEI
	OpPrefixCB

	// CB prefixed
	OpRLC
	OpRRC
	OpRL
	OpRR
	OpSLA
	OpSRA
	OpSWAP
	OpSRL
	OpBIT
	OpRES
	OpSET
)

var opNames = [...]string{
	OpInvalid:  "INVALID",
	OpNOP:      "NOP",
	OpLD:       "LD",
	OpLDHL:     "LD",
	OpPUSH:     "PUSH",
	OpPOP:      "POP",
	OpADD:      "ADD",
	OpADC:      "ADC",
	OpSUB:      "SUB",
	OpSBC:      "SBC",
	OpAND:      "AND",
	OpXOR:      "XOR",
	OpOR:       "OR",
	OpCP:       "CP",
	OpINC:      "INC",
	OpDEC:      "DEC",
	OpRLCA:     "RLCA",
	OpRRCA:     "RRCA",
	OpRLA:      "RLA",
	OpRRA:      "RRA",
	OpDAA:      "DAA",
	OpCPL:      "CPL",
	OpSCF:      "SCF",
	OpCCF:      "CCF",
	OpJP:       "JP",
	OpJR:       "JR",
	OpCALL:     "CALL",
	OpRET:      "RET",
	OpRETI:     "RETI",
	OpRST:      "RST",
	OpHALT:     "HALT",
	OpSTOP:     "STOP",
	OpDI:       "DI",
	OpEI:       "EI",
	OpPrefixCB: "PREFIX CB",
	OpRLC:      "RLC",
	OpRRC:      "RRC",
	OpRL:       "RL",
	OpRR:       "RR",
	OpSLA:      "SLA",
	OpSRA:      "SRA",
	OpSWAP:     "SWAP",
	OpSRL:      "SRL",
	OpBIT:      "BIT",
	OpRES:      "RES",
	OpSET:      "SET",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Operand selects where an instruction reads or writes its value.
type Operand uint8

const (
	None Operand = iota

	// 8-bit registers
	RegA
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL

	// 16-bit registers
	RegAF
	RegBC
	RegDE
	RegHL
	RegSP

	// immediate values, following the opcode
	Imm8    // d8
	Imm16   // d16 or a16
	Signed8 // e8, sign extended

	// memory
	MemBC       // (BC)
	MemDE       // (DE)
	MemHL       // (HL)
	MemHLInc    // (HL+), HL is incremented after the access
	MemHLDec    // (HL-), HL is decremented after the access
	MemImm16    // (a16)
	MemHighC    // (0xFF00+C)
	MemHighImm8 // (0xFF00+a8)
)

var operandNames = [...]string{
	None:        "",
	RegA:        "A",
	RegB:        "B",
	RegC:        "C",
	RegD:        "D",
	RegE:        "E",
	RegH:        "H",
	RegL:        "L",
	RegAF:       "AF",
	RegBC:       "BC",
	RegDE:       "DE",
	RegHL:       "HL",
	RegSP:       "SP",
	Imm8:        "d8",
	Imm16:       "d16",
	Signed8:     "e8",
	MemBC:       "(BC)",
	MemDE:       "(DE)",
	MemHL:       "(HL)",
	MemHLInc:    "(HL+)",
	MemHLDec:    "(HL-)",
	MemImm16:    "(a16)",
	MemHighC:    "(C)",
	MemHighImm8: "(a8)",
}

func (o Operand) String() string {
	return operandNames[o]
}

// is16 reports whether the operand is a 16-bit value.
func (o Operand) is16() bool {
	return o >= RegAF && o <= RegSP || o == Imm16
}

// immediateLength returns the number of bytes the operand takes
// after the opcode.
func (o Operand) immediateLength() uint8 {
	switch o {
	case Imm8, Signed8, MemHighImm8:
		return 1
	case Imm16, MemImm16:
		return 2
	}
	return 0
}

// Condition is the flag condition of a conditional jump, call or return.
type Condition uint8

const (
	Always Condition = iota
	NZ
	Z
	NC
	CY
)

var conditionNames = [...]string{"", "NZ", "Z", "NC", "C"}

func (c Condition) String() string {
	return conditionNames[c]
}

// Instruction describes a single opcode of the CPU. Cycles are in
// T-cycles, CyclesTaken is the cost of a conditional instruction
// when its condition holds.
type Instruction struct {
	Op     Op
	Target Operand
	Source Operand
	Cond   Condition
	Bit    uint8  // BIT, RES and SET
	Vector uint16 // RST

	Length      uint8
	Cycles      uint8
	CyclesTaken uint8

	name string
}

// Name returns the mnemonic of the instruction, e.g. "LD A, d8".
func (i Instruction) Name() string {
	return i.name
}

// Conditional reports whether the cost of the instruction depends on
// its condition.
func (i Instruction) Conditional() bool {
	return i.Cond != Always
}

// InstructionSet holds the instructions of the unprefixed opcodes.
var InstructionSet [256]Instruction

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode. The length and mnemonic are derived from the
// operands.
func DefineInstruction(opcode uint8, instruction Instruction) {
	InstructionSet[opcode] = finalise(instruction, 1)
}

// finalise derives the length and mnemonic of the instruction.
func finalise(i Instruction, opcodeLength uint8) Instruction {
	i.Length = opcodeLength + i.Target.immediateLength() + i.Source.immediateLength()
	if i.CyclesTaken == 0 {
		i.CyclesTaken = i.Cycles
	}

	name := i.Op.String()
	var args []string
	switch i.Op {
	case OpBIT, OpRES, OpSET:
		args = append(args, fmt.Sprint(i.Bit))
	case OpRST:
		args = append(args, fmt.Sprintf("%02XH", i.Vector))
	case OpLDHL:
		i.name = name + " HL, SP+e8"
		return i
	}
	if i.Cond != Always {
		args = append(args, i.Cond.String())
	}
	if i.Target != None {
		args = append(args, i.Target.String())
	}
	if i.Source != None {
		args = append(args, i.Source.String())
	}
	for n, a := range args {
		if n == 0 {
			name += " " + a
		} else {
			name += ", " + a
		}
	}
	i.name = name
	return i
}

var (
	registers8  = [8]Operand{RegB, RegC, RegD, RegE, RegH, RegL, MemHL, RegA}
	registers16 = [4]Operand{RegBC, RegDE, RegHL, RegSP}
	stack16     = [4]Operand{RegBC, RegDE, RegHL, RegAF}
	conditions  = [4]Condition{NZ, Z, NC, CY}
	aluOps      = [8]Op{OpADD, OpADC, OpSUB, OpSBC, OpAND, OpXOR, OpOR, OpCP}
)

// cost returns the cost of an instruction that accesses the given
// operand, which is one M-cycle more when it is (HL).
func cost(base uint8, o Operand) uint8 {
	if o == MemHL {
		return base + 4
	}
	return base
}

func init() {
	DefineInstruction(0x00, Instruction{Op: OpNOP, Cycles: 4})
	DefineInstruction(0x08, Instruction{Op: OpLD, Target: MemImm16, Source: RegSP, Cycles: 20})
	DefineInstruction(0x10, Instruction{Op: OpSTOP, Source: Imm8, Cycles: 4})
	DefineInstruction(0x18, Instruction{Op: OpJR, Source: Signed8, Cycles: 12})

	// LD (BC), A / LD A, (BC) ...
	indirect := [4]Operand{MemBC, MemDE, MemHLInc, MemHLDec}
	for i := uint8(0); i < 4; i++ {
		rr := registers16[i]
		DefineInstruction(i<<4|0x01, Instruction{Op: OpLD, Target: rr, Source: Imm16, Cycles: 12})
		DefineInstruction(i<<4|0x02, Instruction{Op: OpLD, Target: indirect[i], Source: RegA, Cycles: 8})
		DefineInstruction(i<<4|0x03, Instruction{Op: OpINC, Target: rr, Cycles: 8})
		DefineInstruction(i<<4|0x09, Instruction{Op: OpADD, Target: RegHL, Source: rr, Cycles: 8})
		DefineInstruction(i<<4|0x0A, Instruction{Op: OpLD, Target: RegA, Source: indirect[i], Cycles: 8})
		DefineInstruction(i<<4|0x0B, Instruction{Op: OpDEC, Target: rr, Cycles: 8})

		// JR cc, e8
		DefineInstruction(0x20+i<<3, Instruction{Op: OpJR, Cond: conditions[i], Source: Signed8, Cycles: 8, CyclesTaken: 12})
	}

	// INC r / DEC r / LD r, d8
	for i := uint8(0); i < 8; i++ {
		r := registers8[i]
		incDec := uint8(4)
		if r == MemHL {
			incDec = 12
		}
		DefineInstruction(i<<3|0x04, Instruction{Op: OpINC, Target: r, Cycles: incDec})
		DefineInstruction(i<<3|0x05, Instruction{Op: OpDEC, Target: r, Cycles: incDec})
		DefineInstruction(i<<3|0x06, Instruction{Op: OpLD, Target: r, Source: Imm8, Cycles: cost(8, r)})
	}

	DefineInstruction(0x07, Instruction{Op: OpRLCA, Cycles: 4})
	DefineInstruction(0x0F, Instruction{Op: OpRRCA, Cycles: 4})
	DefineInstruction(0x17, Instruction{Op: OpRLA, Cycles: 4})
	DefineInstruction(0x1F, Instruction{Op: OpRRA, Cycles: 4})
	DefineInstruction(0x27, Instruction{Op: OpDAA, Cycles: 4})
	DefineInstruction(0x2F, Instruction{Op: OpCPL, Cycles: 4})
	DefineInstruction(0x37, Instruction{Op: OpSCF, Cycles: 4})
	DefineInstruction(0x3F, Instruction{Op: OpCCF, Cycles: 4})

	// 0x40 - 0x7F LD r, r
	for opcode := 0x40; opcode < 0x80; opcode++ {
		target, source := registers8[opcode>>3&7], registers8[opcode&7]
		if target == MemHL && source == MemHL {
			DefineInstruction(uint8(opcode), Instruction{Op: OpHALT, Cycles: 4})
			continue
		}
		DefineInstruction(uint8(opcode), Instruction{Op: OpLD, Target: target, Source: source, Cycles: cost(cost(4, target), source)})
	}

	// 0x80 - 0xBF ALU A, r and 0xC6 - 0xFE ALU A, d8
	for i := uint8(0); i < 8; i++ {
		for j := uint8(0); j < 8; j++ {
			DefineInstruction(0x80|i<<3|j, Instruction{Op: aluOps[i], Target: RegA, Source: registers8[j], Cycles: cost(4, registers8[j])})
		}
		DefineInstruction(0xC6|i<<3, Instruction{Op: aluOps[i], Target: RegA, Source: Imm8, Cycles: 8})
		DefineInstruction(0xC7|i<<3, Instruction{Op: OpRST, Vector: uint16(i) << 3, Cycles: 16})
	}

	for i := uint8(0); i < 4; i++ {
		DefineInstruction(0xC0|i<<3, Instruction{Op: OpRET, Cond: conditions[i], Cycles: 8, CyclesTaken: 20})
		DefineInstruction(0xC2|i<<3, Instruction{Op: OpJP, Cond: conditions[i], Source: Imm16, Cycles: 12, CyclesTaken: 16})
		DefineInstruction(0xC4|i<<3, Instruction{Op: OpCALL, Cond: conditions[i], Source: Imm16, Cycles: 12, CyclesTaken: 24})
		DefineInstruction(0xC1|i<<4, Instruction{Op: OpPOP, Target: stack16[i], Cycles: 12})
		DefineInstruction(0xC5|i<<4, Instruction{Op: OpPUSH, Source: stack16[i], Cycles: 16})
	}

	DefineInstruction(0xC3, Instruction{Op: OpJP, Source: Imm16, Cycles: 16})
	DefineInstruction(0xC9, Instruction{Op: OpRET, Cycles: 16})
	DefineInstruction(0xCB, Instruction{Op: OpPrefixCB, Cycles: 4})
	DefineInstruction(0xCD, Instruction{Op: OpCALL, Source: Imm16, Cycles: 24})
	DefineInstruction(0xD9, Instruction{Op: OpRETI, Cycles: 16})
	DefineInstruction(0xE0, Instruction{Op: OpLD, Target: MemHighImm8, Source: RegA, Cycles: 12})
	DefineInstruction(0xE2, Instruction{Op: OpLD, Target: MemHighC, Source: RegA, Cycles: 8})
	DefineInstruction(0xE8, Instruction{Op: OpADD, Target: RegSP, Source: Signed8, Cycles: 16})
	DefineInstruction(0xE9, Instruction{Op: OpJP, Source: RegHL, Cycles: 4})
	DefineInstruction(0xEA, Instruction{Op: OpLD, Target: MemImm16, Source: RegA, Cycles: 16})
	DefineInstruction(0xF0, Instruction{Op: OpLD, Target: RegA, Source: MemHighImm8, Cycles: 12})
	DefineInstruction(0xF2, Instruction{Op: OpLD, Target: RegA, Source: MemHighC, Cycles: 8})
	DefineInstruction(0xF3, Instruction{Op: OpDI, Cycles: 4})
	DefineInstruction(0xF8, Instruction{Op: OpLDHL, Source: Signed8, Cycles: 12})
	DefineInstruction(0xF9, Instruction{Op: OpLD, Target: RegSP, Source: RegHL, Cycles: 8})
	DefineInstruction(0xFA, Instruction{Op: OpLD, Target: RegA, Source: MemImm16, Cycles: 16})
	DefineInstruction(0xFB, Instruction{Op: OpEI, Cycles: 4})

	// the remaining opcodes are undefined
	for opcode := range InstructionSet {
		if InstructionSet[opcode].Op == OpInvalid {
			InstructionSet[opcode] = Instruction{Length: 1, name: fmt.Sprintf("INVALID 0x%02X", opcode)}
		}
	}
}
