package cpu

// InstructionSetCB holds the instructions of the opcodes prefixed
// with 0xCB. The cost includes the prefix.
var InstructionSetCB [256]Instruction

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, instruction Instruction) {
	InstructionSetCB[opcode] = finalise(instruction, 2)
}

var rotateOps = [8]Op{OpRLC, OpRRC, OpRL, OpRR, OpSLA, OpSRA, OpSWAP, OpSRL}

func init() {
	for opcode := 0; opcode < 0x100; opcode++ {
		r := registers8[opcode&7]
		group, y := opcode>>6, uint8(opcode>>3&7)

		switch group {
		case 0:
			DefineInstructionCB(uint8(opcode), Instruction{Op: rotateOps[y], Target: r, Cycles: cost(cost(8, r), r)})
		case 1:
			// BIT only reads (HL)
			DefineInstructionCB(uint8(opcode), Instruction{Op: OpBIT, Bit: y, Source: r, Cycles: cost(8, r)})
		case 2:
			DefineInstructionCB(uint8(opcode), Instruction{Op: OpRES, Bit: y, Target: r, Cycles: cost(cost(8, r), r)})
		case 3:
			DefineInstructionCB(uint8(opcode), Instruction{Op: OpSET, Bit: y, Target: r, Cycles: cost(cost(8, r), r)})
		}
	}
}
