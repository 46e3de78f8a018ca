package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmg/pkg/utils"
)

// ErrUndefinedOpcode is matched by every DecodeError.
var ErrUndefinedOpcode = errors.New("cpu: undefined opcode")

// DecodeError is raised when the CPU fetches an opcode it doesn't define.
type DecodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: undefined opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// Is reports whether target is ErrUndefinedOpcode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrUndefinedOpcode
}

// Decode returns the instruction encoded at the start of b. b must
// hold the CB suffix for prefixed opcodes.
func Decode(b []byte) (Instruction, error) {
	if len(b) == 0 {
		return Instruction{}, errors.New("cpu: nothing to decode")
	}
	if b[0] == 0xCB {
		if len(b) < 2 {
			return Instruction{}, errors.New("cpu: truncated CB instruction")
		}
		return InstructionSetCB[b[1]], nil
	}
	instruction := InstructionSet[b[0]]
	if instruction.Op == OpInvalid {
		return instruction, &DecodeError{Opcode: b[0]}
	}
	return instruction, nil
}

// Disassemble returns the mnemonic of the instruction at pc, with its
// immediate operand filled in, and the address of the next instruction.
func Disassemble(read func(uint16) uint8, pc uint16) (string, uint16, error) {
	opcode := read(pc)
	raw := []byte{opcode}
	if opcode == 0xCB {
		raw = append(raw, read(pc+1))
	}
	instruction, err := Decode(raw)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.PC = pc
		}
		return instruction.Name(), pc + 1, err
	}

	text := instruction.Name()
	switch instruction.Length - uint8(len(raw)) {
	case 1:
		text += fmt.Sprintf(" ; $%02X", read(pc+1))
	case 2:
		text += fmt.Sprintf(" ; $%04X", utils.BytesToUint16(read(pc+2), read(pc+1)))
	}
	return text, pc + uint16(instruction.Length), nil
}
