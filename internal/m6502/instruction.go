package m6502

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction of a code buffer.
type Instruction struct {
	Offset     int    // offset in the code buffer
	Address    uint16 // base address of the code buffer plus offset
	Opcode     byte
	Mnemonic   string
	Addressing AddressingMode
	Operand    uint16 // little endian value of the operand bytes
	Size       int    // number of bytes including the opcode

	// Partial is set for an instruction cut off at the end of the disassembled range,
	// Size then only counts the available bytes.
	Partial bool
}

// Known returns whether the opcode is a documented instruction.
func (i Instruction) Known() bool {
	return i.Addressing != UnknownAddressing
}

// HasOperand returns whether the instruction has operand bytes.
func (i Instruction) HasOperand() bool {
	return i.Size > 1
}

// Bytes returns the encoded bytes of the instruction.
func (i Instruction) Bytes() []byte {
	b := []byte{i.Opcode, byte(i.Operand), byte(i.Operand >> 8)}
	return b[:i.Size]
}

// OperandString returns the operand as hex value padded to the operand width.
func (i Instruction) OperandString() string {
	switch i.Size {
	case 2:
		return fmt.Sprintf("$%02X", i.Operand)
	case 3:
		return fmt.Sprintf("$%04X", i.Operand)
	default:
		return ""
	}
}

// BranchTarget returns the destination address of a relative branch.
func (i Instruction) BranchTarget() (uint16, bool) {
	if i.Addressing != RelativeAddressing || i.Partial {
		return 0, false
	}
	offset := int8(uint8(i.Operand))
	return i.Address + uint16(i.Size) + uint16(offset), true
}

func (i Instruction) String() string {
	s := fmt.Sprintf("%-3s (%-4s) %s", i.Mnemonic, i.Addressing, i.OperandString())
	return strings.TrimRight(s, " ")
}
