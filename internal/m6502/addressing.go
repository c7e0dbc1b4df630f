// Package m6502 implements a linear disassembler for the 6502 instruction set.
package m6502

// AddressingMode defines the operand addressing of an opcode.
type AddressingMode uint8

const (
	UnknownAddressing AddressingMode = iota
	ImpliedAddressing
	AccumulatorAddressing
	ImmediateAddressing
	ZeroPageAddressing
	ZeroPageXAddressing
	ZeroPageYAddressing
	AbsoluteAddressing
	AbsoluteXAddressing
	AbsoluteYAddressing
	IndirectAddressing
	IndirectXAddressing
	IndirectYAddressing
	RelativeAddressing
)

var addressingNames = [...]string{
	UnknownAddressing:     "unknown",
	ImpliedAddressing:     "IMP",
	AccumulatorAddressing: "ACC",
	ImmediateAddressing:   "IMM",
	ZeroPageAddressing:    "ZP",
	ZeroPageXAddressing:   "ZPX",
	ZeroPageYAddressing:   "ZPY",
	AbsoluteAddressing:    "ABS",
	AbsoluteXAddressing:   "ABSX",
	AbsoluteYAddressing:   "ABSY",
	IndirectAddressing:    "IND",
	IndirectXAddressing:   "INDX",
	IndirectYAddressing:   "INDY",
	RelativeAddressing:    "REL",
}

// String returns the short name of the addressing mode.
func (m AddressingMode) String() string {
	if int(m) < len(addressingNames) {
		return addressingNames[m]
	}
	return addressingNames[UnknownAddressing]
}

// Size returns the size in bytes of an instruction using the addressing mode,
// including the opcode byte.
func (m AddressingMode) Size() int {
	switch m {
	case ImmediateAddressing, ZeroPageAddressing, ZeroPageXAddressing, ZeroPageYAddressing,
		IndirectXAddressing, IndirectYAddressing, RelativeAddressing:
		return 2
	case AbsoluteAddressing, AbsoluteXAddressing, AbsoluteYAddressing, IndirectAddressing:
		return 3
	default:
		return 1
	}
}
