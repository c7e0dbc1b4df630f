package m6502

import (
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// UnknownMnemonic is the mnemonic of opcodes that are not documented 6502 instructions.
const UnknownMnemonic = "unknown"

// Opcode describes the instruction selected by an opcode byte.
type Opcode struct {
	Mnemonic   string
	Addressing AddressingMode
	Size       int
}

// Known returns whether the opcode is a documented instruction.
func (o Opcode) Known() bool {
	return o.Addressing != UnknownAddressing
}

var unknownOpcode = Opcode{
	Mnemonic:   UnknownMnemonic,
	Addressing: UnknownAddressing,
	Size:       1,
}

// Opcodes maps every byte value to its opcode. Bytes that are not a documented
// instruction map to an unknown opcode of size 1. Disassembly continues at the
// following byte, which can lose synchronization with the real instruction stream.
var Opcodes = newOpcodeTable()

var cpuAddressing = map[cpu6502.AddressingMode]AddressingMode{
	cpu6502.ImpliedAddressing:     ImpliedAddressing,
	cpu6502.AccumulatorAddressing: AccumulatorAddressing,
	cpu6502.ImmediateAddressing:   ImmediateAddressing,
	cpu6502.ZeroPageAddressing:    ZeroPageAddressing,
	cpu6502.ZeroPageXAddressing:   ZeroPageXAddressing,
	cpu6502.ZeroPageYAddressing:   ZeroPageYAddressing,
	cpu6502.AbsoluteAddressing:    AbsoluteAddressing,
	cpu6502.AbsoluteXAddressing:   AbsoluteXAddressing,
	cpu6502.AbsoluteYAddressing:   AbsoluteYAddressing,
	cpu6502.IndirectAddressing:    IndirectAddressing,
	cpu6502.IndirectXAddressing:   IndirectXAddressing,
	cpu6502.IndirectYAddressing:   IndirectYAddressing,
	cpu6502.RelativeAddressing:    RelativeAddressing,
}

// newOpcodeTable converts the NMOS 6502 opcode table of retrogolib, keeping
// only the documented instructions.
func newOpcodeTable() [256]Opcode {
	var table [256]Opcode
	for i, op := range cpu6502.Opcodes {
		table[i] = convertOpcode(op)
	}
	return table
}

func convertOpcode(op cpu6502.Opcode) Opcode {
	ins := op.Instruction
	// KIL is not flagged as unofficial
	if ins == nil || ins.Unofficial || ins.Name == cpu6502.KilName {
		return unknownOpcode
	}

	addressing, ok := cpuAddressing[op.Addressing]
	if !ok {
		return unknownOpcode
	}

	return Opcode{
		Mnemonic:   strings.ToUpper(ins.Name),
		Addressing: addressing,
		Size:       addressing.Size(),
	}
}
