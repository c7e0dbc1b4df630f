package m6502

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncatedInstruction is returned when the operand bytes of the last instruction
	// exceed the disassembled range.
	ErrTruncatedInstruction = errors.New("truncated instruction")
	// ErrInvalidRange is returned for range bounds outside of the code buffer.
	ErrInvalidRange = errors.New("invalid disassembly range")
)

type settings struct {
	low, high int
	rangeSet  bool
	partial   bool
}

// Option configures a disassembler.
type Option func(*settings)

// WithRange limits the disassembly to the code buffer offsets [low, high).
func WithRange(low, high int) Option {
	return func(s *settings) {
		s.low = low
		s.high = high
		s.rangeSet = true
	}
}

// WithPartialInstructions returns an instruction that is cut off at the end of the
// range as partial instruction instead of failing with ErrTruncatedInstruction.
func WithPartialInstructions() Option {
	return func(s *settings) {
		s.partial = true
	}
}

// Disassembler decodes the instructions of a code buffer in linear order.
// It can not be restarted, once it returned an error all following calls
// return the same error.
type Disassembler struct {
	code    []byte
	base    uint16
	pos     int
	end     int
	partial bool
	err     error
}

// NewDisassembler returns a disassembler for the code buffer that is mapped to
// the base address.
func NewDisassembler(code []byte, base uint16, opts ...Option) (*Disassembler, error) {
	s := settings{high: len(code)}
	for _, opt := range opts {
		opt(&s)
	}
	if !s.rangeSet {
		s.low, s.high = 0, len(code)
	}
	if s.low < 0 || s.high > len(code) || s.low > s.high {
		return nil, fmt.Errorf("%w: [%d, %d) for buffer of %d bytes", ErrInvalidRange, s.low, s.high, len(code))
	}

	return &Disassembler{
		code:    code,
		base:    base,
		pos:     s.low,
		end:     s.high,
		partial: s.partial,
	}, nil
}

// Next returns the next instruction or io.EOF when the end of the range is reached.
func (d *Disassembler) Next() (Instruction, error) {
	if d.err != nil {
		return Instruction{}, d.err
	}
	if d.pos >= d.end {
		d.err = io.EOF
		return Instruction{}, d.err
	}

	b := d.code[d.pos]
	op := Opcodes[b]
	ins := Instruction{
		Offset:     d.pos,
		Address:    d.base + uint16(d.pos),
		Opcode:     b,
		Mnemonic:   op.Mnemonic,
		Addressing: op.Addressing,
		Size:       op.Size,
	}

	if available := d.end - d.pos; available < op.Size {
		if !d.partial {
			d.err = fmt.Errorf("%w: %s at offset %d needs %d bytes, %d available",
				ErrTruncatedInstruction, op.Mnemonic, d.pos, op.Size, available)
			return Instruction{}, d.err
		}
		ins.Size = available
		ins.Partial = true
	}

	operand := d.code[d.pos+1 : d.pos+ins.Size]
	switch len(operand) {
	case 1:
		ins.Operand = uint16(operand[0])
	case 2:
		ins.Operand = uint16(operand[1])<<8 | uint16(operand[0])
	}

	d.pos += ins.Size
	return ins, nil
}

// Disassemble decodes all instructions of the code buffer. If the last instruction is
// truncated, the instructions decoded before it are returned together with the error.
func Disassemble(code []byte, base uint16, opts ...Option) ([]Instruction, error) {
	d, err := NewDisassembler(code, base, opts...)
	if err != nil {
		return nil, err
	}

	var instructions []Instruction
	for {
		ins, err := d.Next()
		if errors.Is(err, io.EOF) {
			return instructions, nil
		}
		if err != nil {
			return instructions, err
		}
		instructions = append(instructions, ins)
	}
}
