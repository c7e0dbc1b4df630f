// Package verification verifies that the analysis result recreates the input.
package verification

import (
	"fmt"

	"github.com/retroenv/nsfscope/internal/m6502"
	"github.com/retroenv/nsfscope/internal/nsf"
	"github.com/retroenv/nsfscope/internal/tune"
	"github.com/retroenv/retrogolib/log"
)

// maxLoggedMismatches limits the number of logged mismatching offsets per buffer.
const maxLoggedMismatches = 10

// fieldMasks contains the bits of flag fields that are decoded, other bits are reserved.
var fieldMasks = map[string]byte{
	"tv_flags":   0x03,
	"chip_flags": 0x3f,
}

// skippedFields are not compared as reserved bytes are not decoded.
var skippedFields = map[string]struct{}{
	"reserved": {},
}

// VerifyRecord verifies that encoding the decoded header and the disassembled
// instructions recreates the bytes of the tune.
func VerifyRecord(logger *log.Logger, rec *tune.Record) error {
	if err := verifyHeader(logger, rec); err != nil {
		return fmt.Errorf("header mismatch: %w", err)
	}

	cmp := &comparison{logger: logger}
	code := rec.Code[:rec.CodeSize-rec.ClippedBytes]
	if err := cmp.compare("code", nsf.HeaderSize, code, Assemble(rec.Instructions)); err != nil {
		return fmt.Errorf("code mismatch: %w", err)
	}
	if err := cmp.err(); err != nil {
		return fmt.Errorf("code mismatch: %w", err)
	}
	return nil
}

// Assemble returns the encoded bytes of all instructions.
func Assemble(instructions []m6502.Instruction) []byte {
	var buf []byte
	for _, ins := range instructions {
		buf = append(buf, ins.Bytes()...)
	}
	return buf
}

func verifyHeader(logger *log.Logger, rec *tune.Record) error {
	encoded, err := nsf.Encode(rec.Header)
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}

	cmp := &comparison{logger: logger}
	for _, field := range nsf.Layout() {
		if _, ok := skippedFields[field.Name]; ok {
			continue
		}

		in := rec.HeaderData[field.Offset : field.Offset+field.Size]
		out := encoded[field.Offset : field.Offset+field.Size]
		if mask, ok := fieldMasks[field.Name]; ok {
			in = []byte{in[0] & mask}
			out = []byte{out[0] & mask}
		}

		if err := cmp.compare(field.Name, field.Offset, in, out); err != nil {
			return err
		}
	}
	return cmp.err()
}

// comparison compares buffers and logs the first mismatching offsets.
type comparison struct {
	logger *log.Logger
	diffs  int
}

// compare compares the input bytes located at the given file offset with the output bytes.
func (c *comparison) compare(name string, offset int, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("%s: mismatched lengths, %d != %d", name, len(input), len(output))
	}

	for i := range input {
		if input[i] == output[i] {
			continue
		}

		c.diffs++
		if c.diffs <= maxLoggedMismatches {
			c.logger.Error("Offset mismatch",
				log.String("field", name),
				log.Hex("offset", offset+i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	return nil
}

func (c *comparison) err() error {
	if c.diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", c.diffs)
}
