// Package tune analyzes NSF files by decoding their header and disassembling their code.
package tune

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/nsfscope/internal/m6502"
	"github.com/retroenv/nsfscope/internal/nsf"
)

// addressSpaceSize is the size of the 6502 address space.
const addressSpaceSize = 0x10000

// Options control the analysis of a tune.
type Options struct {
	// ClipToAddressSpace limits the disassembly to the code that fits between the load
	// address and the end of the address space. The excess is reported in Record.ClippedBytes.
	ClipToAddressSpace bool
	// StrictMagic rejects files with an invalid magic number.
	StrictMagic bool
	// StrictInstructions fails the analysis for a truncated last instruction instead
	// of returning it as partial instruction.
	StrictInstructions bool
}

// NewOptions returns the default analysis options.
func NewOptions() Options {
	return Options{
		ClipToAddressSpace: true,
	}
}

// Record contains the analysis result of a single tune.
type Record struct {
	Name         string
	Header       *nsf.Header
	HeaderData   []byte // raw header bytes
	Code         []byte // all bytes following the header
	Instructions []m6502.Instruction

	CodeSize        int // number of code bytes
	LastCodeAddress int // load address + code size - 1, can exceed the address space
	ClippedBytes    int // code bytes that were excluded from disassembly
}

// ExceedsAddressSpace returns whether the code does not fit into the address space
// when loaded at the load address.
func (r *Record) ExceedsAddressSpace() bool {
	return r.LastCodeAddress >= addressSpaceSize
}

// PartialInstructions returns the number of instructions that were cut off.
func (r *Record) PartialInstructions() int {
	count := 0
	for _, ins := range r.Instructions {
		if ins.Partial {
			count++
		}
	}
	return count
}

// Name returns the base name of a tune file path without its extension.
func Name(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Analyze decodes the header of the tune data and disassembles the code following it.
func Analyze(name string, data []byte, opts Options) (*Record, error) {
	header, err := nsf.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}
	if opts.StrictMagic {
		if err := header.Validate(); err != nil {
			return nil, err
		}
	}

	code := data[nsf.HeaderSize:]
	rec := &Record{
		Name:            name,
		Header:          header,
		HeaderData:      data[:nsf.HeaderSize],
		Code:            code,
		CodeSize:        len(code),
		LastCodeAddress: int(header.LoadAddress) + len(code) - 1,
	}

	disasmSize := len(code)
	if limit := addressSpaceSize - int(header.LoadAddress); opts.ClipToAddressSpace && disasmSize > limit {
		rec.ClippedBytes = disasmSize - limit
		disasmSize = limit
	}

	var disasmOpts []m6502.Option
	disasmOpts = append(disasmOpts, m6502.WithRange(0, disasmSize))
	if !opts.StrictInstructions {
		disasmOpts = append(disasmOpts, m6502.WithPartialInstructions())
	}

	rec.Instructions, err = m6502.Disassemble(code, header.LoadAddress, disasmOpts...)
	if err != nil {
		return nil, fmt.Errorf("disassembling code: %w", err)
	}
	return rec, nil
}
