// Package writer implements the text reports of analyzed tunes.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/nsfscope/internal/m6502"
	"github.com/retroenv/nsfscope/internal/nsf"
	"github.com/retroenv/nsfscope/internal/tune"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer writes header reports and assembly listings.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output code buffer offsets in comments
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteHeader writes all header properties as one "name: value" line each.
func (w Writer) WriteHeader(h *nsf.Header) error {
	for _, prop := range h.Properties() {
		if _, err := fmt.Fprintf(w.writer, "%-17s %s\n", prop.Name+":", prop.Value); err != nil {
			return fmt.Errorf("writing header property '%s': %w", prop.Name, err)
		}
	}
	return nil
}

// WriteListing writes the disassembled instructions of the tune, one per line.
// Code bytes that were excluded from disassembly are written as data bytes.
func (w Writer) WriteListing(rec *tune.Record) error {
	if err := w.writeCommentHeader(rec); err != nil {
		return err
	}

	for _, ins := range rec.Instructions {
		if err := w.writeCodeLine(ins); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
	}

	if rec.ClippedBytes == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w.writer, "\n; %d bytes exceed the address space and were not disassembled\n",
		rec.ClippedBytes); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	start := rec.CodeSize - rec.ClippedBytes
	if err := w.BundleDataWrites(rec.Code[start:], w.dataLineWriter(start)); err != nil {
		return fmt.Errorf("writing clipped data: %w", err)
	}
	return nil
}

// dataLineWriter returns a line writer that appends the code offset of every data
// line as comment, or nil if offset comments are disabled.
func (w Writer) dataLineWriter(offset int) lineWriterFunc {
	if !w.options.OffsetComments {
		return nil
	}
	return func(line string, byteCount int) error {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; +%04X\n", line, offset); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		offset += byteCount
		return nil
	}
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02X, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "  %s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

func (w Writer) writeCommentHeader(rec *tune.Record) error {
	if _, err := fmt.Fprintf(w.writer, "; %s\n", rec.Name); err != nil {
		return fmt.Errorf("writing name: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Load address: $%04X\n", rec.Header.LoadAddress); err != nil {
		return fmt.Errorf("writing load address: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code size: %d bytes, last address $%04X\n\n",
		rec.CodeSize, rec.LastCodeAddress); err != nil {
		return fmt.Errorf("writing code size: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(ins m6502.Instruction) error {
	code := fmt.Sprintf("$%04X  %s", ins.Address, ins.String())
	comment := w.instructionComment(ins)

	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", code, comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

func (w Writer) instructionComment(ins m6502.Instruction) string {
	var parts []string

	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("+%04X", ins.Offset))
	}
	if w.options.HexComments {
		parts = append(parts, fmt.Sprintf("% X", ins.Bytes()))
	}
	if target, ok := ins.BranchTarget(); ok {
		parts = append(parts, fmt.Sprintf("-> $%04X", target))
	}
	if !ins.Known() {
		parts = append(parts, fmt.Sprintf("unknown opcode $%02X", ins.Opcode))
	}
	if ins.Partial {
		parts = append(parts, "partial instruction")
	}

	return strings.Join(parts, "  ")
}
