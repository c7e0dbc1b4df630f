package writer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/nsfscope/internal/nsf"
	"github.com/retroenv/nsfscope/internal/tune"
	"github.com/retroenv/retrogolib/assert"
)

func analyzeTune(t *testing.T, name string, loadAddress uint16, code []byte) *tune.Record {
	t.Helper()

	header := &nsf.Header{
		Magic:        nsf.Magic,
		Version:      1,
		TotalSongs:   3,
		StartingSong: 1,
		LoadAddress:  loadAddress,
		InitAddress:  loadAddress,
		PlayAddress:  loadAddress + 3,
		Title:        "Writer, Test",
		Artist:       "Somebody",
		NTSCSpeed:    16639,
	}
	header.Chips.VRC6 = true
	header.Chips.FDS = true

	data, err := nsf.Encode(header)
	assert.NoError(t, err)

	rec, err := tune.Analyze(name, append(data, code...), tune.NewOptions())
	assert.NoError(t, err)
	return rec
}

// splitLine returns the code and comment parts of a listing line.
func splitLine(line string) (string, string) {
	code, comment, _ := strings.Cut(line, " ; ")
	return strings.TrimSpace(code), comment
}

func TestWriteHeader(t *testing.T) {
	rec := analyzeTune(t, "header", 0x8000, nil)

	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{}).WriteHeader(rec.Header))

	values := map[string]string{}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.True(t, len(line) >= 18, "line too short: %q", line)
		name := strings.TrimSpace(line[:17])
		assert.True(t, strings.HasSuffix(name, ":"), "unaligned line: %q", line)
		values[strings.TrimSuffix(name, ":")] = line[18:]
	}

	assert.Equal(t, len(rec.Header.Properties()), len(lines))
	assert.Equal(t, "$8000", values["load_addr"])
	assert.Equal(t, "$8003", values["play_addr"])
	assert.Equal(t, "Writer, Test", values["title"])
	assert.Equal(t, "NTSC", values["tv_std"])
	assert.Equal(t, "true", values["vrc6"])
	assert.Equal(t, "false", values["vrc7"])
	assert.Equal(t, "true", values["valid"])
}

func TestWriteListing(t *testing.T) {
	code := []byte{
		0xa9, 0x42, // LDA #$42
		0xd0, 0xfe, // BNE $8002
		0x02, // unknown
		0x60, // RTS
	}
	rec := analyzeTune(t, "listing", 0x8000, code)

	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{HexComments: true}).WriteListing(rec))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, "; listing", lines[0])
	assert.Equal(t, "; Load address: $8000", lines[1])
	assert.Equal(t, "; Code size: 6 bytes, last address $8005", lines[2])
	assert.Equal(t, "", lines[3])

	expected := []struct {
		code    string
		comment string
	}{
		{"$8000  LDA (IMM ) $42", "A9 42"},
		{"$8002  BNE (REL ) $FE", "D0 FE  -> $8002"},
		{"$8004  unknown (unknown)", "02  unknown opcode $02"},
		{"$8005  RTS (IMP )", "60"},
	}
	assert.Equal(t, len(expected)+4, len(lines))
	for i, want := range expected {
		code, comment := splitLine(lines[i+4])
		assert.Equal(t, want.code, code)
		assert.Equal(t, want.comment, comment)
	}
}

func TestWriteListingCommentOptions(t *testing.T) {
	rec := analyzeTune(t, "options", 0xc000, []byte{0xea, 0xea})

	tests := []struct {
		name    string
		options Options
		comment string
	}{
		{name: "no comments", options: Options{}, comment: ""},
		{name: "offsets", options: Options{OffsetComments: true}, comment: "+0001"},
		{name: "all", options: Options{HexComments: true, OffsetComments: true}, comment: "+0001  EA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, New(&buf, tt.options).WriteListing(rec))

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			code, comment := splitLine(lines[len(lines)-1])
			assert.Equal(t, "$C001  NOP (IMP )", code)
			assert.Equal(t, tt.comment, comment)
		})
	}
}

func TestWriteListingClippedBytes(t *testing.T) {
	rec := analyzeTune(t, "clipped", 0xfffe, []byte{0xea, 0xea, 0x01, 0x02})
	assert.Equal(t, 2, rec.ClippedBytes)

	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{}).WriteListing(rec))

	out := buf.String()
	assert.True(t, strings.Contains(out, "; 2 bytes exceed the address space and were not disassembled\n"))
	assert.True(t, strings.HasSuffix(out, "  .byte $01, $02\n"), "unexpected output: %q", out)
}

func TestWriteListingClippedBytesOffsets(t *testing.T) {
	code := make([]byte, 2+dataBytesPerLine+1)
	code[0], code[1] = 0xea, 0xea
	rec := analyzeTune(t, "clipped", 0xfffe, code)
	assert.Equal(t, dataBytesPerLine+1, rec.ClippedBytes)

	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{OffsetComments: true}).WriteListing(rec))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.True(t, len(lines) >= 2)

	data, comment := splitLine(lines[len(lines)-2])
	assert.True(t, strings.HasPrefix(data, ".byte $00, "), data)
	assert.Equal(t, "+0002", comment)

	data, comment = splitLine(lines[len(lines)-1])
	assert.Equal(t, ".byte $00", data)
	assert.Equal(t, "+0012", comment)
}

func TestBundleDataWrites(t *testing.T) {
	data := make([]byte, dataBytesPerLine+2)
	for i := range data {
		data[i] = byte(i)
	}

	var lines []string
	var counts []int
	w := New(nil, Options{})
	err := w.BundleDataWrites(data, func(line string, byteCount int) error {
		lines = append(lines, line)
		counts = append(counts, byteCount)
		return nil
	})
	assert.NoError(t, err)

	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], ".byte $00, $01, "))
	assert.True(t, strings.HasSuffix(lines[0], "$0E, $0F"))
	assert.Equal(t, ".byte $10, $11", lines[1])
	assert.Equal(t, dataBytesPerLine, counts[0])
	assert.Equal(t, 2, counts[1])
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestWriteErrors(t *testing.T) {
	rec := analyzeTune(t, "errors", 0x8000, []byte{0xea})
	w := New(failingWriter{}, Options{})

	assert.True(t, errors.Is(w.WriteHeader(rec.Header), errWrite))
	assert.True(t, errors.Is(w.WriteListing(rec), errWrite))
	assert.True(t, errors.Is(WriteSummary(failingWriter{}, []*tune.Record{rec}), errWrite))
}

func TestWriteSummary(t *testing.T) {
	records := []*tune.Record{
		analyzeTune(t, "first", 0x8000, []byte{0xa9, 0x00, 0x02, 0x60}),
		analyzeTune(t, "second", 0xfffe, []byte{0xea, 0xea, 0xea}),
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteSummary(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(rows))

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[name] = i
	}
	assert.Equal(t, len(summaryColumns), len(columns))

	first := rows[1]
	assert.Equal(t, "first", first[columns["name"]])
	assert.Equal(t, "Writer, Test", first[columns["title"]])
	assert.Equal(t, "$8000", first[columns["load_addr"]])
	assert.Equal(t, "VRC6|FDS", first[columns["chips"]])
	assert.Equal(t, "4", first[columns["code_size"]])
	assert.Equal(t, "3", first[columns["instructions"]])
	assert.Equal(t, "1", first[columns["unknown_opcodes"]])
	assert.Equal(t, "0", first[columns["clipped_bytes"]])

	second := rows[2]
	assert.Equal(t, "second", second[columns["name"]])
	assert.Equal(t, "$10000", second[columns["last_code_addr"]])
	assert.Equal(t, "1", second[columns["clipped_bytes"]])
	assert.Equal(t, "2", second[columns["instructions"]])
}
