package nsf

import (
	"encoding/binary"
	"fmt"

	"github.com/retroenv/nsfscope/internal/cursor"
	"golang.org/x/text/encoding/charmap"
)

type fieldKind uint8

const (
	rawField fieldKind = iota
	uint8Field
	uint16Field
	textField
	reservedField
)

// value holds a decoded field, only the member matching the field kind is used.
type value struct {
	num  uint16
	raw  []byte
	text string
}

// field describes one entry of the header layout.
type field struct {
	name string
	kind fieldKind
	size int
	get  func(h *Header) value
	set  func(h *Header, v value)
}

// headerFields is the header layout in file order, the sizes add up to HeaderSize.
var headerFields = []field{
	{
		name: "magic_number", kind: rawField, size: 5,
		get: func(h *Header) value { return value{raw: h.Magic[:]} },
		set: func(h *Header, v value) { copy(h.Magic[:], v.raw) },
	},
	{
		name: "version", kind: uint8Field, size: 1,
		get: func(h *Header) value { return value{num: uint16(h.Version)} },
		set: func(h *Header, v value) { h.Version = uint8(v.num) },
	},
	{
		name: "total_songs", kind: uint8Field, size: 1,
		get: func(h *Header) value { return value{num: uint16(h.TotalSongs)} },
		set: func(h *Header, v value) { h.TotalSongs = uint8(v.num) },
	},
	{
		name: "starting_song", kind: uint8Field, size: 1,
		get: func(h *Header) value { return value{num: uint16(h.StartingSong)} },
		set: func(h *Header, v value) { h.StartingSong = uint8(v.num) },
	},
	{
		name: "load_addr", kind: uint16Field, size: 2,
		get: func(h *Header) value { return value{num: h.LoadAddress} },
		set: func(h *Header, v value) { h.LoadAddress = v.num },
	},
	{
		name: "init_addr", kind: uint16Field, size: 2,
		get: func(h *Header) value { return value{num: h.InitAddress} },
		set: func(h *Header, v value) { h.InitAddress = v.num },
	},
	{
		name: "play_addr", kind: uint16Field, size: 2,
		get: func(h *Header) value { return value{num: h.PlayAddress} },
		set: func(h *Header, v value) { h.PlayAddress = v.num },
	},
	{
		name: "title", kind: textField, size: 32,
		get: func(h *Header) value { return value{text: h.Title} },
		set: func(h *Header, v value) { h.Title = v.text },
	},
	{
		name: "artist", kind: textField, size: 32,
		get: func(h *Header) value { return value{text: h.Artist} },
		set: func(h *Header, v value) { h.Artist = v.text },
	},
	{
		name: "copyright", kind: textField, size: 32,
		get: func(h *Header) value { return value{text: h.Copyright} },
		set: func(h *Header, v value) { h.Copyright = v.text },
	},
	{
		name: "ntsc_speed", kind: uint16Field, size: 2,
		get: func(h *Header) value { return value{num: h.NTSCSpeed} },
		set: func(h *Header, v value) { h.NTSCSpeed = v.num },
	},
	{
		name: "bankswitch_init", kind: rawField, size: 8,
		get: func(h *Header) value { return value{raw: h.BankswitchInit[:]} },
		set: func(h *Header, v value) { copy(h.BankswitchInit[:], v.raw) },
	},
	{
		name: "pal_speed", kind: uint16Field, size: 2,
		get: func(h *Header) value { return value{num: h.PALSpeed} },
		set: func(h *Header, v value) { h.PALSpeed = v.num },
	},
	{
		name: "tv_flags", kind: uint8Field, size: 1,
		get: func(h *Header) value { return value{num: uint16(h.tvFlags())} },
		set: func(h *Header, v value) { h.setTVFlags(uint8(v.num)) },
	},
	{
		name: "chip_flags", kind: uint8Field, size: 1,
		get: func(h *Header) value { return value{num: uint16(h.Chips.bits())} },
		set: func(h *Header, v value) { h.Chips = chipsFromByte(uint8(v.num)) },
	},
	{name: "reserved", kind: reservedField, size: 4},
}

// FieldLayout describes the position of a header field.
type FieldLayout struct {
	Name   string
	Offset int
	Size   int
}

// Layout returns the position of all header fields in file order.
func Layout() []FieldLayout {
	layout := make([]FieldLayout, 0, len(headerFields))
	offset := 0
	for _, f := range headerFields {
		layout = append(layout, FieldLayout{
			Name:   f.name,
			Offset: offset,
			Size:   f.size,
		})
		offset += f.size
	}
	return layout
}

// Decode decodes the header from the first HeaderSize bytes of data.
// A magic number mismatch does not fail decoding, it is reported by the
// Valid field of the returned header.
func Decode(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedInput, len(data), HeaderSize)
	}

	c := cursor.New(data[:HeaderSize])
	h := &Header{}
	for _, f := range headerFields {
		v, err := readField(c, f)
		if err != nil {
			return nil, fmt.Errorf("decoding field '%s': %w", f.name, err)
		}
		if f.set != nil {
			f.set(h, v)
		}
	}

	h.Valid = h.Magic == Magic
	return h, nil
}

func readField(c *cursor.Cursor, f field) (value, error) {
	var (
		v   value
		err error
	)

	switch f.kind {
	case rawField:
		v.raw, err = c.Bytes(f.size)
	case uint8Field:
		var b uint8
		b, err = c.Uint8()
		v.num = uint16(b)
	case uint16Field:
		v.num, err = c.Uint16()
	case textField:
		v.text, err = c.Text(f.size)
	case reservedField:
		err = c.Skip(f.size)
	default:
		err = fmt.Errorf("unsupported field kind %d", f.kind)
	}
	return v, err
}

// Encode returns the HeaderSize bytes representation of the header.
// Reserved regions are written as zero bytes. Text that fills a text field
// completely is written without null terminator.
func Encode(h *Header) ([]byte, error) {
	buf := make([]byte, 0, HeaderSize)
	for _, f := range headerFields {
		var err error
		buf, err = appendField(buf, f, h)
		if err != nil {
			return nil, fmt.Errorf("encoding field '%s': %w", f.name, err)
		}
	}
	return buf, nil
}

func appendField(buf []byte, f field, h *Header) ([]byte, error) {
	if f.kind == reservedField {
		return append(buf, make([]byte, f.size)...), nil
	}

	v := f.get(h)
	switch f.kind {
	case rawField:
		return append(buf, v.raw...), nil
	case uint8Field:
		return append(buf, uint8(v.num)), nil
	case uint16Field:
		return binary.LittleEndian.AppendUint16(buf, v.num), nil
	case textField:
		b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(v.text))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTextField, err)
		}
		// a field filled completely has no null terminator, as accepted by Decode
		if len(b) > f.size {
			return nil, fmt.Errorf("%w: %d bytes exceed maximum of %d", ErrTextField, len(b), f.size)
		}
		buf = append(buf, b...)
		return append(buf, make([]byte, f.size-len(b))...), nil
	default:
		return nil, fmt.Errorf("unsupported field kind %d", f.kind)
	}
}
