package cursor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCursorReads(t *testing.T) {
	data := []byte{
		0x7f,       // uint8
		0x00, 0x80, // uint16 little endian
		'A', 'B', 0x00, 0x00, // text with null padding
		0xe9, 0x00, // text with latin-1 character
		0xaa, 0xbb, // skipped
		0x01, 0x02, 0x03, // bytes
	}
	c := New(data)

	b, err := c.Uint8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x7f), b)

	w, err := c.Uint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8000), w)

	s, err := c.Text(4)
	assert.NoError(t, err)
	assert.Equal(t, "AB", s)

	s, err = c.Text(2)
	assert.NoError(t, err)
	assert.Equal(t, "é", s)

	assert.NoError(t, c.Skip(2))
	assert.Equal(t, 11, c.Pos())

	raw, err := c.Bytes(3)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{0x01, 0x02, 0x03}, raw))
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, len(data), c.Len())
}

func TestCursorBytesIsCopy(t *testing.T) {
	data := []byte{0x01, 0x02}
	c := New(data)

	raw, err := c.Bytes(2)
	assert.NoError(t, err)
	raw[0] = 0xff
	assert.Equal(t, byte(0x01), data[0])
}

func TestCursorOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		read func(c *Cursor) error
	}{
		{"uint16", func(c *Cursor) error { _, err := c.Uint16(); return err }},
		{"text", func(c *Cursor) error { _, err := c.Text(4); return err }},
		{"bytes", func(c *Cursor) error { _, err := c.Bytes(3); return err }},
		{"skip", func(c *Cursor) error { return c.Skip(2) }},
		{"negative", func(c *Cursor) error { return c.Skip(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New([]byte{0x01, 0x02})
			assert.NoError(t, c.Skip(1))

			err := tt.read(c)
			assert.True(t, errors.Is(err, ErrOutOfBounds))
			assert.Equal(t, 1, c.Pos())
		})
	}

	t.Run("uint8 at end", func(t *testing.T) {
		c := New([]byte{0x01})
		_, err := c.Uint8()
		assert.NoError(t, err)
		_, err = c.Uint8()
		assert.True(t, errors.Is(err, ErrOutOfBounds))
	})
}

func TestCursorFailedReadKeepsPosition(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03})
	assert.NoError(t, c.Skip(2))

	_, err := c.Uint16()
	assert.Error(t, err)
	assert.Equal(t, 2, c.Pos())

	b, err := c.Uint8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x03), b)
}
