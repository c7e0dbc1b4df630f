// Package cursor provides a sequential reader over a byte buffer with position tracking.
package cursor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ErrOutOfBounds is returned when a read would exceed the buffer length.
var ErrOutOfBounds = errors.New("read out of bounds")

// Cursor reads values from a byte buffer and advances its position.
// A failed read does not move the position.
type Cursor struct {
	data []byte
	pos  int
}

// New returns a cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of bytes left to read.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Bytes returns a copy of the next n bytes.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.next(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// Uint8 reads a single byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian 16-bit value.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Text reads a fixed width text field. Trailing null bytes are trimmed and
// the remaining bytes are decoded as ISO-8859-1, one byte per character.
func (c *Cursor) Text(n int) (string, error) {
	b, err := c.next(n)
	if err != nil {
		return "", err
	}
	b = bytes.TrimRight(b, "\x00")

	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding text at offset %d: %w", c.pos-n, err)
	}
	return string(s), nil
}

// Skip advances the position by n bytes without producing a value.
func (c *Cursor) Skip(n int) error {
	_, err := c.next(n)
	return err
}

func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("%w: reading %d bytes at offset %d of %d", ErrOutOfBounds, n, c.pos, len(c.data))
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
