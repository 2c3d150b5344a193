// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytesio is the byte reader and fixed-struct decoder shared
// by the archive and ELF decoders: it reads exactly sizeof(T) bytes
// at an explicit cursor and interprets them as a little-endian packed
// record, rather than reinterpreting raw memory, so field layout,
// endianness and alignment stay explicit.
package bytesio

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// ErrShortRead is returned when fewer bytes remain in the stream than
// the read requires.
var ErrShortRead = errors.New("bytesio: short read")

// Cursor is a byte stream paired with an explicit read position.
type Cursor struct {
	data []byte
	pos  int64
}

// NewCursor wraps data for sequential, position-addressable reads.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int64 { return c.pos }

// Len returns the total number of bytes in the underlying buffer.
func (c *Cursor) Len() int64 { return int64(len(c.data)) }

// SeekTo moves the cursor to an absolute offset. Out-of-range offsets
// are not rejected here; they surface as ErrShortRead on the next read.
func (c *Cursor) SeekTo(off int64) { c.pos = off }

// Align2 advances the cursor to the next even offset if it isn't
// already on one (used between archive members).
func (c *Cursor) Align2() {
	if c.pos%2 != 0 {
		c.pos++
	}
}

// ReadBytes reads exactly n bytes starting at the cursor and advances
// it, failing with ErrShortRead if fewer than n bytes remain.
func (c *Cursor) ReadBytes(n int64) ([]byte, error) {
	if n < 0 || c.pos < 0 || c.pos+n > int64(len(c.data)) {
		return nil, ErrShortRead
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadStruct decodes exactly binary.Size(T) bytes at the cursor into
// a zero value of T, field by field, little-endian, and advances the
// cursor. T must be a fixed-size struct of fixed-width fields (or
// array thereof) matching the target on-disk record.
func ReadStruct[T any](c *Cursor) (T, error) {
	var zero T
	n := int64(binary.Size(zero))
	if n < 0 {
		return zero, errors.New("bytesio: unsized record type")
	}
	b, err := c.ReadBytes(n)
	if err != nil {
		return zero, err
	}
	var out T
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &out); err != nil {
		return zero, err
	}
	return out, nil
}
