// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

// StrTable is a zero-terminated string table view over a byte
// buffer, looked up by byte offset.
type StrTable struct {
	data []byte
}

// NewStrTable wraps data as a string table.
func NewStrTable(data []byte) StrTable {
	return StrTable{data: data}
}

// Get returns the run of bytes starting at offset up to (not
// including) the first NUL or the end of the buffer. An offset
// outside the buffer returns "" rather than panicking — callers are
// not expected to bounds-check before calling.
func (t StrTable) Get(offset uint32) string {
	o := int(offset)
	if o < 0 || o >= len(t.data) {
		return ""
	}
	end := o
	for end < len(t.data) && t.data[end] != 0 {
		end++
	}
	return string(t.data[o:end])
}
