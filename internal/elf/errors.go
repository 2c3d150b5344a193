// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import "errors"

// Sentinel error kinds raised by the ELF object decoder.
var (
	// ErrTruncatedObject is returned when a read runs past the end
	// of the object's byte buffer while decoding its structure.
	ErrTruncatedObject = errors.New("elf: truncated object")

	// ErrUnsupportedElf is returned for any ident combination other
	// than ELFCLASS64/ELFDATA2LSB.
	ErrUnsupportedElf = errors.New("elf: unsupported class/endianness")

	// ErrBadSectionIndex is returned when a section-header index
	// (sh_strndx, or the symbol table's sh_link) falls outside the
	// decoded section-header table. Symbol shndx values are not
	// checked against the table during decode.
	ErrBadSectionIndex = errors.New("elf: section index out of range")

	// ErrBadSymbolEncoding is returned when a symbol-table section's
	// byte range does not divide evenly into ElfSymbol records.
	ErrBadSymbolEncoding = errors.New("elf: malformed symbol table")
)
