// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import (
	"fmt"

	"github.com/aclements/ld64/internal/bytesio"
)

// Object is the raw decode of one relocatable ELF64 object file:
// header, section-header table, section bytes and, if present, the
// symbol table and its string table. It carries no Context-dependent
// state — no object id, no interned symbols — those belong to the
// higher-level object model built on top of it.
type Object struct {
	Header        Header
	Sections      []SectionHeader
	SectionData   [][]byte // parallel to Sections; nil for NULL/REL/RELA/STRTAB/SYMTAB slots, empty (non-nil) for NOBITS
	SectionStrTab StrTable

	HasSymbols  bool
	Symbols     []ElfSymbol
	FirstGlobal int
	SymStrTab   StrTable
}

// Decode parses data as a relocatable ELF64 object file: header,
// section-header table, symbol table (if present), then each
// section's raw bytes.
func Decode(data []byte) (*Object, error) {
	c := bytesio.NewCursor(data)

	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}

	sections, err := decodeSectionHeaders(c, h)
	if err != nil {
		return nil, err
	}

	if int(h.ShStrNdx) >= len(sections) {
		return nil, fmt.Errorf("%w: sh_strndx %d", ErrBadSectionIndex, h.ShStrNdx)
	}
	strTabBytes, err := sectionBytes(c, sections[h.ShStrNdx])
	if err != nil {
		return nil, err
	}

	obj := &Object{
		Header:        h,
		Sections:      sections,
		SectionData:   make([][]byte, len(sections)),
		SectionStrTab: NewStrTable(strTabBytes),
	}

	symtabIdx := -1
	for i, sh := range sections {
		if sh.Type == ShtSymtab {
			symtabIdx = i
			break
		}
	}

	if symtabIdx >= 0 {
		symtab := sections[symtabIdx]
		if int(symtab.Link) >= len(sections) {
			return nil, fmt.Errorf("%w: symtab sh_link %d", ErrBadSectionIndex, symtab.Link)
		}
		symStrBytes, err := sectionBytes(c, sections[symtab.Link])
		if err != nil {
			return nil, err
		}
		syms, err := decodeSymbols(c, symtab.Offset, symtab.Size)
		if err != nil {
			return nil, err
		}
		obj.HasSymbols = true
		obj.Symbols = syms
		obj.FirstGlobal = int(symtab.Info)
		obj.SymStrTab = NewStrTable(symStrBytes)
	}

	for i, sh := range sections {
		if sh.Type.hasNoDataSlot() {
			continue
		}
		b, err := sectionBytes(c, sh)
		if err != nil {
			return nil, err
		}
		obj.SectionData[i] = b
	}

	return obj, nil
}

// SectionName resolves a section header's name through the
// section-header string table.
func (o *Object) SectionName(sh SectionHeader) string {
	return o.SectionStrTab.Get(sh.Name)
}

// SymbolName resolves a decoded symbol's name through the symbol
// string table.
func (o *Object) SymbolName(s ElfSymbol) string {
	return o.SymStrTab.Get(s.Name)
}
