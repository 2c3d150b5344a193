// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import (
	"fmt"

	"github.com/aclements/ld64/internal/bytesio"
)

// SectionHeader is one entry of the ELF64 section-header table,
// decoded field-by-field in its exact on-disk layout.
type SectionHeader struct {
	Name     uint32
	Type     SectionType
	Flags    SectionFlag
	Addr     uint64
	Offset   uint64
	Size     uint64
	Link     uint32
	Info     uint32
	AddAlign uint64
	EntSize  uint64
}

// SectionType is the sh_type field. Values beyond the recognized
// range propagate as-is and are treated as non-mergeable, non-symbol,
// non-string-table.
type SectionType uint32

const (
	ShtNull         SectionType = 0x0
	ShtProgbits     SectionType = 0x1
	ShtSymtab       SectionType = 0x2
	ShtStrtab       SectionType = 0x3
	ShtRela         SectionType = 0x4
	ShtHash         SectionType = 0x5
	ShtDynamic      SectionType = 0x6
	ShtNote         SectionType = 0x7
	ShtNobits       SectionType = 0x8
	ShtRel          SectionType = 0x9
	ShtShlib        SectionType = 0xa
	ShtDynsym       SectionType = 0xb
	ShtInitArray    SectionType = 0xe
	ShtFiniArray    SectionType = 0xf
	ShtPreinitArray SectionType = 0x10
)

var sectionTypeNames = map[SectionType]string{
	ShtNull: "NULL", ShtProgbits: "PROGBITS", ShtSymtab: "SYMTAB",
	ShtStrtab: "STRTAB", ShtRela: "RELA", ShtHash: "HASH",
	ShtDynamic: "DYNAMIC", ShtNote: "NOTE", ShtNobits: "NOBITS",
	ShtRel: "REL", ShtShlib: "SHLIB", ShtDynsym: "DYNSYM",
	ShtInitArray: "INIT_ARRAY", ShtFiniArray: "FINI_ARRAY",
	ShtPreinitArray: "PREINIT_ARRAY",
}

func (t SectionType) String() string {
	if n, ok := sectionTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%#x)", uint32(t))
}

// SectionFlag is the sh_flags bitfield. Only the bits this decoder
// names are interpreted; the rest are carried but never queried.
type SectionFlag uint64

const (
	ShfWrite     SectionFlag = 1 << 0
	ShfAlloc     SectionFlag = 1 << 1
	ShfExecInstr SectionFlag = 1 << 2
	ShfMerge     SectionFlag = 1 << 4
	ShfStrings   SectionFlag = 1 << 5
)

func (f SectionFlag) Has(bit SectionFlag) bool { return f&bit != 0 }

// Slots of the section-header/entity/mergeable-view triple that the
// ELF decoder leaves absent: these section types carry no byte
// payload worth decoding into the per-object model.
func (t SectionType) hasNoDataSlot() bool {
	switch t {
	case ShtNull, ShtRel, ShtRela, ShtStrtab, ShtSymtab:
		return true
	default:
		return false
	}
}

// decodeSectionHeaders reads the section-header table starting at
// h.ShOff, applying the extended-numbering rule: when ShNum is zero,
// section[0].Size holds the true count.
func decodeSectionHeaders(c *bytesio.Cursor, h Header) ([]SectionHeader, error) {
	c.SeekTo(int64(h.ShOff))
	first, err := bytesio.ReadStruct[SectionHeader](c)
	if err != nil {
		return nil, fmt.Errorf("%w: section[0]: %v", ErrTruncatedObject, err)
	}

	count := uint64(h.ShNum)
	if count == 0 {
		count = first.Size
	}
	if count == 0 {
		return []SectionHeader{first}, nil
	}

	sections := make([]SectionHeader, 1, count)
	sections[0] = first
	for i := uint64(1); i < count; i++ {
		sh, err := bytesio.ReadStruct[SectionHeader](c)
		if err != nil {
			return nil, fmt.Errorf("%w: section[%d]: %v", ErrTruncatedObject, i, err)
		}
		sections = append(sections, sh)
	}
	return sections, nil
}

// sectionBytes reads a section's file contents. NOBITS sections (e.g.
// .bss) occupy no file space; they decode to an empty slice rather
// than reading sh.Size bytes from sh.Offset.
func sectionBytes(c *bytesio.Cursor, sh SectionHeader) ([]byte, error) {
	if sh.Type == ShtNobits {
		return []byte{}, nil
	}
	c.SeekTo(int64(sh.Offset))
	b, err := c.ReadBytes(int64(sh.Size))
	if err != nil {
		return nil, fmt.Errorf("%w: section data at %#x: %v", ErrTruncatedObject, sh.Offset, err)
	}
	return b, nil
}
