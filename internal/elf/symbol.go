// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import (
	"fmt"

	"github.com/aclements/ld64/internal/bytesio"
)

// ElfSymbol is one raw ELF64 symbol-table record, decoded
// field-by-field in its exact on-disk layout.
type ElfSymbol struct {
	Name  uint32
	Info  uint8
	Other uint8
	Shndx uint16
	Val   uint64
	Size  uint64
}

// SectionIndex classifies a symbol's shndx field.
type SectionIndex int

const (
	ShnUndef  SectionIndex = 0
	ShnAbs    SectionIndex = 0xfff1
	ShnCommon SectionIndex = 0xfff2
)

// Index classifies Shndx into the reserved indices or "Other",
// carrying the concrete section number.
func (s ElfSymbol) Index() SectionIndex {
	switch s.Shndx {
	case 0:
		return ShnUndef
	case 0xfff1:
		return ShnAbs
	case 0xfff2:
		return ShnCommon
	default:
		return SectionIndex(s.Shndx)
	}
}

// IsConcrete reports whether the symbol's Shndx names an actual
// section-header entry, i.e. it is neither UNDEF, ABS, nor COMMON.
func (s ElfSymbol) IsConcrete() bool {
	switch s.Shndx {
	case 0, 0xfff1, 0xfff2:
		return false
	default:
		return true
	}
}

func (idx SectionIndex) String() string {
	switch idx {
	case ShnUndef:
		return "UNDEF"
	case ShnAbs:
		return "ABS"
	case ShnCommon:
		return "COMMON"
	default:
		return fmt.Sprintf("%d", int(idx))
	}
}

// SymbolBinding is the high nibble of the symbol info byte.
type SymbolBinding uint8

const (
	BindLocal  SymbolBinding = 0
	BindGlobal SymbolBinding = 1
	BindWeak   SymbolBinding = 2
)

// SymbolType is the low nibble of the symbol info byte.
type SymbolType uint8

const (
	TypeNoType  SymbolType = 0
	TypeObject  SymbolType = 1
	TypeFunc    SymbolType = 2
	TypeSection SymbolType = 3
	TypeFile    SymbolType = 4
)

// Bind extracts the symbol binding. Not re-verified by the resolve
// pass: present for diagnostics only.
func (s ElfSymbol) Bind() SymbolBinding { return SymbolBinding(s.Info >> 4) }

// Type extracts the symbol type.
func (s ElfSymbol) Type() SymbolType { return SymbolType(s.Info & 0xf) }

func (b SymbolBinding) String() string {
	switch b {
	case BindLocal:
		return "LOCAL"
	case BindGlobal:
		return "GLOBAL"
	case BindWeak:
		return "WEAK"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(b))
	}
}

func (t SymbolType) String() string {
	switch t {
	case TypeNoType:
		return "NOTYPE"
	case TypeObject:
		return "OBJECT"
	case TypeFunc:
		return "FUNC"
	case TypeSection:
		return "SECTION"
	case TypeFile:
		return "FILE"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// IsAbs reports whether the symbol is defined absolutely (SHN_ABS).
func (s ElfSymbol) IsAbs() bool { return s.Index() == ShnAbs }

// IsCommon reports whether the symbol is a tentative (SHN_COMMON)
// definition.
func (s ElfSymbol) IsCommon() bool { return s.Index() == ShnCommon }

// decodeSymbols reads the size/24 ElfSymbol records stored in the
// size bytes starting at off.
func decodeSymbols(c *bytesio.Cursor, off, size uint64) ([]ElfSymbol, error) {
	const recSize = 24 // 4 + 1 + 1 + 2 + 8 + 8
	if size%recSize != 0 {
		return nil, fmt.Errorf("%w: symtab size %d not a multiple of %d", ErrBadSymbolEncoding, size, recSize)
	}
	c.SeekTo(int64(off))
	n := size / recSize
	syms := make([]ElfSymbol, 0, n)
	for i := uint64(0); i < n; i++ {
		sym, err := bytesio.ReadStruct[ElfSymbol](c)
		if err != nil {
			return nil, fmt.Errorf("%w: symbol[%d]: %v", ErrTruncatedObject, i, err)
		}
		syms = append(syms, sym)
	}
	return syms, nil
}
