// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/elftest"
)

func TestDecodeBasic(t *testing.T) {
	data := elftest.Build(elftest.Object{
		Sections: []elftest.Section{
			{Name: ".text", Type: 1, Flags: 1 << 2 /* EXECINSTR */, Data: []byte{0x90, 0x90}},
		},
		Symbols: []elftest.Symbol{
			{Name: "main", Info: 0x12 /* GLOBAL FUNC */, Section: ".text", Value: 0},
		},
		FirstGlobal: 0,
	})

	obj, err := elf.Decode(data)
	require.NoError(t, err)
	require.Len(t, obj.Sections, 5) // NULL, .text, .symtab, .strtab, .shstrtab
	require.True(t, obj.HasSymbols)
	require.Equal(t, 0, obj.FirstGlobal)
	require.Len(t, obj.Symbols, 1)
	require.Equal(t, "main", obj.SymbolName(obj.Symbols[0]))
	require.Equal(t, ".text", obj.SectionName(obj.Sections[1]))
	require.Equal(t, []byte{0x90, 0x90}, obj.SectionData[1])
}

func TestDecodeExtendedSectionCount(t *testing.T) {
	// Build a plain object, then rewrite it to use extended numbering:
	// e_shnum becomes zero and section[0].sh_size holds the true count,
	// which decode must fall back to.
	data := elftest.Build(elftest.Object{
		Sections: []elftest.Section{
			{Name: ".data", Type: 1, Data: []byte{1, 2, 3, 4}},
		},
	})
	shoff := binary.LittleEndian.Uint64(data[40:48])
	n := binary.LittleEndian.Uint16(data[60:62])
	binary.LittleEndian.PutUint16(data[60:62], 0)
	binary.LittleEndian.PutUint64(data[shoff+32:shoff+40], uint64(n))

	obj, err := elf.Decode(data)
	require.NoError(t, err)
	require.Equal(t, uint16(0), obj.Header.ShNum)
	require.Len(t, obj.Sections, int(n))
	require.Equal(t, ".data", obj.SectionName(obj.Sections[1]))
}

func TestDecodeBadMagic(t *testing.T) {
	data := elftest.Build(elftest.Object{})
	data[1] = 'X'
	_, err := elf.Decode(data)
	require.ErrorIs(t, err, elf.ErrUnsupportedElf)
}

func TestDecodeTruncated(t *testing.T) {
	data := elftest.Build(elftest.Object{
		Sections: []elftest.Section{{Name: ".text", Type: 1, Data: []byte{1, 2, 3}}},
	})
	_, err := elf.Decode(data[:len(data)-4])
	require.Error(t, err)
}

func TestNobitsSectionIsEmpty(t *testing.T) {
	data := elftest.Build(elftest.Object{
		Sections: []elftest.Section{
			{Name: ".bss", Type: 8 /* NOBITS */, Data: nil},
		},
	})
	obj, err := elf.Decode(data)
	require.NoError(t, err)
	require.Equal(t, []byte{}, obj.SectionData[1])
}

func TestStrTableOutOfRange(t *testing.T) {
	tab := elf.NewStrTable([]byte("abc\x00"))
	require.Equal(t, "abc", tab.Get(0))
	require.Equal(t, "", tab.Get(100))
}

func TestIdentCheck(t *testing.T) {
	var bad elf.Ident
	copy(bad[:], []byte{0x7f, 'E', 'L', 'F', 1 /* ELFCLASS32 */, 1})
	err := bad.Check()
	require.ErrorIs(t, err, elf.ErrUnsupportedElf)
}

func TestSymbolBindTypeNotReVerified(t *testing.T) {
	// Info byte 0x01 encodes bind=0 (LOCAL), type=1 (OBJECT);
	// IsConcrete only looks at Shndx.
	s := elf.ElfSymbol{Info: 0x01, Shndx: 3}
	require.True(t, s.IsConcrete())
	require.Equal(t, elf.BindLocal, s.Bind())
}
