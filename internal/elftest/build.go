// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elftest synthesizes minimal ELF64 relocatable-object and ar
// archive byte buffers for use from package tests. It is test-support
// code only, never imported by non-test sources.
package elftest

import (
	"bytes"
	"encoding/binary"
)

// Section describes one section to bake into a synthetic object.
type Section struct {
	Name     string
	Type     uint32
	Flags    uint64
	Data     []byte
	EntSize  uint64
	AddAlign uint64
}

// Symbol describes one symbol-table record to bake in, by section
// name (resolved to an index at build time) or by the reserved
// indices 0 (UNDEF), 0xfff1 (ABS), 0xfff2 (COMMON).
type Symbol struct {
	Name    string
	Info    uint8
	Section string // resolved against Section.Name; "" + Shndx below for reserved indices
	Shndx   uint16 // used when Section == ""
	Value   uint64
	Size    uint64
}

// Object is the set of inputs to Build.
type Object struct {
	Sections    []Section
	Symbols     []Symbol
	FirstGlobal int
}

const (
	ehsize    = 64
	shentsize = 64
	symsize   = 24
)

// Build serializes obj into a minimal little-endian ELF64 ET_REL
// byte buffer: header, a synthesized .shstrtab, the given sections,
// and, if any symbols are given, .symtab/.strtab sections holding
// them.
func Build(obj Object) []byte {
	var shstrtab strtabBuilder
	shstrtab.add("") // index 0 is always empty

	type section struct {
		name     uint32
		typ      uint32
		flags    uint64
		data     []byte
		link     uint32
		info     uint32
		addAlign uint64
		entSize  uint64
	}

	var sections []section
	sections = append(sections, section{}) // NULL section

	nameToIndex := map[string]int{}
	for _, s := range obj.Sections {
		idx := len(sections)
		nameToIndex[s.Name] = idx
		sections = append(sections, section{
			name:     shstrtab.add(s.Name),
			typ:      s.Type,
			flags:    s.Flags,
			data:     s.Data,
			addAlign: s.AddAlign,
			entSize:  s.EntSize,
		})
	}

	if len(obj.Symbols) > 0 {
		var strtab strtabBuilder
		strtab.add("")
		var symBytes bytes.Buffer
		for _, sym := range obj.Symbols {
			shndx := sym.Shndx
			if sym.Section != "" {
				shndx = uint16(nameToIndex[sym.Section])
			}
			nameOff := strtab.add(sym.Name)
			binary.Write(&symBytes, binary.LittleEndian, uint32(nameOff))
			symBytes.WriteByte(sym.Info)
			symBytes.WriteByte(0)
			binary.Write(&symBytes, binary.LittleEndian, shndx)
			binary.Write(&symBytes, binary.LittleEndian, sym.Value)
			binary.Write(&symBytes, binary.LittleEndian, sym.Size)
		}

		strtabIdx := len(sections) + 1
		sections = append(sections, section{
			name: shstrtab.add(".symtab"),
			typ:  2, // SHT_SYMTAB
			data: symBytes.Bytes(),
			link: uint32(strtabIdx),
			info: uint32(obj.FirstGlobal),
		})
		sections = append(sections, section{
			name: shstrtab.add(".strtab"),
			typ:  3, // SHT_STRTAB
			data: strtab.Bytes(),
		})
	}

	shstrtabIdx := len(sections)
	sections = append(sections, section{
		name: shstrtab.add(".shstrtab"),
		typ:  3, // SHT_STRTAB
		data: shstrtab.Bytes(),
	})

	// Lay out file offsets: header, then each section's data in order.
	offsets := make([]uint64, len(sections))
	cur := uint64(ehsize)
	for i, s := range sections {
		if s.typ == 8 /* NOBITS */ {
			offsets[i] = cur
			continue
		}
		offsets[i] = cur
		cur += uint64(len(s.data))
	}
	shoff := cur

	var buf bytes.Buffer
	// e_ident
	buf.Write([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0})
	buf.Write(make([]byte, 8)) // pad to 16
	binary.Write(&buf, binary.LittleEndian, uint16(1))          // e_type = ET_REL
	binary.Write(&buf, binary.LittleEndian, uint16(0x3e))       // e_machine = EM_X86_64
	binary.Write(&buf, binary.LittleEndian, uint32(1))          // e_version
	binary.Write(&buf, binary.LittleEndian, uint64(0))          // e_entry
	binary.Write(&buf, binary.LittleEndian, uint64(0))          // e_phoff
	binary.Write(&buf, binary.LittleEndian, shoff)              // e_shoff
	binary.Write(&buf, binary.LittleEndian, uint32(0))          // e_flags
	binary.Write(&buf, binary.LittleEndian, uint16(ehsize))     // e_ehsize
	binary.Write(&buf, binary.LittleEndian, uint16(0))          // e_phentsize
	binary.Write(&buf, binary.LittleEndian, uint16(0))          // e_phnum
	binary.Write(&buf, binary.LittleEndian, uint16(shentsize))  // e_shentsize
	binary.Write(&buf, binary.LittleEndian, uint16(len(sections))) // e_shnum
	binary.Write(&buf, binary.LittleEndian, uint16(shstrtabIdx))    // e_shstrndx

	for _, s := range sections {
		buf.Write(s.data)
	}

	for i, s := range sections {
		binary.Write(&buf, binary.LittleEndian, s.name)
		binary.Write(&buf, binary.LittleEndian, s.typ)
		binary.Write(&buf, binary.LittleEndian, s.flags)
		binary.Write(&buf, binary.LittleEndian, uint64(0)) // addr
		binary.Write(&buf, binary.LittleEndian, offsets[i])
		binary.Write(&buf, binary.LittleEndian, uint64(len(s.data)))
		binary.Write(&buf, binary.LittleEndian, s.link)
		binary.Write(&buf, binary.LittleEndian, s.info)
		binary.Write(&buf, binary.LittleEndian, s.addAlign)
		binary.Write(&buf, binary.LittleEndian, s.entSize)
	}

	return buf.Bytes()
}

type strtabBuilder struct {
	buf bytes.Buffer
}

func (s *strtabBuilder) add(name string) uint32 {
	off := uint32(s.buf.Len())
	s.buf.WriteString(name)
	s.buf.WriteByte(0)
	return off
}

func (s *strtabBuilder) Bytes() []byte { return s.buf.Bytes() }

// Archive serializes name/payload pairs into a GNU ar archive byte
// buffer, with long names routed through a synthesized "//" string
// table member whenever a name exceeds the 16-byte inline field.
func Archive(members map[string][]byte, order []string) []byte {
	var long strtabBuilder
	type entry struct {
		header string // 16-byte name field content, pre-padding
		offset uint32
		long   bool
	}
	entries := make(map[string]entry)
	for _, name := range order {
		if len(name) <= 16 {
			entries[name] = entry{header: name}
		} else {
			off := long.add(name)
			entries[name] = entry{offset: off, long: true}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("!<arch>\n")

	if long.buf.Len() > 0 {
		writeMember(&buf, "//", long.Bytes())
	}

	for _, name := range order {
		e := entries[name]
		hname := e.header
		if e.long {
			hname = "/" + itoa(e.offset)
		}
		writeMember(&buf, hname, members[name])
	}

	return buf.Bytes()
}

func writeMember(buf *bytes.Buffer, name string, data []byte) {
	header := make([]byte, 60)
	copy(header[0:16], padRight(name, 16))
	copy(header[16:28], padRight("0", 12))
	copy(header[28:34], padRight("0", 6))
	copy(header[34:40], padRight("0", 6))
	copy(header[40:48], padRight("644", 8))
	copy(header[48:58], padRight(itoa(uint32(len(data))), 10))
	header[58] = 0x60
	header[59] = 0x0a
	buf.Write(header)
	buf.Write(data)
	if len(data)%2 != 0 {
		buf.WriteByte('\n')
	}
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}

func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
