// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package object assembles the raw decode from internal/elf into the
// full per-object model: input Section entities, mergeable-section
// views, and the local/global symbol split. It is built without any
// Context dependency — Context (internal/link) owns the steps that
// need process-wide state (symbol interning, fragment registration).
package object

import (
	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/output"
	"github.com/aclements/ld64/internal/section"
	"github.com/aclements/ld64/internal/symbol"
)

// ID is an object's stable, 1-based, Context-assigned identifier.
type ID int

// Mergeable is the raw per-section mergeable-section view, before
// fragment interning has run. Keys and Offsets are populated at
// decode time; MergedSection and Fragments are filled in by Context
// during ingest.
type Mergeable struct {
	Keys          []section.FragmentKey
	Offsets       []uint64
	Align         uint64
	MergedSection *output.MergedSection
	Fragments     []*output.MergedFragment
}

// SymbolInfo is the object's symbol-table block: raw ELF symbol
// records, the local/global split point, and the decoded local- and
// global-symbol entities.
type SymbolInfo struct {
	ElfSymbols  []elf.ElfSymbol
	FirstGlobal int
	StrTab      elf.StrTable

	// Locals has length == FirstGlobal; Locals[i] corresponds to
	// ElfSymbols[i].
	Locals []*symbol.Symbol

	// Globals has length == len(ElfSymbols)-FirstGlobal; Globals[j]
	// corresponds to ElfSymbols[FirstGlobal+j]. These start out
	// freshly-allocated undefined symbols and are replaced with the
	// interned handle during Context ingest.
	Globals []*symbol.Symbol
}

// Object is one decoded relocatable object, fully built from its raw
// elf.Object but not yet ingested into a Context.
type Object struct {
	ID   ID
	Name string
	Raw  *elf.Object

	// Sections, Mergeable and Raw.Sections are parallel lists of
	// identical length: Sections[i] is nil for the slots elf.Object
	// elides (NULL/REL/RELA/STRTAB/SYMTAB), and Mergeable[i] is nil
	// unless Sections[i] is a MERGE section.
	Sections  []*section.Section
	Mergeable []*Mergeable

	Symbols *SymbolInfo

	Alive bool
}

// Build constructs the full per-object model from a raw decode. It
// performs no Context interaction: section entities, mergeable-key
// extraction and local-symbol construction are all purely local to
// the object.
func Build(raw *elf.Object, name string) *Object {
	o := &Object{Name: name, Raw: raw}

	o.Sections = make([]*section.Section, len(raw.Sections))
	o.Mergeable = make([]*Mergeable, len(raw.Sections))
	for i, sh := range raw.Sections {
		if raw.SectionData[i] == nil {
			continue
		}
		sec := &section.Section{
			Name:  raw.SectionName(sh),
			Index: i,
			Data:  raw.SectionData[i],
			Flags: sh.Flags,
			Type:  sh.Type,
		}
		o.Sections[i] = sec

		if sec.IsMerge() {
			keys, offsets := section.BuildFragmentKeys(sec.Data, sh.EntSize, sec.IsStrings())
			o.Mergeable[i] = &Mergeable{
				Keys:      keys,
				Offsets:   offsets,
				Align:     sh.EntSize,
				Fragments: make([]*output.MergedFragment, len(keys)),
			}
		}
	}

	if raw.HasSymbols {
		info := &SymbolInfo{
			ElfSymbols:  raw.Symbols,
			FirstGlobal: raw.FirstGlobal,
			StrTab:      raw.SymStrTab,
		}
		for i := 0; i < info.FirstGlobal; i++ {
			es := raw.Symbols[i]
			info.Locals = append(info.Locals, &symbol.Symbol{
				Name:  raw.SymbolName(es),
				Index: i,
				Value: es.Val,
				Alive: true,
			})
		}
		for i := info.FirstGlobal; i < len(raw.Symbols); i++ {
			info.Globals = append(info.Globals, symbol.New(raw.SymbolName(raw.Symbols[i])))
		}
		o.Symbols = info
	}

	return o
}
