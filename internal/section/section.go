// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package section models per-object input sections and the
// mergeable-section fragmentation used by the output-section
// registry.
package section

import "github.com/aclements/ld64/internal/elf"

// Section is one decoded input section belonging to an object. Its
// flag predicates read Flags directly rather than indirecting through
// the owning object, since a section's flags never change once
// decoded (see DESIGN.md).
type Section struct {
	ObjectID int
	Name     string
	Index    int
	Data     []byte
	Flags    elf.SectionFlag
	Type     elf.SectionType
}

func (s *Section) IsWrite() bool   { return s.Flags.Has(elf.ShfWrite) }
func (s *Section) IsAlloc() bool   { return s.Flags.Has(elf.ShfAlloc) }
func (s *Section) IsMerge() bool   { return s.Flags.Has(elf.ShfMerge) }
func (s *Section) IsStrings() bool { return s.Flags.Has(elf.ShfStrings) }
func (s *Section) IsExec() bool    { return s.Flags.Has(elf.ShfExecInstr) }
