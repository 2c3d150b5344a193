// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package output models merged output sections: the per-(name, type,
// flags) registry and the content-addressed fragment deduplication
// within each one.
package output

import (
	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/section"
)

// SectionID uniquely identifies a MergedSection, assigned by the
// registry in allocation order, 1-based.
type SectionID int

// MergedSection is one deduplicated output section, interned by the
// triple (name, type, flags). Within a MergedSection, each
// FragmentKey maps to at most one MergedFragment.
type MergedSection struct {
	ID    SectionID
	Name  string
	Type  elf.SectionType
	Flags elf.SectionFlag

	frags map[section.FragmentKey]*MergedFragment
}

// MergedFragment is one deduplicated fragment within a MergedSection.
// Its alignment only ever increases, tracking the maximum alignment
// ever requested for its key.
type MergedFragment struct {
	Section SectionID
	Align   uint64
}

func newMergedSection(id SectionID, name string, typ elf.SectionType, flags elf.SectionFlag) *MergedSection {
	return &MergedSection{
		ID:    id,
		Name:  name,
		Type:  typ,
		Flags: flags,
		frags: make(map[section.FragmentKey]*MergedFragment),
	}
}

// Insert interns key within this section: if it is already present,
// its fragment's alignment is raised to max(existing, align) and the
// existing fragment is returned; otherwise a new fragment is
// allocated and stored.
func (m *MergedSection) Insert(key section.FragmentKey, align uint64) *MergedFragment {
	if f, ok := m.frags[key]; ok {
		if align > f.Align {
			f.Align = align
		}
		return f
	}
	f := &MergedFragment{Section: m.ID, Align: align}
	m.frags[key] = f
	return f
}

// FragmentCount reports how many distinct fragments this section
// currently holds. Used by diagnostics (--dump=stats).
func (m *MergedSection) FragmentCount() int { return len(m.frags) }

// Registry interns MergedSections by (name, type, flags).
type Registry struct {
	sections []*MergedSection
	nextID   SectionID
}

// NewRegistry creates an empty output-section registry.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// FindOrCreate returns the MergedSection for (name, type, flags),
// allocating one with a fresh ID if no equal triple has been seen
// yet. Equality is structural: the registry is scanned linearly,
// matching the original's own behavior.
func (r *Registry) FindOrCreate(name string, typ elf.SectionType, flags elf.SectionFlag) *MergedSection {
	for _, s := range r.sections {
		if s.Name == name && s.Type == typ && s.Flags == flags {
			return s
		}
	}
	s := newMergedSection(r.nextID, name, typ, flags)
	r.nextID++
	r.sections = append(r.sections, s)
	return s
}

// All returns every interned MergedSection, in allocation order. The
// caller must not mutate the returned slice's backing array.
func (r *Registry) All() []*MergedSection {
	return r.sections
}
