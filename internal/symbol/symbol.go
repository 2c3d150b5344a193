// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symbol is the shared Symbol entity: the same
// type backs both an object's exclusively-owned local symbols and the
// process-wide interned global symbols that resolution, mark-live and
// reclaim all operate on.
package symbol

import (
	"github.com/aclements/ld64/internal/output"
	"github.com/aclements/ld64/internal/section"
)

// Symbol is one named symbol. A global Symbol is shared — by pointer
// — among every object that references its name; a local Symbol is
// owned exclusively by the object that defined it.
//
// Invariants: Section and Frag are never both non-nil;
// when neither is set the symbol is undefined; DefiningObject is zero
// (no object) iff no object has yet claimed the definition.
type Symbol struct {
	Name string

	// DefiningObject is the 1-based id of the object that claimed
	// this symbol's definition, or 0 if none has.
	DefiningObject int
	// Index is this symbol's index within DefiningObject's symbol
	// table (first_global + local offset for globals).
	Index int
	Value uint64

	Section *section.Section
	Frag    *output.MergedFragment

	Alive bool
}

// New creates an undefined symbol, alive by default — matching the
// source's Symbol::new, which starts every symbol alive and lets the
// reclaim pass kill it later.
func New(name string) *Symbol {
	return &Symbol{Name: name, Alive: true}
}

// SetSection binds the symbol to a concrete, non-mergeable input
// section, clearing any fragment reference.
func (s *Symbol) SetSection(sec *section.Section) {
	s.Section = sec
	s.Frag = nil
}

// SetFragment binds the symbol to a deduplicated merged fragment,
// clearing any input-section reference.
func (s *Symbol) SetFragment(f *output.MergedFragment) {
	s.Frag = f
	s.Section = nil
}

// Defined reports whether any object has claimed this symbol's
// definition.
func (s *Symbol) Defined() bool { return s.DefiningObject != 0 }
