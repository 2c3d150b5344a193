// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"errors"

	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/object"
	"github.com/aclements/ld64/internal/section"
)

// ErrEmptyRootSet is returned by MarkLiveObjects when no object in the
// context is alive yet — there is nothing to mark reachability from.
var ErrEmptyRootSet = errors.New("link: no live objects to root the mark pass from")

// ResolveSymbol performs first-definition-wins resolution over every
// ingested object's global symbols, in push order: the first object
// whose global symbol table names a concrete definition for a given
// name claims it — DefiningObject, Index and Value are set once and
// never overwritten by a later object, and the symbol is bound to the
// section or merged fragment that concrete definition lives in.
// Objects with no concrete definition for a name (UNDEF references)
// are left untouched; the symbol's binding byte (LOCAL/GLOBAL/WEAK) is
// never re-checked here — any concrete shndx that names one of the
// object's section entities claims the definition.
func ResolveSymbol(c *Context) {
	for _, obj := range c.objects {
		if obj.Symbols == nil {
			continue
		}
		for i, raw := range obj.Symbols.ElfSymbols[obj.Symbols.FirstGlobal:] {
			sym := obj.Symbols.Globals[i]
			if sym.Defined() || !raw.IsConcrete() {
				continue
			}
			idx := int(raw.Shndx)
			if idx >= len(obj.Sections) || obj.Sections[idx] == nil {
				continue
			}
			sym.DefiningObject = int(obj.ID)
			sym.Index = obj.Symbols.FirstGlobal + i
			sym.Value = raw.Val

			if m := obj.Mergeable[idx]; m != nil {
				if j := section.BindFragment(m.Offsets, raw.Val); j >= 0 {
					sym.SetFragment(m.Fragments[j])
					continue
				}
			}
			sym.SetSection(obj.Sections[idx])
		}
	}
}

// MarkLiveObjects runs reachability over the object graph: starting
// from every object already marked Alive (the roots —
// object files given directly on the command line, as opposed to
// archive members pulled in only to satisfy a reference), it walks
// each live object's UNDEF global references — symbols this object's
// own raw table leaves undefined, whose shared handle some other
// object has claimed — and marks the claiming object alive in turn,
// repeating until no new object is discovered. It returns
// ErrEmptyRootSet if the context holds no live object to start from.
func MarkLiveObjects(c *Context) error {
	var queue []int // object IDs (1-based) queued for scanning
	seen := make(map[int]bool)

	for _, obj := range c.objects {
		if obj.Alive {
			seen[int(obj.ID)] = true
			queue = append(queue, int(obj.ID))
		}
	}
	if len(queue) == 0 {
		return ErrEmptyRootSet
	}

	byID := make(map[int]*object.Object, len(c.objects))
	for _, obj := range c.objects {
		byID[int(obj.ID)] = obj
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		obj := byID[id]
		if obj.Symbols == nil {
			continue
		}
		for i, raw := range obj.Symbols.ElfSymbols[obj.Symbols.FirstGlobal:] {
			if raw.Index() != elf.ShnUndef {
				continue
			}
			sym := obj.Symbols.Globals[i]
			if sym.DefiningObject == 0 || sym.DefiningObject == int(obj.ID) {
				continue
			}
			if seen[sym.DefiningObject] {
				continue
			}
			seen[sym.DefiningObject] = true
			if defObj, ok := byID[sym.DefiningObject]; ok {
				defObj.Alive = true
				queue = append(queue, sym.DefiningObject)
			}
		}
	}
	return nil
}

// ReclaimObjects drops every object MarkLiveObjects left unreached,
// along with the global symbols only those dead objects claimed: a
// symbol whose DefiningObject names a dropped object is removed from
// the interned table, since nothing reachable still defines it.
func (c *Context) ReclaimObjects() {
	deadObjects := make(map[int]bool)
	for _, obj := range c.objects {
		if !obj.Alive {
			deadObjects[int(obj.ID)] = true
		}
	}
	live := c.objects[:0]
	for _, obj := range c.objects {
		if obj.Alive {
			live = append(live, obj)
		}
	}
	c.objects = live

	for name, sym := range c.globals {
		if sym.DefiningObject != 0 && deadObjects[sym.DefiningObject] {
			delete(c.globals, name)
		}
	}
}
