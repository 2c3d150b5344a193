// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package link holds the process-wide linking state (the Context) and
// the resolution/garbage-collection passes that operate over it:
// symbol interning, mergeable-fragment registration, first-
// definition-wins resolution, reachability marking and reclaim.
package link

import (
	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/object"
	"github.com/aclements/ld64/internal/output"
	"github.com/aclements/ld64/internal/section"
	"github.com/aclements/ld64/internal/symbol"
)

// Context is the process-wide linking state: every ingested object,
// the interned global-symbol table, and the merged-section registry.
type Context struct {
	objects []*object.Object
	nextID  object.ID

	globals map[string]*symbol.Symbol
	merged  *output.Registry
}

// NewContext creates an empty linking context.
func NewContext() *Context {
	return &Context{
		nextID:  1,
		globals: make(map[string]*symbol.Symbol),
		merged:  output.NewRegistry(),
	}
}

// FindSymbolByName returns the interned global Symbol for name,
// creating a fresh undefined one if this is the first reference.
func (c *Context) FindSymbolByName(name string) *symbol.Symbol {
	if s, ok := c.globals[name]; ok {
		return s
	}
	s := symbol.New(name)
	c.globals[name] = s
	return s
}

// FindOrCreateMerged delegates to the output-section registry.
func (c *Context) FindOrCreateMerged(name string, typ elf.SectionType, flags elf.SectionFlag) *output.MergedSection {
	return c.merged.FindOrCreate(name, typ, flags)
}

// Merged returns the merged-section registry, for diagnostics.
func (c *Context) Merged() *output.Registry { return c.merged }

// ObjectIter returns every ingested object, in push order.
func (c *Context) ObjectIter() []*object.Object { return c.objects }

// GetObject looks up a previously pushed object by id.
func (c *Context) GetObject(id object.ID) (*object.Object, bool) {
	for _, o := range c.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Push ingests a decoded object into the context: it assigns the
// object's id, stamps ObjectID on its sections, interns each global
// symbol name against the process-wide table (replacing
// the object's placeholder Globals entries with the shared handle),
// registers each mergeable section's fragments against the merged-
// section registry, and binds every concrete-section local symbol to
// its defining section or fragment (globals are bound later, by
// ResolveSymbol). Push does not itself set obj.Alive:
// the caller marks Alive true before pushing an object named directly
// on the command line (a live root), and leaves it false for an
// archive member, which only becomes live if MarkLiveObjects reaches
// it through a reference from an already-live object.
func (c *Context) Push(obj *object.Object) object.ID {
	id := c.nextID
	c.nextID++
	obj.ID = id

	for _, sec := range obj.Sections {
		if sec != nil {
			sec.ObjectID = int(id)
		}
	}

	if obj.Symbols != nil {
		// Globals are only interned here; claiming a definition and
		// binding Section/Frag is ResolveSymbol's job, since the
		// first object pushed isn't necessarily the first one
		// resolved against (first-definition-wins).
		for i := range obj.Symbols.Globals {
			name := obj.Symbols.Globals[i].Name
			obj.Symbols.Globals[i] = c.FindSymbolByName(name)
		}
	}

	for i, m := range obj.Mergeable {
		if m == nil {
			continue
		}
		sec := obj.Sections[i]
		ms := c.FindOrCreateMerged(sec.Name, sec.Type, sec.Flags)
		m.MergedSection = ms
		for j, key := range m.Keys {
			m.Fragments[j] = ms.Insert(key, m.Align)
		}
	}

	if obj.Symbols != nil {
		// Locals are exclusively owned by this object, so there is no
		// ordering question: bind them immediately. This must run
		// after the mergeable-interning loop above, since a local
		// defined in a MERGE section binds to a *Fragments entry that
		// loop fills in.
		for i, sh := range obj.Symbols.ElfSymbols[:obj.Symbols.FirstGlobal] {
			c.bindDefiningLocation(obj, obj.Symbols.Locals[i], sh, i)
		}
	}

	c.objects = append(c.objects, obj)
	return id
}

// bindDefiningLocation wires a symbol to the section or merged
// fragment its own object defines it in, for any symbol whose shndx
// names a concrete section. It does not touch DefiningObject or
// Value — those are ResolveSymbol's job for globals; a local gets its
// Value at decode time and its DefiningObject stays zero.
func (c *Context) bindDefiningLocation(obj *object.Object, sym *symbol.Symbol, raw elf.ElfSymbol, _ int) {
	if !raw.IsConcrete() {
		return
	}
	idx := int(raw.Shndx)
	if idx >= len(obj.Sections) || obj.Sections[idx] == nil {
		return
	}
	if m := obj.Mergeable[idx]; m != nil {
		if j := section.BindFragment(m.Offsets, raw.Val); j >= 0 {
			sym.SetFragment(m.Fragments[j])
			return
		}
	}
	sym.SetSection(obj.Sections[idx])
}
