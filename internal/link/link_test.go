// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/elftest"
	"github.com/aclements/ld64/internal/link"
	"github.com/aclements/ld64/internal/object"
)

func buildObj(t *testing.T, name string, o elftest.Object) *object.Object {
	t.Helper()
	raw, err := elf.Decode(elftest.Build(o))
	require.NoError(t, err)
	return object.Build(raw, name)
}

// S1 Single object, no references.
func TestScenarioSingleObjectNoReferences(t *testing.T) {
	ctx := link.NewContext()
	hello := buildObj(t, "hello.o", elftest.Object{
		Sections: []elftest.Section{{Name: ".text", Type: 1, Flags: uint64(elf.ShfAlloc | elf.ShfExecInstr), Data: []byte{0x90}}},
		Symbols:  []elftest.Symbol{{Name: "main", Info: 0x12, Section: ".text"}},
	})
	hello.Alive = true
	ctx.Push(hello)

	link.ResolveSymbol(ctx)
	require.NoError(t, link.MarkLiveObjects(ctx))
	ctx.ReclaimObjects()

	require.Len(t, ctx.ObjectIter(), 1)
	main := ctx.FindSymbolByName("main")
	require.True(t, main.Defined())
	require.Empty(t, ctx.Merged().All())
}

// S2 Library pull-in.
func TestScenarioLibraryPullIn(t *testing.T) {
	ctx := link.NewContext()

	a := buildObj(t, "a.o", elftest.Object{
		Symbols: []elftest.Symbol{{Name: "puts", Info: 0x10, Shndx: 0}}, // UNDEF
	})
	a.Alive = true
	ctx.Push(a)

	putsObj := buildObj(t, "libc.a(puts.o)", elftest.Object{
		Sections: []elftest.Section{{Name: ".text", Type: 1, Data: []byte{0x90}}},
		Symbols:  []elftest.Symbol{{Name: "puts", Info: 0x12, Section: ".text"}},
	})
	ctx.Push(putsObj)

	unused := buildObj(t, "libc.a(unused.o)", elftest.Object{
		Sections: []elftest.Section{{Name: ".text", Type: 1, Data: []byte{0x90}}},
		Symbols:  []elftest.Symbol{{Name: "unused", Info: 0x12, Section: ".text"}},
	})
	ctx.Push(unused)

	link.ResolveSymbol(ctx)
	require.NoError(t, link.MarkLiveObjects(ctx))
	ctx.ReclaimObjects()

	ids := map[string]bool{}
	for _, obj := range ctx.ObjectIter() {
		ids[obj.Name] = true
	}
	require.True(t, ids["a.o"])
	require.True(t, ids["libc.a(puts.o)"])
	require.False(t, ids["libc.a(unused.o)"])

	puts := ctx.FindSymbolByName("puts")
	require.Equal(t, int(putsObj.ID), puts.DefiningObject)
}

// S3 First-definition-wins.
func TestScenarioFirstDefinitionWins(t *testing.T) {
	ctx := link.NewContext()
	x := buildObj(t, "x.o", elftest.Object{
		Sections: []elftest.Section{{Name: ".text", Type: 1, Data: []byte{1}}},
		Symbols:  []elftest.Symbol{{Name: "f", Info: 0x12, Section: ".text"}},
	})
	x.Alive = true
	ctx.Push(x)

	y := buildObj(t, "y.o", elftest.Object{
		Sections: []elftest.Section{{Name: ".text", Type: 1, Data: []byte{2}}},
		Symbols:  []elftest.Symbol{{Name: "f", Info: 0x12, Section: ".text"}},
	})
	y.Alive = true
	ctx.Push(y)

	link.ResolveSymbol(ctx)
	require.NoError(t, link.MarkLiveObjects(ctx))
	ctx.ReclaimObjects()

	f := ctx.FindSymbolByName("f")
	require.Equal(t, int(x.ID), f.DefiningObject)
	require.Len(t, ctx.ObjectIter(), 2)
}

// S4 String merge.
func TestScenarioStringMerge(t *testing.T) {
	ctx := link.NewContext()
	flags := uint64(elf.ShfMerge | elf.ShfStrings)
	o1 := buildObj(t, "o1.o", elftest.Object{
		Sections: []elftest.Section{{Name: ".rodata.str1.1", Type: 1, Flags: flags, EntSize: 1, Data: []byte("hi\x00hello\x00")}},
	})
	o1.Alive = true
	ctx.Push(o1)

	o2 := buildObj(t, "o2.o", elftest.Object{
		Sections: []elftest.Section{{Name: ".rodata.str1.1", Type: 1, Flags: flags, EntSize: 1, Data: []byte("hi\x00hello\x00")}},
	})
	o2.Alive = true
	ctx.Push(o2)

	all := ctx.Merged().All()
	require.Len(t, all, 1)
	require.Equal(t, 2, all[0].FragmentCount())
	require.Same(t, o1.Mergeable[1].Fragments[0], o2.Mergeable[1].Fragments[0])
	require.Same(t, o1.Mergeable[1].Fragments[1], o2.Mergeable[1].Fragments[1])
}

// S5 Constant merge: two objects contributing a byte-identical 8-byte
// constant to the same merged section dedup to a single fragment,
// shared by pointer, with alignment equal to the declared entry size.
// (The alignment-raising property of Insert itself — two *different*
// requested alignments for the same key, monotonically maxed — is
// exercised directly in output/merged_test.go, since a FragmentKey is
// derived from entSize-sized chunking: two objects can only ever
// contribute the same key when their entSize, and hence the Align
// they request, already agree.)
func TestScenarioConstantMerge(t *testing.T) {
	ctx := link.NewContext()
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	o1 := buildObj(t, "o1.o", elftest.Object{
		Sections: []elftest.Section{{Name: ".rodata.cst8", Type: 1, Flags: uint64(elf.ShfMerge), EntSize: 8, Data: data}},
	})
	o1.Alive = true
	ctx.Push(o1)

	o2 := buildObj(t, "o2.o", elftest.Object{
		Sections: []elftest.Section{{Name: ".rodata.cst8", Type: 1, Flags: uint64(elf.ShfMerge), EntSize: 8, Data: data}},
	})
	o2.Alive = true
	ctx.Push(o2)

	all := ctx.Merged().All()
	require.Len(t, all, 1)
	require.Equal(t, 1, all[0].FragmentCount())
	require.Same(t, o1.Mergeable[1].Fragments[0], o2.Mergeable[1].Fragments[0])
	require.Equal(t, uint64(8), o1.Mergeable[1].Fragments[0].Align)
}

func TestMarkLiveEmptyRootSet(t *testing.T) {
	ctx := link.NewContext()
	obj := buildObj(t, "unreferenced.o", elftest.Object{})
	ctx.Push(obj) // not alive
	err := link.MarkLiveObjects(ctx)
	require.ErrorIs(t, err, link.ErrEmptyRootSet)
}

func TestFindSymbolByNameIdempotent(t *testing.T) {
	ctx := link.NewContext()
	a := ctx.FindSymbolByName("x")
	b := ctx.FindSymbolByName("x")
	require.Same(t, a, b)
}
