// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/output"
	"github.com/aclements/ld64/internal/section"
)

func TestFindOrCreateInterns(t *testing.T) {
	r := output.NewRegistry()
	a := r.FindOrCreate(".rodata.str1.1", elf.ShtProgbits, elf.ShfMerge|elf.ShfStrings)
	b := r.FindOrCreate(".rodata.str1.1", elf.ShtProgbits, elf.ShfMerge|elf.ShfStrings)
	require.Same(t, a, b)

	c := r.FindOrCreate(".rodata.cst8", elf.ShtProgbits, elf.ShfMerge)
	require.NotSame(t, a, c)
	require.Len(t, r.All(), 2)
}

func TestInsertDedupAndAlignmentRaises(t *testing.T) {
	ms := output.NewRegistry().FindOrCreate(".rodata.str1.1", elf.ShtProgbits, elf.ShfMerge|elf.ShfStrings)
	key := section.FragmentKey{Kind: section.KindString, Data: "hi"}

	f1 := ms.Insert(key, 4)
	require.Equal(t, uint64(4), f1.Align)

	f2 := ms.Insert(key, 8)
	require.Same(t, f1, f2)
	require.Equal(t, uint64(8), f2.Align)

	f3 := ms.Insert(key, 1)
	require.Equal(t, uint64(8), f3.Align) // never lowered

	require.Equal(t, 1, ms.FragmentCount())
}
