// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package section_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/ld64/internal/section"
)

func TestBuildFragmentKeysStrings(t *testing.T) {
	data := []byte("hi\x00hello\x00")
	keys, offsets := section.BuildFragmentKeys(data, 1, true)
	require.Len(t, keys, 2)
	require.Equal(t, section.FragmentKey{Kind: section.KindString, Data: "hi"}, keys[0])
	require.Equal(t, uint64(0), offsets[0])
	require.Equal(t, section.FragmentKey{Kind: section.KindString, Data: "hello"}, keys[1])
	require.Equal(t, uint64(3), offsets[1])
}

func TestBuildFragmentKeysStringsNoTerminator(t *testing.T) {
	// A run left open at EOF (no terminating zero chunk) is dropped.
	data := []byte("hi\x00trailing")
	keys, _ := section.BuildFragmentKeys(data, 1, true)
	require.Len(t, keys, 1)
	require.Equal(t, "hi", keys[0].Data)
}

func TestBuildFragmentKeysAllZero(t *testing.T) {
	// An all-zero strings section emits nothing: every chunk looks like
	// a terminator, so no run ever starts.
	data := make([]byte, 8)
	keys, _ := section.BuildFragmentKeys(data, 1, true)
	require.Empty(t, keys)
}

func TestBuildFragmentKeysConstant(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	keys, offsets := section.BuildFragmentKeys(data, 4, false)
	require.Len(t, keys, 2)
	require.Equal(t, section.KindConstant, keys[0].Kind)
	require.Equal(t, []uint64{0, 4}, offsets)
}

func TestBuildFragmentKeysZeroEntSize(t *testing.T) {
	keys, offsets := section.BuildFragmentKeys([]byte{1, 2, 3}, 0, false)
	require.Nil(t, keys)
	require.Nil(t, offsets)
}

func TestBindFragmentFirstMatchGreaterEqual(t *testing.T) {
	offsets := []uint64{0, 5, 10}
	// Deliberately the quirky "first offset >= value" scan, not
	// "greatest offset <= value".
	require.Equal(t, 0, section.BindFragment(offsets, 0))
	require.Equal(t, 1, section.BindFragment(offsets, 3))
	require.Equal(t, 1, section.BindFragment(offsets, 5))
	require.Equal(t, 2, section.BindFragment(offsets, 9))
	require.Equal(t, -1, section.BindFragment(offsets, 11))
}
