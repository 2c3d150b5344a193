// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/ld64/internal/archive"
	"github.com/aclements/ld64/internal/elftest"
)

func TestParseOrderPreserving(t *testing.T) {
	data := elftest.Archive(map[string][]byte{
		"a.o": {1, 2, 3},
		"b.o": {4, 5},
	}, []string{"a.o", "b.o"})

	members, err := archive.Parse(data)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "a.o", members[0].Name)
	require.Equal(t, []byte{1, 2, 3}, members[0].Data)
	require.Equal(t, "b.o", members[1].Name)
}

func TestParseLongName(t *testing.T) {
	longName := "a_very_long_member_name_that_does_not_fit_inline.o"
	data := elftest.Archive(map[string][]byte{
		longName: {9, 9},
	}, []string{longName})

	members, err := archive.Parse(data)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, longName, members[0].Name)
}

func TestParseBadSignature(t *testing.T) {
	_, err := archive.Parse([]byte("not an archive!!"))
	require.ErrorIs(t, err, archive.ErrBadArchiveSignature)
}

func TestParseEmptyArchive(t *testing.T) {
	data := elftest.Archive(nil, nil)
	members, err := archive.Parse(data)
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestFindNotFound(t *testing.T) {
	_, err := archive.Find([]string{t.TempDir()}, "doesnotexist")
	require.ErrorIs(t, err, archive.ErrArchiveNotFound)
}
