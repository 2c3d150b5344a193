// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive decodes GNU-style ar archives, yielding the member
// object-file blobs a static archive bundles.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/ld64/internal/bytesio"
)

// Sentinel error kinds raised by the archive decoder.
var (
	ErrBadArchiveSignature = errors.New("archive: bad signature")
	ErrTruncatedArchive    = errors.New("archive: truncated")
	ErrArchiveNotFound     = errors.New("archive: not found")
	ErrMissingStringTable  = errors.New("archive: long name before any string-table member")
)

const signature = "!<arch>\n"

// header is the 60-byte ar member header, decoded field-by-field.
type header struct {
	Name      [16]byte
	Timestamp [12]byte
	OwnerID   [6]byte
	GroupID   [6]byte
	FileMode  [8]byte
	FileSize  [10]byte
	EndMarker [2]byte
}

func (h header) isSymbolTable() bool { return strings.HasPrefix(string(h.Name[:]), "/ ") }
func (h header) isStringTable() bool { return strings.HasPrefix(string(h.Name[:]), "// ") }

func (h header) size() (int64, error) {
	s := strings.TrimSpace(string(h.FileSize[:]))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("archive: invalid member size %q: %w", s, err)
	}
	return n, nil
}

// Member is one decoded archive entry: its resolved name and its raw
// object-file bytes.
type Member struct {
	Name string
	Data []byte
}

// Parse decodes an ar archive's bytes into its member sequence, in
// on-disk order, with symbol-table members dropped.
func Parse(data []byte) ([]Member, error) {
	c := bytesio.NewCursor(data)
	sig, err := c.ReadBytes(int64(len(signature)))
	if err != nil || string(sig) != signature {
		return nil, ErrBadArchiveSignature
	}

	var stringTable []byte
	haveStringTable := false
	var members []Member

	for c.Pos() < c.Len() {
		h, err := bytesio.ReadStruct[header](c)
		if err != nil {
			return nil, fmt.Errorf("%w: member header: %v", ErrTruncatedArchive, err)
		}
		size, err := h.size()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedArchive, err)
		}
		payload, err := c.ReadBytes(size)
		if err != nil {
			return nil, fmt.Errorf("%w: member payload: %v", ErrTruncatedArchive, err)
		}
		c.Align2()

		switch {
		case h.isSymbolTable():
			// Dropped: this front-end resolves symbols itself
			// and never consults the archive's own index.
			continue
		case h.isStringTable():
			stringTable = payload
			haveStringTable = true
			continue
		}

		name, err := resolveName(h, stringTable, haveStringTable)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: name, Data: payload})
	}

	return members, nil
}

// resolveName resolves a member's name: a "/<offset>" name is a
// long-name indirection into the most recently seen string-table
// member; anything else is the header field, trimmed.
func resolveName(h header, stringTable []byte, haveStringTable bool) (string, error) {
	raw := string(h.Name[:])
	if len(raw) > 0 && raw[0] == '/' {
		offsetStr := strings.TrimSpace(raw[1:])
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return "", fmt.Errorf("archive: invalid long-name offset %q: %w", offsetStr, err)
		}
		if !haveStringTable {
			return "", ErrMissingStringTable
		}
		return trimLongName(stringTable, offset), nil
	}
	return strings.TrimRight(raw, " "), nil
}

// trimLongName extracts the NUL/newline-terminated name starting at
// offset in the archive's "//" string-table member.
func trimLongName(table []byte, offset int) string {
	if offset < 0 || offset >= len(table) {
		return ""
	}
	end := offset
	for end < len(table) && table[end] != '\n' && table[end] != 0 {
		end++
	}
	return strings.TrimRight(string(table[offset:end]), "/ \t")
}

// Find locates a bare library name (e.g. "c" for "libc.a") among dirs,
// in order, returning the first "lib<name>.a" that exists.
func Find(dirs []string, name string) (string, error) {
	fname := "lib" + name + ".a"
	for _, dir := range dirs {
		path := filepath.Join(dir, fname)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrArchiveNotFound, fname)
}
