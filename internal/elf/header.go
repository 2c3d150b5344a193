// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import (
	"fmt"

	"github.com/aclements/ld64/internal/bytesio"
)

// Header is the on-disk ELF64 file header, decoded field-by-field in
// its exact on-disk layout.
type Header struct {
	Ident     Ident
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	PhOff     uint64
	ShOff     uint64
	Flags     uint32
	EhSize    uint16
	PhEntSize uint16
	PhNum     uint16
	ShEntSize uint16
	ShNum     uint16
	ShStrNdx  uint16
}

// EType enumerates ELF object types. Only Rel is meaningful to this
// front-end; other values are accepted and reported as-is.
type EType uint16

const (
	ETypeNone EType = 0
	ETypeRel  EType = 1
	ETypeExec EType = 2
	ETypeDyn  EType = 3
	ETypeCore EType = 4
)

func (t EType) String() string {
	switch t {
	case ETypeNone:
		return "NONE"
	case ETypeRel:
		return "REL"
	case ETypeExec:
		return "EXEC"
	case ETypeDyn:
		return "DYN"
	case ETypeCore:
		return "CORE"
	default:
		return fmt.Sprintf("unknown(%#x)", uint16(t))
	}
}

// decodeHeader reads the ELF header at offset 0 of c.
func decodeHeader(c *bytesio.Cursor) (Header, error) {
	c.SeekTo(0)
	h, err := bytesio.ReadStruct[Header](c)
	if err != nil {
		return Header{}, fmt.Errorf("%w: header: %v", ErrTruncatedObject, err)
	}
	if err := h.Ident.Check(); err != nil {
		return Header{}, err
	}
	return h, nil
}
