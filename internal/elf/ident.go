// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import "fmt"

// Ident is the 16-byte e_ident field at the front of every ELF
// header. This front-end only ever accepts ELFCLASS64/ELFDATA2LSB;
// anything else fails Check with ErrUnsupportedElf.
type Ident [16]byte

const (
	identMag0    = 0
	identClass   = 4
	identData    = 5
	identVersion = 6
	identOSABI   = 7
)

var elfMagic = [4]byte{0x7f, 'E', 'L', 'F'}

// Class values (e_ident[EI_CLASS]).
const (
	ClassNone Class = 0
	Class32   Class = 1
	Class64   Class = 2
)

type Class byte

// Data (endianness) values (e_ident[EI_DATA]).
const (
	DataNone Data = 0
	Data2LSB Data = 1
	Data2MSB Data = 2
)

type Data byte

func (c Class) String() string {
	switch c {
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return "ELFCLASSNONE"
	}
}

func (d Data) String() string {
	switch d {
	case Data2LSB:
		return "little-endian"
	case Data2MSB:
		return "big-endian"
	default:
		return "none"
	}
}

// Class reports the ident's declared ELF class.
func (id Ident) Class() Class { return Class(id[identClass]) }

// Data reports the ident's declared byte order.
func (id Ident) Data() Data { return Data(id[identData]) }

// Check verifies the ident carries the ELF magic number and that this
// front-end supports the declared class and endianness: ELF64,
// little-endian. Anything else is ErrUnsupportedElf.
func (id Ident) Check() error {
	if id[identMag0] != elfMagic[0] || id[identMag0+1] != elfMagic[1] ||
		id[identMag0+2] != elfMagic[2] || id[identMag0+3] != elfMagic[3] {
		return fmt.Errorf("%w: bad magic %x", ErrUnsupportedElf, id[:4])
	}
	if id.Class() != Class64 {
		return fmt.Errorf("%w: class %s not supported", ErrUnsupportedElf, id.Class())
	}
	if id.Data() != Data2LSB {
		return fmt.Errorf("%w: data encoding %s not supported", ErrUnsupportedElf, id.Data())
	}
	return nil
}
