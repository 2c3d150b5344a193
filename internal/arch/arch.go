// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arch describes the handful of architecture-specific
// constants the disassembly diagnostic needs.
package arch

import "golang.org/x/arch/x86/x86asm"

// Arch identifies an instruction-set variant for disassembly.
type Arch struct {
	// GoArch is the GOARCH-style name for this architecture.
	GoArch string

	// PtrSize is the number of bytes in a pointer.
	PtrSize int

	// Mode is the x86asm decode mode (32 or 64) for this architecture.
	Mode int
}

var (
	AMD64 = &Arch{"amd64", 8, 64}
	I386  = &Arch{"386", 4, 32}
)

func (a *Arch) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.GoArch
}

// Decode disassembles one instruction at the start of code.
func (a *Arch) Decode(code []byte) (x86asm.Inst, error) {
	return x86asm.Decode(code, a.Mode)
}
