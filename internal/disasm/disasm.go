// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm renders an executable input section's bytes as x86
// assembly for the --dump=asm diagnostic. It is purely observational:
// nothing it computes feeds back into symbol resolution or garbage
// collection.
package disasm

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"

	"github.com/aclements/ld64/internal/arch"
)

// Line is one decoded instruction, or an undecodable byte run.
type Line struct {
	Addr uint64
	Len  int
	Text string
	// Err is set when the bytes at Addr could not be decoded as a
	// valid instruction; Len is then 1 and Text describes the error.
	Err error
}

// Section decodes code's contents as a, in order, returning one Line
// per instruction. A decode failure advances by a single byte and
// resumes, so one bad instruction never stops the whole dump.
func Section(a *arch.Arch, code []byte) []Line {
	var lines []Line
	for off := 0; off < len(code); {
		inst, err := a.Decode(code[off:])
		if err != nil {
			lines = append(lines, Line{
				Addr: uint64(off),
				Len:  1,
				Text: fmt.Sprintf("(bad: %v)", err),
				Err:  err,
			})
			off++
			continue
		}
		lines = append(lines, Line{
			Addr: uint64(off),
			Len:  inst.Len,
			Text: x86asm.IntelSyntax(inst, uint64(off), nil),
		})
		off += inst.Len
	}
	return lines
}

// Format renders lines as a readelf-ish listing, one instruction per
// line: "  <addr>:\t<bytes>\t<text>".
func Format(lines []Line, raw []byte) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%8x:\t", l.Addr)
		for i := 0; i < l.Len; i++ {
			fmt.Fprintf(&b, "%02x ", raw[int(l.Addr)+i])
		}
		b.WriteByte('\t')
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
