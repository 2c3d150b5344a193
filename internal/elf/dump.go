// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import (
	"fmt"
	"strings"
)

// Dump renders a readelf-ish tabular report of the object's header,
// section table and symbol table. It is a read-only diagnostic — a
// Go rendering of what the original implementation's Display impls
// produced for ElfHeader/InputElf/SymbolInfo — and has no bearing on
// decode or resolution semantics.
func (o *Object) Dump() string {
	var b strings.Builder

	fmt.Fprintf(&b, "ELF header: type=%s machine=%#x entry=%#x shoff=%#x shnum=%d shstrndx=%d\n",
		EType(o.Header.Type), o.Header.Machine, o.Header.Entry, o.Header.ShOff, len(o.Sections), o.Header.ShStrNdx)

	fmt.Fprintf(&b, "\n[Nr] %-20s %-12s %10s %10s %10s %4s %4s %3s %3s %3s\n",
		"Name", "Type", "Addr", "Offset", "Size", "ES", "Flg", "Lk", "Inf", "Al")
	for i, sh := range o.Sections {
		fmt.Fprintf(&b, "[%2d] %-20s %-12s %#10x %#10x %#10x %4d %4x %3d %3d %3d\n",
			i, o.SectionName(sh), sh.Type, sh.Addr, sh.Offset, sh.Size, sh.EntSize, uint64(sh.Flags), sh.Link, sh.Info, sh.AddAlign)
	}

	if o.HasSymbols {
		fmt.Fprintf(&b, "\n%4s: %-18s %8s %-8s %-8s %10s %s\n",
			"Num", "Value", "Size", "Type", "Bind", "Index", "Name")
		for i, s := range o.Symbols {
			fmt.Fprintf(&b, "%4d: %#018x %8d %-8s %-8s %10s %s\n",
				i, s.Val, s.Size, s.Type(), s.Bind(), s.Index(), o.SymbolName(s))
		}
	}

	return b.String()
}
