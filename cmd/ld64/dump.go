// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aclements/ld64/internal/arch"
	"github.com/aclements/ld64/internal/disasm"
	"github.com/aclements/ld64/internal/link"
	"github.com/aclements/ld64/internal/linkstats"
)

// runDump prints one of the observational reports --dump selects,
// instead of running the (unimplemented) output-layout stage. None of
// these feed back into the pipeline; they only read the context
// resolve/mark-live/reclaim already produced.
func runDump(cmd *cobra.Command, ctx *link.Context, kind string) error {
	switch kind {
	case "headers":
		dumpHeaders(ctx)
	case "asm":
		dumpAsm(ctx)
	case "stats":
		dumpStats(ctx)
	default:
		return fmt.Errorf("unknown --dump kind %q (want headers, asm, or stats)", kind)
	}
	return nil
}

// dumpHeaders prints a readelf-ish tabular report of every surviving
// object's header/sections/symbols, followed by its interned globals'
// final resolution state.
func dumpHeaders(ctx *link.Context) {
	for _, obj := range ctx.ObjectIter() {
		fmt.Printf("%s: %s\n", color.CyanString("object"), obj.Name)
		fmt.Print(obj.Raw.Dump())
		if obj.Symbols == nil {
			continue
		}
		fmt.Printf("  %s\n", color.YellowString("globals"))
		for i, s := range obj.Symbols.Globals {
			raw := obj.Symbols.ElfSymbols[obj.Symbols.FirstGlobal+i]
			fmt.Printf("    %-30s %-8s value=%#x defined-by=%d\n",
				s.Name, raw.Index(), s.Value, s.DefiningObject)
		}
	}
}

// dumpAsm disassembles every alive, executable section across the
// surviving objects.
func dumpAsm(ctx *link.Context) {
	for _, obj := range ctx.ObjectIter() {
		for _, sec := range obj.Sections {
			if sec == nil || !sec.IsExec() || len(sec.Data) == 0 {
				continue
			}
			fmt.Printf("%s %s:%s\n", color.CyanString("disassembly of"), obj.Name, sec.Name)
			lines := disasm.Section(arch.AMD64, sec.Data)
			fmt.Print(disasm.Format(lines, sec.Data))
		}
	}
}

// dumpStats prints object-size and merged-section dedup summaries.
func dumpStats(ctx *link.Context) {
	var sizes []float64
	for _, obj := range ctx.ObjectIter() {
		var total int
		for _, sec := range obj.Sections {
			if sec != nil {
				total += len(sec.Data)
			}
		}
		sizes = append(sizes, float64(total))
	}
	fmt.Print(linkstats.Summarize(sizes))

	before := make(map[string]int)
	for _, obj := range ctx.ObjectIter() {
		for _, m := range obj.Mergeable {
			if m != nil && m.MergedSection != nil {
				before[m.MergedSection.Name] += len(m.Keys)
			}
		}
	}
	for _, ms := range ctx.Merged().All() {
		fmt.Println(linkstats.Dedup(ms.Name, before[ms.Name], ms.FragmentCount()))
	}
}
