// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aclements/ld64/internal/driver"
)

var (
	flagOutput     string
	flagLibDirs    []string
	flagLibs       []string
	flagEmulation  string
	flagZ          []string
	flagStatic     bool
	flagAsNeeded   bool
	flagBuildID    bool
	flagStartGroup bool
	flagEndGroup   bool
	flagPlugin     string
	flagPluginOpt  []string
	flagHashStyle  string
	flagDump       string
)

// rootCmd is the ld64 command line: it accepts
// the full GNU-ld-shaped surface, but only -L/-l/the positional
// OBJECTS list reach the core pipeline. Everything else is parsed and
// silently honored as a no-op, matching a real linker's tolerance for
// flags it doesn't need to act on.
var rootCmd = &cobra.Command{
	Use:   "ld64 [flags] OBJECTS...",
	Short: "static-linker front end for ELF64 little-endian x86_64 relocatable objects",
	Long: `ld64 decodes object files and archives, resolves symbols across them,
garbage-collects unreferenced archive members, and builds a merged
output-section model. It stops short of relocation application and
output-image layout.`,
	Args: cobra.MinimumNArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := driver.Options{
			Objects: args,
			LibDirs: flagLibDirs,
			Libs:    flagLibs,
		}
		ctx, err := driver.Run(opts)
		if err != nil {
			return err
		}
		if flagDump != "" {
			return runDump(cmd, ctx, flagDump)
		}
		fmt.Printf("%s: %d object(s) alive, output %s (layout not emitted)\n",
			color.GreenString("ld64"), len(ctx.ObjectIter()), flagOutput)
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", "a.out", "output file name (accepted; no image is written)")
	f.StringArrayVarP(&flagLibDirs, "library-path", "L", nil, "add DIR to the library search path")
	f.StringArrayVarP(&flagLibs, "library", "l", nil, "search the archive libNAME.a")
	f.StringVarP(&flagEmulation, "emulation", "m", "elf_x86_64", "target emulation (accepted, ignored)")
	f.StringArrayVarP(&flagZ, "keyword", "z", nil, "linker keyword option (accepted, ignored)")
	f.BoolVarP(&flagStatic, "static", "s", false, "link statically (accepted, no-op)")
	f.BoolVar(&flagAsNeeded, "as-needed", false, "accepted, ignored")
	f.BoolVar(&flagBuildID, "build-id", false, "accepted, ignored")
	f.BoolVar(&flagStartGroup, "start-group", false, "accepted, ignored")
	f.BoolVar(&flagEndGroup, "end-group", false, "accepted, ignored")
	f.StringVarP(&flagPlugin, "plugin", "p", "", "accepted, ignored")
	f.StringArrayVar(&flagPluginOpt, "plugin-opt", nil, "accepted, ignored")
	f.StringVar(&flagHashStyle, "hash-style", "", "accepted, ignored")
	f.StringVar(&flagDump, "dump", "", "print a diagnostic instead of linking: headers, asm, or stats")
}
