// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver sequences the front-end pipeline: archive expansion,
// per-object decode, context ingest, and the resolve / mark-live /
// reclaim passes. It is the thing the CLI adapter (cmd/ld64) calls
// into; nothing here reads argv or writes to stdout.
package driver

import (
	"fmt"
	"os"

	"github.com/aclements/ld64/internal/archive"
	"github.com/aclements/ld64/internal/elf"
	"github.com/aclements/ld64/internal/link"
	"github.com/aclements/ld64/internal/object"
)

// Options captures the inputs from the CLI surface that affect the
// core pipeline. Every other accepted flag (-m, -o, -z, -s,
// --as-needed, --build-id, --start-group, --end-group, -p,
// --plugin-opt, --hash-style) is parsed by the CLI adapter but never
// reaches here, since none of them alter core semantics.
type Options struct {
	// Objects is the positional OBJECTS… list: paths loaded directly,
	// and alive from the start (the live roots).
	Objects []string
	// LibDirs is the -L search path, in order.
	LibDirs []string
	// Libs is the -l bare-name list; each is resolved to libNAME.a
	// via LibDirs and its members are ingested not-alive.
	Libs []string
}

// Run executes the full pipeline and returns the resulting context,
// after resolve, mark-live and reclaim have all run.
func Run(opts Options) (*link.Context, error) {
	ctx := link.NewContext()

	for _, path := range opts.Objects {
		obj, err := loadObject(path)
		if err != nil {
			return nil, err
		}
		obj.Alive = true
		ctx.Push(obj)
	}

	for _, lib := range opts.Libs {
		path, err := archive.Find(opts.LibDirs, lib)
		if err != nil {
			return nil, err
		}
		if err := pushArchive(ctx, path); err != nil {
			return nil, err
		}
	}

	link.ResolveSymbol(ctx)
	if err := link.MarkLiveObjects(ctx); err != nil {
		return nil, err
	}
	ctx.ReclaimObjects()

	return ctx, nil
}

func loadObject(path string) (*object.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	raw, err := elf.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return object.Build(raw, path), nil
}

func pushArchive(ctx *link.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	members, err := archive.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, m := range members {
		raw, err := elf.Decode(m.Data)
		if err != nil {
			return fmt.Errorf("%s(%s): %w", path, m.Name, err)
		}
		obj := object.Build(raw, fmt.Sprintf("%s(%s)", path, m.Name))
		ctx.Push(obj)
	}
	return nil
}
