// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linkstats computes summary statistics over a completed
// link's object and section population, for the --dump=stats
// diagnostic. Like internal/disasm, it is purely observational.
package linkstats

import (
	"fmt"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// ObjectSizes summarizes, across a set of objects, the distribution
// of how many bytes of live section data each one contributed.
type ObjectSizes struct {
	Count  int
	Mean   float64
	Stddev float64
	Median float64
	Max    float64
}

// Summarize computes an ObjectSizes report from one size-in-bytes
// sample per live object.
func Summarize(sizes []float64) ObjectSizes {
	if len(sizes) == 0 {
		return ObjectSizes{}
	}
	sample := stats.Sample{Xs: sizes}
	max := sizes[0]
	for _, s := range sizes {
		if s > max {
			max = s
		}
	}
	return ObjectSizes{
		Count:  len(sizes),
		Mean:   sample.Mean(),
		Stddev: sample.StdDev(),
		Median: sample.Percentile(0.5),
		Max:    max,
	}
}

func (o ObjectSizes) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "objects:     %d\n", o.Count)
	fmt.Fprintf(&b, "mean size:   %.1f\n", o.Mean)
	fmt.Fprintf(&b, "stddev:      %.1f\n", o.Stddev)
	fmt.Fprintf(&b, "median size: %.1f\n", o.Median)
	fmt.Fprintf(&b, "max size:    %.1f\n", o.Max)
	return b.String()
}

// FragmentRatio reports how much a merged section's deduplication
// shrank its fragment count relative to the number of fragment keys
// contributed across all objects, before interning.
type FragmentRatio struct {
	Section string
	Before  int
	After   int
	Ratio   float64
}

// Dedup computes the before/after fragment counts for one merged
// section.
func Dedup(section string, before, after int) FragmentRatio {
	ratio := 1.0
	if before > 0 {
		ratio = float64(after) / float64(before)
	}
	return FragmentRatio{Section: section, Before: before, After: after, Ratio: ratio}
}

func (f FragmentRatio) String() string {
	return fmt.Sprintf("%-20s %6d -> %6d (%.1f%%)", f.Section, f.Before, f.After, f.Ratio*100)
}
