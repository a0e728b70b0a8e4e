// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// A SecondCount is the number of samples whose timestamp falls in one
// whole second.
type SecondCount struct {
	// Second is the epoch time of the start of the second.
	Second float64
	Count  int
}

// PerSecond counts the samples of s in each whole epoch second, in
// ascending order of second. Seconds with no samples are omitted.
//
// Applied to a request counter metric, each count is the request rate
// observed during that second.
func (s SampleSet) PerSecond() []SecondCount {
	if len(s) == 0 {
		return nil
	}
	secs := make([]float64, len(s))
	for i, smp := range s {
		secs[i] = math.Floor(smp.Time)
	}
	// A group's key becomes a constant column with no rows of its
	// own, so AggCount needs another column to count.
	var b table.Builder
	b.Add("second", secs).Add("time", s.Times())
	agg := ggstat.Agg("second")(ggstat.AggCount("count")).F(b.Done())
	out := table.Flatten(table.SortBy(agg, "second"))

	xs := out.MustColumn("second").([]float64)
	ns := out.MustColumn("count").([]int)
	counts := make([]SecondCount, len(xs))
	for i := range counts {
		counts[i] = SecondCount{xs[i], ns[i]}
	}
	return counts
}

// Counts returns just the per-second counts of s in ascending order of
// second, as float64 for use as a statistical sample.
func Counts(sc []SecondCount) []float64 {
	ns := make([]float64, len(sc))
	for i, c := range sc {
		ns[i] = float64(c.Count)
	}
	return ns
}
