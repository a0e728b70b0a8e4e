// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry reads load-test telemetry exported as CSV.
//
// The input is a (possibly gzip or zstd compressed) CSV file with a
// header row naming at least the columns "timestamp", "metric_name",
// and "metric_value". Timestamps are Unix epoch seconds and may be
// fractional. This is the format produced by k6's CSV output.
//
// A typical use reads the whole file once with Load or ReadTable and
// then extracts the measurements of one metric as a SampleSet:
//
//	tab, err := telemetry.Load("run.csv.gz")
//	...
//	durations, err := tab.Samples("http_req_duration")
package telemetry

import (
	"github.com/aclements/go-moremath/stats"
)

// A Sample is one observation of a metric.
type Sample struct {
	// Time is the observation time in seconds since the Unix epoch.
	Time float64

	// Value is the observed value, in the metric's own unit.
	Value float64
}

// A SampleSet is a non-empty sequence of Samples of one metric in
// ascending Time order.
type SampleSet []Sample

// Len returns the number of samples in s.
func (s SampleSet) Len() int { return len(s) }

// Start returns the time of the earliest sample in s.
func (s SampleSet) Start() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0].Time
}

// Duration returns the time between the first and last sample.
func (s SampleSet) Duration() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Time - s[0].Time
}

// Values returns the sample values in time order.
func (s SampleSet) Values() []float64 {
	vs := make([]float64, len(s))
	for i, smp := range s {
		vs[i] = smp.Value
	}
	return vs
}

// Times returns the sample times in ascending order.
func (s SampleSet) Times() []float64 {
	ts := make([]float64, len(s))
	for i, smp := range s {
		ts[i] = smp.Time
	}
	return ts
}

// RelativeTimes returns the sample times as offsets in seconds from
// the earliest sample. s itself is not modified.
func (s SampleSet) RelativeTimes() []float64 {
	ts := s.Times()
	start, _ := stats.Bounds(ts)
	for i := range ts {
		ts[i] -= start
	}
	return ts
}
