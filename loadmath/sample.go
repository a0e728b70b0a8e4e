// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loadmath computes descriptive statistics over load-test
// measurements: interpolated percentiles, mean, and extremes.
//
// Statistics are always computed over raw measurements. Smoothing a
// series compresses its peaks, so percentiles taken from a smoothed
// series underestimate the tail; callers overlay the statistics
// computed here on top of whatever series they render.
package loadmath

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

// ErrEmptySample is returned when statistics are requested for a
// sample with no values.
var ErrEmptySample = errors.New("empty sample")

// A Sample is a set of measurements of a single metric.
type Sample struct {
	// Values are the measured values, in ascending order.
	Values []float64
}

// NewSample constructs a Sample from a set of measurements. The
// caller's slice is not modified.
func NewSample(values []float64) *Sample {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	// Sort values for fast order statistics.
	sort.Float64s(sorted)
	return &Sample{sorted}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Quantile returns the q'th quantile of s, for q in [0, 1].
//
// This is the linear interpolation order statistic (Hyndman and Fan
// type 7): the value at rank q*(n-1), interpolating between the two
// nearest ranks when that rank is not an integer. It returns NaN for
// an empty sample.
func (s *Sample) Quantile(q float64) float64 {
	return Percentile(s.Values, q)
}

// Percentile returns the q'th quantile of the ascending slice sorted,
// using the same interpolation as Sample.Quantile. q is clamped to
// [0, 1].
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	frac := h - lo
	if frac == 0 {
		return sorted[i]
	}
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// A Summary summarizes a Sample. All fields are in the unit of the
// measured values.
type Summary struct {
	// N is the number of measurements.
	N int

	P50, P95, P99 float64

	Mean     float64
	Min, Max float64
}

// Summarize computes the Summary of s. It returns ErrEmptySample if s
// has no values.
func (s *Sample) Summarize() (Summary, error) {
	if len(s.Values) == 0 {
		return Summary{}, ErrEmptySample
	}
	smp := s.sample()
	min, max := smp.Bounds()
	return Summary{
		N:    len(s.Values),
		P50:  s.Quantile(0.50),
		P95:  s.Quantile(0.95),
		P99:  s.Quantile(0.99),
		Mean: smp.Mean(),
		Min:  min,
		Max:  max,
	}, nil
}

// Summarize is shorthand for NewSample(values).Summarize().
func Summarize(values []float64) (Summary, error) {
	return NewSample(values).Summarize()
}

// Format renders the summary on one line with the given unit suffix
// appended to every value, e.g. "ms".
func (s Summary) Format(unit string) string {
	return fmt.Sprintf("n=%d p50=%.1f%s p95=%.1f%s p99=%.1f%s mean=%.1f%s max=%.1f%s",
		s.N, s.P50, unit, s.P95, unit, s.P99, unit, s.Mean, unit, s.Max, unit)
}
