// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loadmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	check := func(xs []float64, q, want float64) {
		t.Helper()
		got := Percentile(xs, q)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Percentile(%v, %v) = %v, want %v", xs, q, got, want)
		}
	}

	check([]float64{1}, 0.5, 1)
	check([]float64{1, 2}, 0.5, 1.5)
	check([]float64{1, 2, 3, 4}, 0.5, 2.5)
	check([]float64{1, 2, 3, 4, 5}, 0.5, 3)
	check([]float64{1, 2, 3, 4, 5}, 0.95, 4.8)
	check([]float64{0, 10}, 0.99, 9.9)
	check([]float64{1, 2, 3}, 0, 1)
	check([]float64{1, 2, 3}, 1, 3)
	check([]float64{1, 2, 3}, -1, 1)
	check([]float64{1, 2, 3}, 2, 3)

	assert.True(t, math.IsNaN(Percentile(nil, 0.5)))
}

func TestNewSampleDoesNotMutate(t *testing.T) {
	in := []float64{3, 1, 2}
	s := NewSample(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
	assert.Equal(t, []float64{1, 2, 3}, s.Values)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestSummarizeTwoLevels(t *testing.T) {
	var xs []float64
	for i := 0; i < 50; i++ {
		xs = append(xs, 10)
	}
	for i := 0; i < 50; i++ {
		xs = append(xs, 20)
	}
	sum, err := Summarize(xs)
	require.NoError(t, err)

	// The median falls between the two levels under linear
	// interpolation; the tail is entirely the upper level.
	assert.InDelta(t, 15, sum.P50, 1e-9)
	assert.InDelta(t, 20, sum.P95, 1e-9)
	assert.InDelta(t, 20, sum.P99, 1e-9)
	assert.InDelta(t, 15, sum.Mean, 1e-9)
	assert.Equal(t, 20.0, sum.Max)
	assert.Equal(t, 10.0, sum.Min)
	assert.Equal(t, 100, sum.N)
}

func TestSummarizeOutlier(t *testing.T) {
	sum, err := Summarize([]float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 15})
	require.NoError(t, err)
	assert.Equal(t, 5.0, sum.P50)
	assert.InDelta(t, 14.1, sum.P99, 1e-9)
	assert.InDelta(t, 6, sum.Mean, 1e-9)
	assert.Equal(t, 15.0, sum.Max)
}

func TestSummaryOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := 1 + r.Intn(300)
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = r.ExpFloat64() * 100
		}
		sum, err := Summarize(xs)
		require.NoError(t, err)
		if !(sum.P50 <= sum.P95 && sum.P95 <= sum.P99 && sum.P99 <= sum.Max) {
			t.Fatalf("trial %d: percentiles out of order: %+v", trial, sum)
		}
		if sum.Mean < sum.Min || sum.Mean > sum.Max {
			t.Fatalf("trial %d: mean %v outside [%v, %v]", trial, sum.Mean, sum.Min, sum.Max)
		}
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	a, err := Summarize([]float64{4, 1, 3, 2, 9})
	require.NoError(t, err)
	b, err := Summarize([]float64{9, 2, 3, 1, 4})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSummaryFormat(t *testing.T) {
	sum := Summary{N: 3, P50: 1, P95: 2, P99: 3, Mean: 2, Max: 3}
	assert.Equal(t, "n=3 p50=1.0ms p95=2.0ms p99=3.0ms mean=2.0ms max=3.0ms", sum.Format("ms"))
}
