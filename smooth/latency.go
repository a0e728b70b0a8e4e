// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smooth

import (
	"fmt"

	"github.com/loadplot/loadplot/loadmath"
	"github.com/loadplot/loadplot/telemetry"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Latency smooths a time-ordered set of duration samples with method
// m. The x coordinate of every output point is seconds relative to the
// earliest sample.
//
// Rolling emits the mean of the w samples centered on each sample,
// where w is cfg.Window; samples too close to either end to have a
// full window produce no point, so the series has len(s)-w+1 points.
// Given fewer than w samples, it uses a window of len(s)/2 capped to
// [1, 10].
//
// Bucketed groups samples into cfg.Bucket-wide intervals aligned to
// the UTC day of the first sample and emits the mean, standard
// deviation, and count of each interval holding at least
// cfg.MinBucketCount samples. The x coordinate is the start of the
// interval.
//
// Polynomial emits one point per sample, equivalent to a
// Savitzky-Golay filter of degree cfg.PolyOrder and odd width
// cfg.Window (or cfg.Window+1). If there are not more than cfg.Window
// samples, it falls back to Rolling with the reduced window.
//
// Dual emits the raw samples as a background series under the
// Rolling series.
func Latency(s telemetry.SampleSet, m Method, cfg Config) (*Result, error) {
	if err := checkMethod(m, LatencyMethods(), "latency samples"); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, errors.Wrap(loadmath.ErrEmptySample, "latency")
	}

	xs, ys := s.RelativeTimes(), s.Values()
	res := &Result{Method: m}
	switch m {
	case Raw:
		res.Series = []Series{{
			Label:  "Request Duration",
			Points: pointsOf(xs, ys),
		}}

	case Rolling:
		ser, fb := rollingSeries(xs, ys, cfg.Window)
		res.Series, res.Fallback = []Series{ser}, fb

	case Bucketed:
		ser, dropped := bucketSeries(s, cfg)
		res.Series, res.Dropped = []Series{ser}, dropped

	case Polynomial:
		ser, fb, err := polySeries(xs, ys, cfg)
		if err != nil {
			return nil, err
		}
		res.Series, res.Fallback = []Series{ser}, fb

	case Dual:
		ser, fb := rollingSeries(xs, ys, cfg.Window)
		raw := Series{
			Label:    "Raw Data",
			Emphasis: Background,
			Points:   pointsOf(xs, ys),
		}
		res.Series, res.Fallback = []Series{raw, ser}, fb
	}
	return res, nil
}

// reducedWindow is the window used when there are fewer samples than
// the requested window.
func reducedWindow(n int) int {
	w := n / 2
	if w > 10 {
		w = 10
	}
	if w < 1 {
		w = 1
	}
	return w
}

func rollingSeries(xs, ys []float64, w int) (Series, error) {
	var fallback error
	if len(ys) < w {
		eff := reducedWindow(len(ys))
		fallback = insufficient("%d samples for a %d-sample window; using %d", len(ys), w, eff)
		w = eff
	}
	return Series{
		Label:  fmt.Sprintf("Rolling Average (%d points)", w),
		Points: rollingMean(xs, ys, w),
	}, fallback
}

// rollingMean returns the centered moving average of ys over windows
// of w samples, placed at xs. For even w the window extends one sample
// further before the center than after it. Only full windows are
// emitted.
func rollingMean(xs, ys []float64, w int) []Point {
	n := len(ys)
	if w < 1 || w > n {
		return nil
	}
	// sums[k] is the sum of ys[:k].
	sums := make([]float64, n+1)
	floats.CumSum(sums[1:], ys)

	half := (w - 1) / 2
	out := make([]Point, 0, n-w+1)
	for i := w - 1 - half; i+half < n; i++ {
		end := i + half + 1
		out = append(out, Point{xs[i], (sums[end] - sums[end-w]) / float64(w)})
	}
	return out
}
