// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smooth

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/loadplot/loadplot/loadmath"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

// CDF computes the cumulative distribution of counts, typically the
// per-second request counts of a run, smoothed with method m. x is a
// count and y the fraction of counts at or below it.
//
// Raw emits the empirical CDF: the sorted counts paired with (i+1)/n.
//
// Interpolated collapses equal counts to their largest cumulative
// fraction and fits a monotone cubic through the resulting points,
// evaluated at cfg.Points evenly spaced counts spanning the data. With
// fewer than cfg.MinUniquePoints distinct counts it returns the
// collapsed points unchanged.
//
// Gaussian convolves the raw cumulative fractions with a gaussian
// kernel of standard deviation cfg.Factor*n/100 samples, keeping the
// sorted counts as x. The result may dip slightly where the raw CDF
// rises sharply.
//
// Binned divides [min, max] into max(20, round(n*cfg.Factor)) equal
// bins and emits, at each bin center, the fraction of counts at or
// below that center. The last point is pinned to 1.
//
// Dual emits the raw CDF as a background step series under the
// Interpolated curve.
func CDF(counts []float64, m Method, cfg Config) (*Result, error) {
	if err := checkMethod(m, CDFMethods(), "count distributions"); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, errors.Wrap(loadmath.ErrEmptySample, "cdf")
	}

	xs := loadmath.NewSample(counts).Values
	ys := rawCumulative(len(xs))
	res := &Result{Method: m}
	switch m {
	case Raw:
		res.Series = []Series{{Label: "CDF", Points: pointsOf(xs, ys)}}

	case Interpolated:
		ser, fb := interpSeries(xs, cfg)
		ser.Label = fmt.Sprintf("Interpolated CDF (%d points)", cfg.Points)
		res.Series, res.Fallback = []Series{ser}, fb

	case Gaussian:
		sigma := cfg.Factor * float64(len(xs)) / 100
		res.Series = []Series{{
			Label:  fmt.Sprintf("Gaussian Smoothed (σ=%.1f)", sigma),
			Points: pointsOf(xs, gaussianFilter(ys, sigma)),
		}}

	case Binned:
		res.Series = []Series{binnedSeries(xs, cfg.Factor)}

	case Dual:
		ser, fb := interpSeries(xs, cfg)
		ser.Label = "Interpolated CDF"
		raw := Series{
			Label:    "Raw CDF (steps)",
			Shape:    StepPost,
			Emphasis: Background,
			Points:   pointsOf(xs, ys),
		}
		res.Series, res.Fallback = []Series{raw, ser}, fb
	}
	return res, nil
}

func rawCumulative(n int) []float64 {
	ys := make([]float64, n)
	for i := range ys {
		ys[i] = float64(i+1) / float64(n)
	}
	return ys
}

// uniqueCDF returns the distinct values of sorted and, for each, the
// fraction of values at or below it.
func uniqueCDF(sorted []float64) (xs, ys []float64) {
	var b table.Builder
	b.Add("x", sorted)
	// Widen 1 keeps the domain at the data's bounds; the default pads
	// it with extra points at y=0 and y=1.
	ecdf := table.Flatten(ggstat.ECDF{X: "x", Domain: ggstat.DomainData{Widen: 1}}.F(b.Done()))
	return ecdf.MustColumn("x").([]float64), ecdf.MustColumn("cumulative density").([]float64)
}

func interpSeries(sorted []float64, cfg Config) (Series, error) {
	ux, uy := uniqueCDF(sorted)
	if len(ux) < cfg.MinUniquePoints {
		return Series{Points: pointsOf(ux, uy)},
			insufficient("%d distinct values, need %d to fit a curve; using the raw points", len(ux), cfg.MinUniquePoints)
	}
	var curve interp.FritschButland
	if err := curve.Fit(ux, uy); err != nil {
		return Series{Points: pointsOf(ux, uy)},
			insufficient("curve fit failed (%v); using the raw points", err)
	}

	lo, hi := stats.Bounds(ux)
	grid := vec.Linspace(lo, hi, cfg.Points)
	grid[len(grid)-1] = hi
	pts := make([]Point, 0, len(grid))
	for _, x := range grid {
		if x < lo || x > hi {
			continue
		}
		y := curve.Predict(x)
		if math.IsNaN(y) {
			continue
		}
		pts = append(pts, Point{x, y})
	}
	return Series{Points: pts}, nil
}

// gaussianFilter convolves ys with a gaussian kernel of standard
// deviation sigma samples, truncated at four standard deviations.
// Samples beyond either end are taken from the mirror image of ys
// about its edge, edge sample included.
func gaussianFilter(ys []float64, sigma float64) []float64 {
	out := make([]float64, len(ys))
	radius := int(4*sigma + 0.5)
	if sigma <= 0 || radius == 0 {
		copy(out, ys)
		return out
	}
	dist := stats.NormalDist{Mu: 0, Sigma: sigma}
	kernel := make([]float64, 2*radius+1)
	for k := range kernel {
		kernel[k] = dist.PDF(float64(k - radius))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	n := len(ys)
	for i := range ys {
		y := 0.0
		for k, w := range kernel {
			y += w * ys[reflectIndex(i+k-radius, n)]
		}
		out[i] = y
	}
	return out
}

// reflectIndex maps i onto [0, n) by repeatedly mirroring about the
// ends of the sequence: d c b a | a b c d | d c b a.
func reflectIndex(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// binnedSeries computes the Binned CDF of the ascending values
// sorted.
func binnedSeries(sorted []float64, factor float64) Series {
	n := len(sorted)
	bins := int(math.Round(float64(n) * factor))
	if bins < 20 {
		bins = 20
	}
	ser := Series{
		Label: fmt.Sprintf("Binned CDF (%d bins)", bins),
		Shape: StepMid,
	}

	lo, hi := sorted[0], sorted[n-1]
	if lo == hi {
		ser.Points = []Point{{lo, 1}}
		return ser
	}
	edges := vec.Linspace(lo, hi, bins+1)
	ser.Points = make([]Point, bins)
	for i := range ser.Points {
		c := (edges[i] + edges[i+1]) / 2
		ser.Points[i] = Point{c, stat.CDF(c, stat.Empirical, sorted, nil)}
	}
	// The last center lies half a bin below the maximum; the curve
	// ends at 1 like the raw CDF.
	ser.Points[bins-1].Y = 1
	return ser
}
