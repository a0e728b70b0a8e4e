// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smooth

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// polySeries returns the Polynomial series of ys, or its fallback.
func polySeries(xs, ys []float64, cfg Config) (ser Series, fallback, err error) {
	w := cfg.Window
	if w%2 == 0 {
		w++
	}
	if len(ys) <= cfg.Window {
		eff := reducedWindow(len(ys))
		fallback = insufficient("%d samples for a %d-sample filter; using a %d-sample rolling average", len(ys), w, eff)
		return Series{
			Label:  fmt.Sprintf("Rolling Average (%d points)", eff),
			Points: rollingMean(xs, ys, eff),
		}, fallback, nil
	}
	order := cfg.PolyOrder
	if order >= w {
		order = w - 1
	}
	sm, err := savitzkyGolay(ys, w, order)
	if err != nil {
		return Series{}, nil, err
	}
	return Series{
		Label:  fmt.Sprintf("Savitzky-Golay Filter (%d window)", w),
		Points: pointsOf(xs, sm),
	}, nil, nil
}

// sgFilter is a least-squares polynomial fit over a window of fixed
// odd width.
type sgFilter struct {
	half int
	pos  []float64  // window positions scaled to [-1, 1]
	pinv *mat.Dense // (order+1) x width pseudo-inverse of the design matrix
}

func newSGFilter(width, order int) (*sgFilter, error) {
	half := width / 2
	pos := make([]float64, width)
	for j := range pos {
		if half > 0 {
			pos[j] = float64(j-half) / float64(half)
		}
	}

	// Vandermonde design matrix: a[j][k] = pos[j]^k.
	a := mat.NewDense(width, order+1, nil)
	for j, u := range pos {
		p := 1.0
		for k := 0; k <= order; k++ {
			a.Set(j, k, p)
			p *= u
		}
	}
	ident := mat.NewDense(width, width, nil)
	for j := 0; j < width; j++ {
		ident.Set(j, j, 1)
	}
	var pinv mat.Dense
	if err := pinv.Solve(a, ident); err != nil {
		return nil, errors.Wrap(err, "savitzky-golay coefficients")
	}
	return &sgFilter{half, pos, &pinv}, nil
}

// fit returns the polynomial coefficients of the least-squares fit to
// window, which must have the filter's width.
func (f *sgFilter) fit(window []float64) []float64 {
	var beta mat.VecDense
	beta.MulVec(f.pinv, mat.NewVecDense(len(window), window))
	return beta.RawVector().Data
}

// eval evaluates the polynomial with coefficients beta at window
// position j.
func (f *sgFilter) eval(beta []float64, j int) float64 {
	u := f.pos[j]
	y := 0.0
	for k := len(beta) - 1; k >= 0; k-- {
		y = y*u + beta[k]
	}
	return y
}

// savitzkyGolay smooths ys with a Savitzky-Golay filter of the given
// odd width and polynomial order, producing one output per input.
// Interior points are the fitted polynomial's value at the center of
// their window. The first and last width/2 points are the value of
// the polynomial fitted to the first and last full window.
// len(ys) must be at least width.
func savitzkyGolay(ys []float64, width, order int) ([]float64, error) {
	n := len(ys)
	out := make([]float64, n)
	if width <= 1 {
		copy(out, ys)
		return out, nil
	}
	f, err := newSGFilter(width, order)
	if err != nil {
		return nil, err
	}

	// The fitted value at the window center is the constant term,
	// so interior points are a convolution with the first row of
	// the pseudo-inverse.
	coef := f.pinv.RawRowView(0)
	h := f.half
	for i := h; i < n-h; i++ {
		win := ys[i-h : i+h+1]
		y := 0.0
		for j, c := range coef {
			y += c * win[j]
		}
		out[i] = y
	}

	head := f.fit(ys[:width])
	for j := 0; j < h; j++ {
		out[j] = f.eval(head, j)
	}
	tail := f.fit(ys[n-width:])
	for j := width - h; j < width; j++ {
		out[n-width+j] = f.eval(tail, j)
	}
	return out, nil
}
