// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package smooth reduces noise in load-test measurements.
//
// Latency smooths a time-ordered set of request durations into a
// trend line. CDF turns a sequence of per-second request counts into
// a smoothed cumulative distribution of the request rate.
//
// Both take an explicit Config and a Method, and return a Result
// holding one or more labeled Series ready to be rendered. When a
// method's minimum-sample precondition is not met, it does not fail:
// it applies the documented fallback and records why in
// Result.Fallback.
package smooth

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownMethod is returned for a method name that does not
	// parse, or a method that does not apply to the requested kind
	// of data.
	ErrUnknownMethod = errors.New("unknown smoothing method")

	// ErrInsufficientData reports that a method's minimum-sample
	// precondition was unmet and its fallback was used instead. It
	// is only ever returned in Result.Fallback, never as a failure.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrBadConfig is returned by Config.Validate.
	ErrBadConfig = errors.New("invalid smoothing configuration")
)

// A Method selects a smoothing algorithm.
type Method int

const (
	// Raw passes measurements through unsmoothed.
	Raw Method = iota
	// Rolling is a centered moving average over a fixed number of
	// samples.
	Rolling
	// Bucketed aggregates samples into fixed-width time buckets.
	Bucketed
	// Polynomial is a degree-3 Savitzky-Golay filter.
	Polynomial
	// Interpolated fits a monotone cubic through the unique points
	// of a CDF.
	Interpolated
	// Gaussian convolves the CDF with a gaussian kernel.
	Gaussian
	// Binned approximates the CDF with equal-width histogram bins.
	Binned
	// Dual renders the raw data faintly behind a smoothed series.
	Dual

	numMethods
)

// methodNames are the names used on the command line and in output
// file names.
var methodNames = [numMethods]string{
	Raw:          "raw",
	Rolling:      "rolling",
	Bucketed:     "resample",
	Polynomial:   "savgol",
	Interpolated: "interpolate",
	Gaussian:     "gaussian",
	Binned:       "binned",
	Dual:         "both",
}

var methodAliases = map[string]Method{
	"bucketed":     Bucketed,
	"polynomial":   Polynomial,
	"interpolated": Interpolated,
	"dual":         Dual,
}

func (m Method) String() string {
	if m < 0 || m >= numMethods {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod parses a method name. It accepts the names returned by
// Method.String as well as the long names "bucketed", "polynomial",
// "interpolated", and "dual".
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range methodNames {
		if n == name {
			return Method(m), nil
		}
	}
	if m, ok := methodAliases[name]; ok {
		return m, nil
	}
	return 0, errors.Wrapf(ErrUnknownMethod, "%q", name)
}

// LatencyMethods returns the methods accepted by Latency.
func LatencyMethods() []Method {
	return []Method{Raw, Rolling, Bucketed, Polynomial, Dual}
}

// CDFMethods returns the methods accepted by CDF.
func CDFMethods() []Method {
	return []Method{Raw, Interpolated, Gaussian, Binned, Dual}
}

func checkMethod(m Method, valid []Method, kind string) error {
	for _, v := range valid {
		if m == v {
			return nil
		}
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = v.String()
	}
	return errors.Wrapf(ErrUnknownMethod, "%s does not apply to %s (want one of %s)", m, kind, strings.Join(names, ", "))
}

// Config holds the parameters of every smoothing method. A Config is
// passed to each call; there are no package-level defaults.
type Config struct {
	// Window is the number of samples averaged by Rolling and Dual,
	// and the width of the Polynomial filter. An even Polynomial
	// width is increased by one.
	Window int

	// Bucket is the width of the Bucketed time intervals.
	Bucket time.Duration

	// MinBucketCount is the fewest samples a bucket must hold to be
	// reported.
	MinBucketCount int

	// PolyOrder is the degree of the Polynomial filter.
	PolyOrder int

	// Factor scales the amount of CDF smoothing: the Gaussian kernel
	// width as a percentage of the sample count, and the number of
	// Binned bins as a fraction of it.
	Factor float64

	// Points is the number of evenly spaced points at which the
	// Interpolated curve is evaluated.
	Points int

	// MinUniquePoints is the fewest distinct values needed to fit
	// the Interpolated curve.
	MinUniquePoints int
}

// DefaultConfig returns the default smoothing parameters.
func DefaultConfig() Config {
	return Config{
		Window:          50,
		Bucket:          time.Second,
		MinBucketCount:  3,
		PolyOrder:       3,
		Factor:          0.5,
		Points:          500,
		MinUniquePoints: 5,
	}
}

// Validate reports whether c is usable.
func (c Config) Validate() error {
	switch {
	case c.Window < 1:
		return errors.Wrapf(ErrBadConfig, "window %d must be at least 1", c.Window)
	case c.Bucket <= 0:
		return errors.Wrapf(ErrBadConfig, "bucket %v must be positive", c.Bucket)
	case c.MinBucketCount < 1:
		return errors.Wrapf(ErrBadConfig, "minimum bucket count %d must be at least 1", c.MinBucketCount)
	case c.PolyOrder < 0:
		return errors.Wrapf(ErrBadConfig, "polynomial order %d must not be negative", c.PolyOrder)
	case c.Factor < 0 || math.IsNaN(c.Factor) || math.IsInf(c.Factor, 0):
		return errors.Wrapf(ErrBadConfig, "smoothing factor %v must be a non-negative number", c.Factor)
	case c.Points < 2:
		return errors.Wrapf(ErrBadConfig, "points %d must be at least 2", c.Points)
	case c.MinUniquePoints < 3:
		return errors.Wrapf(ErrBadConfig, "minimum unique points %d must be at least 3", c.MinUniquePoints)
	}
	return nil
}

// A Point is one (x, y) pair of a smoothed series.
type Point struct {
	X, Y float64
}

// Shape says how a Series should be drawn.
type Shape int

const (
	// Line connects consecutive points.
	Line Shape = iota
	// StepPost holds each y value until the next x.
	StepPost
	// StepMid changes y halfway between consecutive x values.
	StepMid
	// ErrorBars draws each point with a vertical bar of ±YErr,
	// joined by a line.
	ErrorBars
)

// Emphasis says how prominently a Series should be drawn.
type Emphasis int

const (
	Primary Emphasis = iota
	Background
)

// A Series is one labeled sequence of points.
type Series struct {
	Label    string
	Shape    Shape
	Emphasis Emphasis
	Points   []Point

	// YErr and Counts, if non-nil, parallel Points and give the
	// standard deviation and number of samples behind each point.
	YErr   []float64
	Counts []int
}

// XYs returns the x and y coordinates of s's points.
func (s *Series) XYs() (xs, ys []float64) {
	xs = make([]float64, len(s.Points))
	ys = make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	return
}

// A Result is the outcome of smoothing one data set.
type Result struct {
	Method Method

	// Series are in drawing order: background series first.
	Series []Series

	// Fallback, if non-nil, wraps ErrInsufficientData and explains
	// which fallback was used.
	Fallback error

	// Dropped is the number of Bucketed buckets suppressed for
	// holding fewer than MinBucketCount samples.
	Dropped int
}

// Primary returns the last primary series of r, or nil if there is
// none.
func (r *Result) Primary() *Series {
	for i := len(r.Series) - 1; i >= 0; i-- {
		if r.Series[i].Emphasis == Primary {
			return &r.Series[i]
		}
	}
	return nil
}

func pointsOf(xs, ys []float64) []Point {
	pts := make([]Point, len(xs))
	for i := range pts {
		pts[i] = Point{xs[i], ys[i]}
	}
	return pts
}

func insufficient(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInsufficientData, format, args...)
}
