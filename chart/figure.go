// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"math"

	"github.com/loadplot/loadplot/smooth"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Figure is a single plot of smoothed series with reference lines.
type Figure struct {
	Title          string
	XLabel, YLabel string

	// Series are drawn in order, so background series should come
	// first.
	Series []smooth.Series

	// Markers are drawn over the series.
	Markers []Marker
}

// Dash selects the stroke pattern of a Marker.
type Dash int

const (
	Solid Dash = iota
	Dashed
	Dotted
)

func (d Dash) dashes() []vg.Length {
	switch d {
	case Dashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case Dotted:
		return []vg.Length{vg.Points(1.5), vg.Points(2)}
	}
	return nil
}

// A Marker is a reference line spanning the whole plot, such as a
// percentile.
type Marker struct {
	Label string
	Value float64

	// Vertical markers are drawn at x == Value; others at y ==
	// Value.
	Vertical bool

	Color color.Color
	Dash  Dash

	// Width is the stroke width. It defaults to 2 points.
	Width vg.Length
}

// Plot builds the gonum plot for f.
func (f *Figure) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = Gray
	grid.Horizontal.Color = Gray
	p.Add(grid)

	for i := range f.Series {
		s := &f.Series[i]
		if len(s.Points) == 0 {
			continue
		}
		if err := addSeries(p, s); err != nil {
			return nil, errors.Wrapf(err, "series %q", s.Label)
		}
	}
	for _, m := range f.Markers {
		if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
			continue
		}
		r := &refLine{m: m}
		p.Add(r)
		if m.Label != "" {
			p.Legend.Add(m.Label, r)
		}
	}
	p.Legend.Top = true
	p.Legend.Padding = vg.Millimeter
	return p, nil
}

// Draw implements Graphic. A figure that fails to build draws nothing;
// use Plot to observe the error.
func (f *Figure) Draw(c draw.Canvas) {
	p, err := f.Plot()
	if err != nil {
		return
	}
	p.Draw(c)
}

func addSeries(p *plot.Plot, s *smooth.Series) error {
	xys := make(plotter.XYs, len(s.Points))
	for i, pt := range s.Points {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}

	style := draw.LineStyle{Color: DarkBlue, Width: vg.Points(2)}
	if s.Emphasis == smooth.Background {
		style = draw.LineStyle{Color: LightBlue, Width: vg.Points(0.5)}
	}

	if s.Shape == smooth.ErrorBars && len(s.YErr) == len(s.Points) {
		bars := errPoints{XYs: xys, YErrors: make(plotter.YErrors, len(s.YErr))}
		for i, e := range s.YErr {
			bars.YErrors[i].Low, bars.YErrors[i].High = e, e
		}
		eb, err := plotter.NewYErrorBars(bars)
		if err != nil {
			return err
		}
		eb.LineStyle = style
		eb.CapWidth = vg.Points(6)
		p.Add(eb)

		// The mean line sits on top of the bars.
		style = draw.LineStyle{Color: Navy, Width: vg.Points(1.5)}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.LineStyle = style
	switch s.Shape {
	case smooth.StepPost:
		line.StepStyle = plotter.PostStep
	case smooth.StepMid:
		line.StepStyle = plotter.MidStep
	}
	p.Add(line)
	if s.Label != "" {
		p.Legend.Add(s.Label, line)
	}
	return nil
}

type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// refLine is a plot.Plotter drawing a line across the full width or
// height of the data area.
type refLine struct {
	m Marker
}

func (r *refLine) style() draw.LineStyle {
	w := r.m.Width
	if w == 0 {
		w = vg.Points(2)
	}
	clr := r.m.Color
	if clr == nil {
		clr = color.Black
	}
	return draw.LineStyle{Color: clr, Width: w, Dashes: r.m.Dash.dashes()}
}

// Plot implements plot.Plotter.
func (r *refLine) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	if r.m.Vertical {
		x := trX(r.m.Value)
		if c.ContainsX(x) {
			c.StrokeLine2(r.style(), x, c.Min.Y, x, c.Max.Y)
		}
		return
	}
	y := trY(r.m.Value)
	if c.ContainsY(y) {
		c.StrokeLine2(r.style(), c.Min.X, y, c.Max.X, y)
	}
}

// DataRange implements plot.DataRanger. A marker widens only the axis
// it crosses.
func (r *refLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	inf := math.Inf(1)
	if r.m.Vertical {
		return r.m.Value, r.m.Value, inf, -inf
	}
	return inf, -inf, r.m.Value, r.m.Value
}

// Thumbnail implements plot.Thumbnailer.
func (r *refLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(r.style(), c.Min.X, y, c.Max.X, y)
}
