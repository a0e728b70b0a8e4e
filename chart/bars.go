// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A BarPanel is a bar chart with one bar per category.
type BarPanel struct {
	Title  string
	YLabel string

	Categories []string
	Values     []float64

	// Colors gives the fill of each bar. Bars without a color are
	// drawn in Gray.
	Colors []color.Color

	// Above and Inside, if non-nil, label each bar above its top
	// and at its middle. Empty strings are skipped.
	Above  []string
	Inside []string

	Legend []LegendEntry
}

// A LegendEntry is a colored swatch in a legend.
type LegendEntry struct {
	Label string
	Color color.Color
}

type swatch struct {
	color.Color
}

// Thumbnail implements plot.Thumbnailer.
func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.Color, c.ClipPolygonY(pts))
}

// Plot builds the gonum plot for b.
func (b *BarPanel) Plot() (*plot.Plot, error) {
	if len(b.Values) != len(b.Categories) {
		return nil, errors.Errorf("%d values for %d categories", len(b.Values), len(b.Categories))
	}
	p := plot.New()
	p.Title.Text = b.Title
	p.Y.Label.Text = b.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = Gray
	p.Add(grid)

	const barWidth = 40
	top := 0.0
	for i, v := range b.Values {
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(barWidth))
		if err != nil {
			return nil, errors.Wrapf(err, "bar %q", b.Categories[i])
		}
		bar.XMin = float64(i)
		bar.Color = Gray
		if i < len(b.Colors) && b.Colors[i] != nil {
			bar.Color = b.Colors[i]
		}
		bar.LineStyle.Color = color.Black
		bar.LineStyle.Width = vg.Points(1)
		p.Add(bar)
		top = math.Max(top, v)
	}
	p.NominalX(b.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if err := b.addLabels(p, b.Above, top*0.02, text.Style{}); err != nil {
		return nil, err
	}
	if err := b.addLabels(p, b.Inside, math.NaN(), text.Style{Color: color.White}); err != nil {
		return nil, err
	}
	// Leave room for the labels above the tallest bar.
	p.Y.Min = 0
	p.Y.Max = math.Max(p.Y.Max, top*1.15)

	for _, e := range b.Legend {
		p.Legend.Add(e.Label, swatch{e.Color})
	}
	p.Legend.Top = true
	return p, nil
}

// addLabels places labels over the bars. A NaN offset centers each
// label vertically in its bar; otherwise labels sit offset above the
// top of the bar.
func (b *BarPanel) addLabels(p *plot.Plot, labels []string, offset float64, sty text.Style) error {
	if labels == nil {
		return nil
	}
	var xyl plotter.XYLabels
	for i, l := range labels {
		if l == "" || i >= len(b.Values) {
			continue
		}
		y := b.Values[i] / 2
		if !math.IsNaN(offset) {
			y = b.Values[i] + offset
		}
		xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(i), Y: y})
		xyl.Labels = append(xyl.Labels, l)
	}
	if len(xyl.Labels) == 0 {
		return nil
	}
	ls, err := plotter.NewLabels(xyl)
	if err != nil {
		return err
	}
	for i := range ls.TextStyle {
		st := ls.TextStyle[i]
		if sty.Color != nil {
			st.Color = sty.Color
		}
		st.XAlign = draw.XCenter
		st.YAlign = draw.YBottom
		if math.IsNaN(offset) {
			st.YAlign = draw.YCenter
		}
		ls.TextStyle[i] = st
	}
	p.Add(ls)
	return nil
}

// A Row lays out plots side by side with equal widths.
type Row []*plot.Plot

// Draw implements Graphic.
func (r Row) Draw(c draw.Canvas) {
	if len(r) == 0 {
		return
	}
	t := draw.Tiles{
		Rows:      1,
		Cols:      len(r),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{r}, t, c)
	for i, p := range r {
		if p != nil {
			p.Draw(canvases[0][i])
		}
	}
}
