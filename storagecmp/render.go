// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storagecmp

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/loadplot/loadplot/chart"
	"github.com/loadplot/loadplot/internal/texttab"
	"github.com/loadplot/loadplot/units"
	"gonum.org/v1/plot"
)

// ChartName is the base name of the comparison chart.
const ChartName = "storage_comparison_bar_chart"

// Options control how a Comparison is rendered.
type Options struct {
	// ShowSavings labels each bar with its change from the
	// baseline.
	ShowSavings bool

	// ShowCost labels each size bar with its estimated monthly
	// cost at CostPerGB per GiB-month.
	ShowCost  bool
	CostPerGB float64
}

// DefaultCostPerGB is the default storage price in dollars per
// GiB-month.
const DefaultCostPerGB = 0.023

// Bar colors.
var (
	BaselineColor = chart.Hex("#e74c3c")

	MassiveColor  = chart.Hex("#27ae60") // > 90% smaller
	GoodColor     = chart.Hex("#2ecc71") // > 50% smaller
	ModerateColor = chart.Hex("#f39c12") // smaller
	WorseColor    = chart.Hex("#e67e22")

	MoreColor  = chart.Hex("#3498db")
	FewerColor = chart.Hex("#9b59b6")
	SameColor  = chart.Hex("#95a5a6")
)

// SizeColor returns the color of r's size bar.
func SizeColor(r Row) color.Color {
	switch {
	case r.Baseline:
		return BaselineColor
	case r.Savings > 90:
		return MassiveColor
	case r.Savings > 50:
		return GoodColor
	case r.Savings > 0:
		return ModerateColor
	}
	return WorseColor
}

// ObjectColor returns the color of r's object count bar.
func ObjectColor(r Row) color.Color {
	switch {
	case r.Baseline:
		return BaselineColor
	case r.ObjectChange > 0:
		return MoreColor
	case r.ObjectChange < 0:
		return FewerColor
	}
	return SameColor
}

// Panels returns the size and object count bar charts for c.
func (c *Comparison) Panels(opts Options) (*chart.BarPanel, *chart.BarPanel) {
	size := &chart.BarPanel{
		Title:  "Storage Size Comparison",
		YLabel: "Storage Size (MiB)",
		Legend: []chart.LegendEntry{
			{Label: "Baseline (Default)", Color: BaselineColor},
			{Label: "Moderate Savings", Color: ModerateColor},
			{Label: "Good Savings (>50%)", Color: GoodColor},
			{Label: "Massive Savings (>90%)", Color: MassiveColor},
		},
	}
	objects := &chart.BarPanel{
		Title:  "Object Count Comparison",
		YLabel: "Number of Objects",
		Legend: []chart.LegendEntry{
			{Label: "Baseline (Default)", Color: BaselineColor},
			{Label: "More Objects", Color: MoreColor},
			{Label: "Fewer Objects", Color: FewerColor},
		},
	}
	for _, r := range c.Rows {
		above := units.FormatMiB(r.SizeMiB)
		if opts.ShowCost {
			above += fmt.Sprintf("\n$%.3f/mo", r.MonthlyCost(opts.CostPerGB))
		}
		inside := ""
		if opts.ShowSavings && r.Savings > 0 {
			inside = fmt.Sprintf("-%.0f%%", r.Savings)
		}
		size.Categories = append(size.Categories, r.Name)
		size.Values = append(size.Values, r.SizeMiB)
		size.Colors = append(size.Colors, SizeColor(r))
		size.Above = append(size.Above, above)
		size.Inside = append(size.Inside, inside)

		inside = ""
		if opts.ShowSavings && r.ObjectChange != 0 {
			inside = fmt.Sprintf("%+.0f%%", r.ObjectChange)
		}
		objects.Categories = append(objects.Categories, r.Name)
		objects.Values = append(objects.Values, float64(r.Objects))
		objects.Colors = append(objects.Colors, ObjectColor(r))
		objects.Above = append(objects.Above, strconv.FormatInt(r.Objects, 10))
		objects.Inside = append(objects.Inside, inside)
	}
	return size, objects
}

// Chart returns the two panels side by side.
func (c *Comparison) Chart(opts Options) (chart.Row, error) {
	size, objects := c.Panels(opts)
	sp, err := size.Plot()
	if err != nil {
		return nil, err
	}
	op, err := objects.Plot()
	if err != nil {
		return nil, err
	}
	return chart.Row([]*plot.Plot{sp, op}), nil
}

func change(pct float64) string {
	if pct == 0 {
		return "baseline"
	}
	return fmt.Sprintf("%+.0f%%", pct)
}

// WriteSummary writes a table of c followed by its highlights.
func (c *Comparison) WriteSummary(w io.Writer, opts Options) error {
	var tab texttab.Table
	tab.Row().Cell("Configuration").Cell("Size (MiB)", texttab.Right).Cell("Size Change", texttab.Right).
		Cell("Objects", texttab.Right).Cell("Obj Change", texttab.Right)
	if opts.ShowCost {
		tab.Cell("Cost/mo", texttab.Right)
	}
	tab.Rule()
	for _, r := range c.Rows {
		sizeChange, objChange := change(r.SizeChange()), change(r.ObjectChange)
		if r.Baseline {
			sizeChange, objChange = "baseline", "baseline"
		}
		tab.Row().Cell(r.Name).
			Cell(strconv.FormatFloat(r.SizeMiB, 'f', 1, 64), texttab.Right).
			Cell(sizeChange, texttab.Right).
			Cell(strconv.FormatInt(r.Objects, 10), texttab.Right).
			Cell(objChange, texttab.Right)
		if opts.ShowCost {
			tab.Cell(fmt.Sprintf("$%.3f", r.MonthlyCost(opts.CostPerGB)), texttab.Right)
		}
	}

	if _, err := fmt.Fprintf(w, "Storage Comparison Summary:\n"); err != nil {
		return err
	}
	if err := tab.Format(w); err != nil {
		return err
	}
	best := c.Smallest()
	lo, hi := c.ObjectRange()
	_, err := fmt.Fprintf(w, "\nBest storage efficiency: %s (%s)\nObject count range: %d-%d objects\nPotential savings: Up to %.0f%% reduction in storage costs\n",
		best.Name, units.FormatSize(best.SizeMiB), lo, hi, c.MaxSavings())
	return err
}
