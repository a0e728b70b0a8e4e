// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/loadplot/loadplot/chart"
	"github.com/loadplot/loadplot/internal/config"
	"github.com/loadplot/loadplot/loadmath"
	"github.com/loadplot/loadplot/report"
	"github.com/loadplot/loadplot/smooth"
	"github.com/loadplot/loadplot/telemetry"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func (a *app) rpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rps [flags] [label=]file...",
		Short: "Plot the distribution of requests per second",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, config.RPSKeys)
			if err != nil {
				return err
			}
			m, err := parseMethod(cfg.RPSMethod, smooth.CDFMethods())
			if err != nil {
				return err
			}
			sink := cfg.Writer()
			for _, in := range (telemetry.Inputs{Paths: args, AllowLabels: true}).List() {
				if err := a.rps(in, m, cfg, sink); err != nil {
					return err
				}
			}
			return nil
		},
	}
	config.AddRPSFlags(cmd.Flags())
	return cmd
}

func (a *app) rps(in telemetry.Input, m smooth.Method, cfg *config.Config, sink chart.Sink) error {
	a.log.Infof("Loading %s from %s...", in.Label, in.Path)
	tab, err := in.Load()
	if err != nil {
		return err
	}
	samples, err := tab.Samples(cfg.RPSMetric)
	if err != nil {
		return err
	}
	counts := telemetry.Counts(samples.PerSecond())
	a.log.Debugf("%d requests in %d seconds", samples.Len(), len(counts))

	if m != smooth.Raw {
		a.log.Infof("Using %s smoothing...", m)
	}
	sc := cfg.Smooth()
	res, err := smooth.CDF(counts, m, sc)
	if err != nil {
		return err
	}
	a.logResult(res, sc)
	st, err := loadmath.Summarize(counts)
	if err != nil {
		return err
	}

	fig, name := rpsFigure(in.Label, m, res, st)
	sum := &report.Summary{
		Title:  "RPS statistics for " + in.Label,
		Unit:   "RPS",
		Stats:  st,
		Output: cfg.SummaryFormat(),
	}
	return a.emit(sink, name, fig, sum)
}

// rpsFigure returns the CDF figure of res and the file name it is saved
// under. The percentile markers come from the raw counts, whatever the
// method.
func rpsFigure(label string, m smooth.Method, res *smooth.Result, st loadmath.Summary) (*chart.Figure, string) {
	fig := &chart.Figure{
		Title:  "CDF of Requests per Second - " + label,
		XLabel: "Requests per Second",
		YLabel: "Cumulative Probability",
		Series: res.Series,
		Markers: []chart.Marker{
			{Label: fmt.Sprintf("P50: %.1f RPS", st.P50), Value: st.P50, Vertical: true, Color: chart.Green, Width: vg.Points(1.5)},
			{Label: fmt.Sprintf("P95: %.1f RPS", st.P95), Value: st.P95, Vertical: true, Color: chart.Orange, Dash: chart.Dashed},
			{Label: fmt.Sprintf("P99: %.1f RPS", st.P99), Value: st.P99, Vertical: true, Color: chart.Red, Dash: chart.Dotted},
		},
	}
	name := fileLabel(label) + "_rps_cdf"
	if m != smooth.Raw {
		fig.Title = "Smoothed CDF of Requests per Second - " + label
		name += "_smooth_" + m.String()
	}
	return fig, name
}
