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

func (a *app) latencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latency [flags] [label=]file...",
		Short: "Plot request duration over time",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, config.LatencyKeys)
			if err != nil {
				return err
			}
			m, err := parseMethod(cfg.LatencyMethod, smooth.LatencyMethods())
			if err != nil {
				return err
			}
			sink := cfg.Writer()
			for _, in := range (telemetry.Inputs{Paths: args, AllowLabels: true}).List() {
				if err := a.latency(in, m, cfg, sink); err != nil {
					return err
				}
			}
			return nil
		},
	}
	config.AddLatencyFlags(cmd.Flags())
	return cmd
}

func (a *app) latency(in telemetry.Input, m smooth.Method, cfg *config.Config, sink chart.Sink) error {
	a.log.Infof("Loading %s from %s...", in.Label, in.Path)
	tab, err := in.Load()
	if err != nil {
		return err
	}
	samples, err := tab.Samples(cfg.LatencyMetric)
	if err != nil {
		return err
	}
	a.log.Debugf("%d %s samples over %.1fs", samples.Len(), cfg.LatencyMetric, samples.Duration())

	if m != smooth.Raw {
		a.log.Infof("Using %s smoothing...", m)
	}
	sc := cfg.Smooth()
	res, err := smooth.Latency(samples, m, sc)
	if err != nil {
		return err
	}
	a.logResult(res, sc)
	st, err := loadmath.Summarize(samples.Values())
	if err != nil {
		return err
	}

	fig := &chart.Figure{
		Title:  "HTTP Request Duration Time Series - " + in.Label,
		XLabel: "Time (seconds)",
		YLabel: "HTTP Request Duration (ms)",
		Series: res.Series,
		Markers: []chart.Marker{
			{Label: fmt.Sprintf("P95: %.1fms", st.P95), Value: st.P95, Color: chart.Orange, Dash: chart.Dashed},
			{Label: fmt.Sprintf("P99: %.1fms", st.P99), Value: st.P99, Color: chart.Red, Dash: chart.Dotted},
		},
	}
	name := "request_times_" + fileLabel(in.Label)
	if m != smooth.Raw {
		fig.Title = "HTTP Request Duration Time Series (Smoothed) - " + in.Label
		fig.Markers = append(fig.Markers, chart.Marker{
			Label: fmt.Sprintf("Average: %.1fms", st.Mean),
			Value: st.Mean,
			Color: chart.Green,
			Width: vg.Points(1),
		})
		name += "_smooth_" + m.String()
	}
	sum := &report.Summary{
		Title:  "Statistics for " + in.Label,
		Unit:   "ms",
		Stats:  st,
		Output: cfg.SummaryFormat(),
	}
	return a.emit(sink, name, fig, sum)
}
