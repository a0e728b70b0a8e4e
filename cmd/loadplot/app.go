// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/loadplot/loadplot/chart"
	"github.com/loadplot/loadplot/internal/config"
	"github.com/loadplot/loadplot/loadmath"
	"github.com/loadplot/loadplot/report"
	"github.com/loadplot/loadplot/smooth"
	"github.com/loadplot/loadplot/storagecmp"
	"github.com/loadplot/loadplot/telemetry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type app struct {
	stdout io.Writer
	log    *logrus.Logger

	configFile string
	verbose    bool
}

func newApp(stdout, stderr io.Writer) *app {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &app{stdout: stdout, log: log}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loadplot",
		Short:         "Plot and summarize k6 load test telemetry",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.log.Out)
	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "read settings from `file` (yaml, toml or json)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log smoothing details")
	config.AddOutputFlags(pf)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
	root.AddCommand(a.latencyCmd(), a.rpsCmd(), a.storageCmd())
	return root
}

func (a *app) loadConfig(cmd *cobra.Command, rename map[string]string) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), a.configFile, rename)
	if err != nil {
		return nil, err
	}
	a.log.Debugf("configuration: %+v", *cfg)
	return cfg, nil
}

// parseMethod parses name as one of the methods in valid.
func parseMethod(name string, valid []smooth.Method) (smooth.Method, error) {
	m, err := smooth.ParseMethod(name)
	if err != nil {
		return 0, err
	}
	for _, v := range valid {
		if m == v {
			return m, nil
		}
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = v.String()
	}
	return 0, errors.Wrapf(smooth.ErrUnknownMethod, "%q (want one of %s)", name, strings.Join(names, ", "))
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError{errors.Errorf("%s needs at least %d input file", cmd.Name(), n)}
		}
		return nil
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{errors.Errorf("%s needs exactly %d input file, got %d", cmd.Name(), n, len(args))}
		}
		return nil
	}
}

// fileLabel makes label safe to use in a file name.
func fileLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, label)
}

func (a *app) logResult(res *smooth.Result, cfg smooth.Config) {
	if res.Fallback != nil {
		a.log.Warnf("%s smoothing fell back: %v", res.Method, res.Fallback)
	}
	if res.Dropped > 0 {
		a.log.Debugf("dropped %d buckets with fewer than %d samples", res.Dropped, cfg.MinBucketCount)
	}
	for _, s := range res.Series {
		a.log.Debugf("series %q: %d points", s.Label, len(s.Points))
	}
}

// emit draws fig into the sink and then prints sum. Nothing is written
// if fig cannot be built.
func (a *app) emit(sink chart.Sink, name string, fig *chart.Figure, sum *report.Summary) error {
	p, err := fig.Plot()
	if err != nil {
		return err
	}
	return a.emitPlot(sink, name, p, func(w io.Writer) error { return sum.Write(w) })
}

func (a *app) emitPlot(sink chart.Sink, name string, g chart.Graphic, summarize func(io.Writer) error) error {
	path, err := sink.Write(name, g)
	if err != nil {
		return err
	}
	if err := summarize(a.stdout); err != nil {
		return err
	}
	a.log.Infof("Plot saved as %s", path)
	return nil
}

// A usageError is an error in how loadplot was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsage(err error) bool {
	var u usageError
	switch {
	case errors.As(err, &u),
		errors.Is(err, smooth.ErrUnknownMethod),
		errors.Is(err, smooth.ErrBadConfig),
		errors.Is(err, config.ErrInvalid),
		errors.Is(err, report.ErrUnknownFormat):
		return true
	}
	// Cobra reports unknown subcommands as plain errors.
	return strings.HasPrefix(err.Error(), "unknown command")
}

func exitStatus(err error) int {
	if isUsage(err) {
		return 2
	}
	return 1
}

// class names the kind of failure err represents.
func class(err error) string {
	switch {
	case isUsage(err):
		return "usage"
	case errors.Is(err, chart.ErrDependencyMissing):
		return "dependency missing"
	case errors.Is(err, telemetry.ErrEmptyResult):
		return "empty result"
	case errors.Is(err, telemetry.ErrSourceUnreadable):
		return "source unreadable"
	case errors.Is(err, loadmath.ErrEmptySample):
		return "empty sample"
	case errors.Is(err, storagecmp.ErrNoBaseline):
		return "no baseline"
	}
	return "failed"
}

// hint returns advice for fixing err, if there is any.
func hint(err error) string {
	switch {
	case isUsage(err):
		return "run 'loadplot help' for usage"
	case errors.Is(err, chart.ErrDependencyMissing):
		return "choose an available image format with --format"
	case errors.Is(err, telemetry.ErrEmptyResult):
		return "check the metric name with --metric"
	case errors.Is(err, storagecmp.ErrNoBaseline):
		return fmt.Sprintf("the listing needs a configuration named %q", storagecmp.BaselineName)
	}
	return ""
}

// report logs err as a single diagnostic line.
func (a *app) report(err error) {
	entry := a.log.WithField("class", class(err))
	if h := hint(err); h != "" {
		entry = entry.WithField("hint", h)
	}
	entry.Error(err)
}
