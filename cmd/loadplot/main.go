// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Loadplot plots and summarizes k6 load test telemetry.
//
// Usage:
//
//	loadplot latency [-m method] [-w window] [-r bucket] [label=]file...
//	loadplot rps [-m method] [-f factor] [-p points] [label=]file...
//	loadplot storage [--no-savings] [--cost-estimate] listing.csv
//
// Each telemetry file is a k6 CSV export, optionally gzip or zstd
// compressed, with at least the columns metric_name, timestamp and
// metric_value. A file is reported under the configuration label
// derived from its name, so
//
//	20250101-quickpizza-custom-grpc-20vus-60s-t3.medium.gz
//
// is labeled "custom-grpc". A "label=" prefix overrides this.
//
// The latency command plots the http_req_duration metric over time,
// smoothed by one of these methods:
//
//	raw       unsmoothed samples
//	rolling   centered moving average of -w samples (the default)
//	resample  mean and standard deviation of -r wide time buckets
//	savgol    Savitzky-Golay filter of width -w
//	both      raw samples with the rolling average on top
//
// The rps command counts http_reqs per second and plots the cumulative
// distribution of those counts, smoothed by one of:
//
//	raw          empirical CDF
//	interpolate  monotone cubic interpolation at -p points (the default)
//	gaussian     Gaussian filter with a width of -f percent of the samples
//	binned       cumulative histogram
//	both         empirical CDF with the interpolated curve on top
//
// The storage command compares the bucket sizes and object counts of
// exporter configurations against the default collector.
//
// Images are written to the directory given by -o in the format given
// by --format. Summary statistics are printed to standard output in the
// format given by --summary (text, csv or html); progress is logged to
// standard error.
//
// Any flag may also be set in a YAML, TOML or JSON file named by
// --config. Flags on the command line take precedence.
//
// Loadplot exits with status 1 if an input cannot be processed and
// status 2 for usage errors.
package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run runs loadplot with the given arguments and returns its exit
// status.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		a.report(err)
		return exitStatus(err)
	}
	return 0
}
