// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/loadplot/loadplot/loadmath"
	"github.com/loadplot/loadplot/smooth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runName = "20250101-quickpizza-custom-grpc-20vus-60s-t3.medium.gz"

// writeRun writes a gzipped k6 export covering 30 seconds to dir.
func writeRun(t *testing.T, dir string) string {
	t.Helper()
	var csv strings.Builder
	csv.WriteString("metric_name,timestamp,metric_value,check,error\n")
	for sec := 0; sec < 30; sec++ {
		// Between 8 and 12 requests per second.
		n := 8 + sec%5
		for j := 0; j < n; j++ {
			ts := 1700000000 + sec
			fmt.Fprintf(&csv, "http_reqs,%d,1,,\n", ts)
			fmt.Fprintf(&csv, "http_req_duration,%d,%.2f,,\n", ts, 20+float64((sec*7+j*3)%11))
		}
		fmt.Fprintf(&csv, "vus,%d,20,,\n", 1700000000+sec)
	}

	path := filepath.Join(dir, runName)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(csv.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

type result struct {
	status         int
	stdout, stderr string
	out            string // output directory
}

// loadplot runs the command with small images written to a fresh
// directory.
func loadplot(t *testing.T, args ...string) result {
	t.Helper()
	out := t.TempDir()
	args = append([]string{args[0], "-o", out, "--dpi", "20", "--width", "4", "--height", "3"}, args[1:]...)
	var stdout, stderr bytes.Buffer
	status := run(args, &stdout, &stderr)
	t.Logf("loadplot %s\n%s", strings.Join(args, " "), stderr.String())
	return result{status, stdout.String(), stderr.String(), out}
}

func (r result) files(t *testing.T) []string {
	t.Helper()
	ents, err := os.ReadDir(r.out)
	require.NoError(t, err)
	var names []string
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names
}

func TestLatency(t *testing.T) {
	path := writeRun(t, t.TempDir())

	check := func(method, file string) {
		t.Helper()
		r := loadplot(t, "latency", "-m", method, "-w", "10", path)
		require.Equal(t, 0, r.status)
		assert.Equal(t, []string{file}, r.files(t))
		assert.Contains(t, r.stdout, "Statistics for custom-grpc\n")
		assert.Contains(t, r.stdout, "P95")
		assert.Contains(t, r.stderr, "Loading custom-grpc from ")
	}
	check("raw", "request_times_custom-grpc.png")
	check("rolling", "request_times_custom-grpc_smooth_rolling.png")
	check("resample", "request_times_custom-grpc_smooth_resample.png")
	check("savgol", "request_times_custom-grpc_smooth_savgol.png")
	check("both", "request_times_custom-grpc_smooth_both.png")
	check("polynomial", "request_times_custom-grpc_smooth_savgol.png")
}

func TestLatencyLabels(t *testing.T) {
	path := writeRun(t, t.TempDir())
	r := loadplot(t, "latency", "--format", "svg", "a/b="+path, "base="+path)
	require.Equal(t, 0, r.status)
	assert.ElementsMatch(t, []string{
		"request_times_a_b_smooth_rolling.svg",
		"request_times_base_smooth_rolling.svg",
	}, r.files(t))
	assert.Contains(t, r.stderr, "Using rolling smoothing...")
}

func TestRPS(t *testing.T) {
	path := writeRun(t, t.TempDir())

	r := loadplot(t, "rps", "--summary", "csv", path)
	require.Equal(t, 0, r.status)
	assert.Equal(t, []string{"custom-grpc_rps_cdf_smooth_interpolate.png"}, r.files(t))
	// 30 seconds with 8 to 12 requests each.
	assert.Contains(t, r.stdout, "statistic,value,unit\nP50,10,RPS\n")
	assert.Contains(t, r.stdout, "Max,12,RPS\n")

	for _, m := range []string{"raw", "gaussian", "binned", "both"} {
		r := loadplot(t, "rps", "-m", m, path)
		require.Equal(t, 0, r.status, m)
		want := "custom-grpc_rps_cdf_smooth_" + m + ".png"
		if m == "raw" {
			want = "custom-grpc_rps_cdf.png"
		}
		assert.Equal(t, []string{want}, r.files(t))
	}

	// Too few distinct rates to interpolate falls back and says so.
	r = loadplot(t, "rps", "--min-unique-points", "50", "--summary", "html", path)
	require.Equal(t, 0, r.status)
	assert.Contains(t, r.stderr, "fell back")
	assert.Contains(t, r.stdout, "<table")
}

func TestRPSFigureMarkers(t *testing.T) {
	counts := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 15}
	st, err := loadmath.Summarize(counts)
	require.NoError(t, err)

	check := func(m smooth.Method, title, name string) {
		t.Helper()
		res, err := smooth.CDF(counts, m, smooth.DefaultConfig())
		require.NoError(t, err)
		fig, gotName := rpsFigure("base", m, res, st)
		assert.Equal(t, title, fig.Title)
		assert.Equal(t, name, gotName)
		require.Len(t, fig.Markers, 3)
		assert.Equal(t, "P50: 5.0 RPS", fig.Markers[0].Label)
		for _, mk := range fig.Markers {
			assert.True(t, mk.Vertical, mk.Label)
		}
		assert.Equal(t, st.P99, fig.Markers[2].Value)
	}
	check(smooth.Raw, "CDF of Requests per Second - base", "base_rps_cdf")
	check(smooth.Binned, "Smoothed CDF of Requests per Second - base", "base_rps_cdf_smooth_binned")
}

func TestStorage(t *testing.T) {
	dir := t.TempDir()
	listing := filepath.Join(dir, "storage.csv")
	require.NoError(t, os.WriteFile(listing, []byte(`configuration,total size,total objects
quickpizza-default-collector-bucket,120.1 MiB,1204
quickpizza-custom-grpc-bucket,7.0 MiB,61
`), 0666))

	r := loadplot(t, "storage", "--cost-estimate", listing)
	require.Equal(t, 0, r.status)
	assert.Equal(t, []string{"storage_comparison_bar_chart.png"}, r.files(t))
	assert.Contains(t, r.stdout, "Storage Comparison Summary:")
	assert.Contains(t, r.stdout, "Cost/mo")
	assert.Contains(t, r.stdout, "Best storage efficiency: Custom gRPC")

	noBase := filepath.Join(dir, "nobase.csv")
	require.NoError(t, os.WriteFile(noBase, []byte("configuration,total size,total objects\ncustom-grpc,7 MiB,61\n"), 0666))
	r = loadplot(t, "storage", noBase)
	assert.Equal(t, 1, r.status)
	assert.Contains(t, r.stderr, `class="no baseline"`)
	assert.Empty(t, r.files(t))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeRun(t, dir)
	cfg := filepath.Join(dir, "loadplot.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("latency-method: resample\nformat: svg\n"), 0666))

	r := loadplot(t, "latency", "--config", cfg, path)
	require.Equal(t, 0, r.status)
	assert.Equal(t, []string{"request_times_custom-grpc_smooth_resample.svg"}, r.files(t))

	// The command line wins.
	r = loadplot(t, "latency", "--config", cfg, "-m", "raw", path)
	require.Equal(t, 0, r.status)
	assert.Equal(t, []string{"request_times_custom-grpc.svg"}, r.files(t))
}

func TestFailures(t *testing.T) {
	dir := t.TempDir()
	path := writeRun(t, dir)

	check := func(status int, class string, args ...string) result {
		t.Helper()
		r := loadplot(t, args...)
		assert.Equal(t, status, r.status)
		assert.Contains(t, r.stderr, "level=error")
		assert.Contains(t, r.stderr, "class="+class)
		assert.Empty(t, r.files(t), "no image on failure")
		assert.Empty(t, r.stdout)
		return r
	}
	check(2, "usage", "latency", "-m", "gaussian", path)
	check(2, "usage", "rps", "-m", "savgol", path)
	check(2, "usage", "latency", "-m", "bogus", path)
	check(2, "usage", "latency", "--no-such-flag", path)
	check(2, "usage", "latency")
	check(2, "usage", "storage", "a.csv", "b.csv")
	check(2, "usage", "latency", "-w", "0", path)
	check(2, "usage", "frobnicate")
	check(2, "usage", "latency", "--config", filepath.Join(dir, "missing.yaml"), path)

	check(1, `"source unreadable"`, "latency", filepath.Join(dir, "missing.csv"))
	check(1, `"empty result"`, "latency", "--metric", "grpc_req_duration", path)
	r := check(1, `"dependency missing"`, "latency", "--format", "bmp", path)
	assert.Contains(t, r.stderr, "hint=")
	assert.Contains(t, r.stderr, "png")

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("metric_name,timestamp,metric_value\nhttp_req_duration,oops,1\n"), 0666))
	r = check(1, `"source unreadable"`, "latency", bad)
	assert.Contains(t, r.stderr, "bad.csv:2")
}

func TestClass(t *testing.T) {
	assert.Equal(t, "failed", class(errors.New("disk on fire")))
	assert.Equal(t, "", hint(errors.New("disk on fire")))
	assert.Equal(t, 1, exitStatus(errors.New("disk on fire")))
	assert.Equal(t, 2, exitStatus(usageError{errors.New("bad flag")}))
	assert.Equal(t, "a_b_c", fileLabel(`a/b\c`))
}
