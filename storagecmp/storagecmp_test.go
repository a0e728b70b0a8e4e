// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storagecmp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loadplot/loadplot/chart"
	"github.com/loadplot/loadplot/telemetry"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

const listing = `configuration,total size,total objects
quickpizza-custom-grpc-bucket,7.0 MiB,61
quickpizza-default-collector-bucket,120.1 MiB,1204
quickpizza-http-json-bucket,48 MiB,1204
quickpizza-custom-otlp-bucket,0.125 GiB,2000
quickpizza-custom-grcp-gzip-bucket,512 KiB,30
`

func readListing(t *testing.T) []Run {
	t.Helper()
	runs, err := Read(strings.NewReader(listing), "listing.csv")
	require.NoError(t, err)
	return runs
}

func TestCleanName(t *testing.T) {
	check := func(in, want string) {
		t.Helper()
		if got := CleanName(in); got != want {
			t.Errorf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}
	check("quickpizza-default-collector-bucket", "Default Collector")
	check("quickpizza-custom-grcp-gzip-bucket", "Custom gRPC+gzip")
	check("custom-grpc", "Custom gRPC")
	check("quickpizza-http-json-bucket", "Custom HTTP-JSON")
	check("quickpizza-custom-http-json-gzip-bucket", "Custom HTTP-JSON+gzip")
	check("quickpizza-custom-otlp-bucket", "Custom-Otlp")
	check("my OTLP run2x", "My Otlp Run2X")
}

func TestRead(t *testing.T) {
	runs := readListing(t)
	require.Len(t, runs, 5)
	assert.Equal(t, Run{"quickpizza-custom-grpc-bucket", "Custom gRPC", 7, 61}, runs[0])
	assert.Equal(t, 128.0, runs[3].SizeMiB)
	assert.Equal(t, 0.5, runs[4].SizeMiB)

	// Column order and header case don't matter; whole float counts
	// are accepted.
	runs, err := Read(strings.NewReader("Total Objects, Total Size, Configuration\n61.0, 7 MiB, a\n"), "x.csv")
	require.NoError(t, err)
	assert.Equal(t, []Run{{"a", "A", 7, 61}}, runs)

	runs, err = Read(strings.NewReader("\ufeffconfiguration,total size,total objects\nb,2 GiB,3\n"), "bom.csv")
	require.NoError(t, err)
	assert.Equal(t, []Run{{"b", "B", 2048, 3}}, runs)
}

func TestReadErrors(t *testing.T) {
	check := func(data, want string) {
		t.Helper()
		_, err := Read(strings.NewReader(data), "x.csv")
		if !assert.Error(t, err) {
			return
		}
		assert.True(t, errors.Is(err, telemetry.ErrSourceUnreadable), "%v", err)
		assert.Contains(t, err.Error(), want)
	}
	check("", "x.csv:1: missing header row")
	check("configuration,total size\n", `missing "total objects" column`)
	check("configuration,total size,total objects\na,big,3\n", "x.csv:2: ")
	check("configuration,total size,total objects\na,1 MiB,3\nb,1 MiB,many\n", `x.csv:3: bad total objects "many"`)
	check("configuration,total size,total objects\na,1 MiB,3.5\n", "x.csv:2:")
	check("configuration,total size,total objects\n,1 MiB,3\n", "empty configuration")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.csv")
	require.NoError(t, os.WriteFile(path, []byte(listing), 0666))
	runs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, runs, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, telemetry.ErrSourceUnreadable))
}

func TestCompare(t *testing.T) {
	c, err := Compare(readListing(t))
	require.NoError(t, err)
	assert.Equal(t, "Default Collector", c.Baseline.Name)

	var names []string
	for _, r := range c.Rows {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Custom-Otlp", "Default Collector", "Custom HTTP-JSON", "Custom gRPC", "Custom gRPC+gzip"}, names)

	otlp, base, json, grpc, gz := c.Rows[0], c.Rows[1], c.Rows[2], c.Rows[3], c.Rows[4]
	assert.True(t, base.Baseline)
	assert.False(t, grpc.Baseline)
	assert.Zero(t, base.Savings)
	assert.InDelta(t, (120.1-7)/120.1*100, grpc.Savings, 1e-9)
	assert.InDelta(t, -grpc.Savings, grpc.SizeChange(), 1e-9)
	assert.InDelta(t, (61-1204)/1204.0*100, grpc.ObjectChange, 1e-9)
	assert.Zero(t, json.ObjectChange)

	assert.Equal(t, BaselineColor, SizeColor(base))
	assert.Equal(t, MassiveColor, SizeColor(grpc))
	assert.Equal(t, GoodColor, SizeColor(json))
	assert.Equal(t, WorseColor, SizeColor(otlp))
	assert.Equal(t, BaselineColor, ObjectColor(base))
	assert.Equal(t, MoreColor, ObjectColor(otlp))
	assert.Equal(t, FewerColor, ObjectColor(gz))
	assert.Equal(t, SameColor, ObjectColor(json))
	assert.Equal(t, ModerateColor, SizeColor(Row{Savings: 10}))

	assert.Equal(t, "Custom gRPC+gzip", c.Smallest().Name)
	lo, hi := c.ObjectRange()
	assert.Equal(t, int64(30), lo)
	assert.Equal(t, int64(2000), hi)
	assert.InDelta(t, (120.1-0.5)/120.1*100, c.MaxSavings(), 1e-9)

	assert.InDelta(t, 1024*0.023/1024, Row{Run: Run{SizeMiB: 1024}}.MonthlyCost(0.023), 1e-12)
}

func TestCompareNoBaseline(t *testing.T) {
	_, err := Compare([]Run{{Name: "Custom gRPC", SizeMiB: 7}})
	assert.True(t, errors.Is(err, ErrNoBaseline))

	_, err = Compare(nil)
	assert.True(t, errors.Is(err, ErrNoBaseline))

	_, err = Compare([]Run{{Name: BaselineName}})
	assert.True(t, errors.Is(err, ErrNoBaseline))
}

func TestPanels(t *testing.T) {
	c, err := Compare(readListing(t))
	require.NoError(t, err)

	size, objects := c.Panels(Options{ShowSavings: true, ShowCost: true, CostPerGB: DefaultCostPerGB})
	assert.Equal(t, "Storage Size Comparison", size.Title)
	assert.Equal(t, []float64{128, 120.1, 48, 7, 0.5}, size.Values)
	assert.Equal(t, "120.1 MiB\n$0.003/mo", size.Above[1])
	assert.Equal(t, []string{"", "", "-60%", "-94%", "-100%"}, size.Inside)
	assert.Equal(t, []string{"2000", "1204", "1204", "61", "30"}, objects.Above)
	assert.Equal(t, []string{"+66%", "", "", "-95%", "-98%"}, objects.Inside)
	assert.Len(t, objects.Legend, 3)

	size, objects = c.Panels(Options{})
	assert.Equal(t, "7.0 MiB", size.Above[3])
	assert.Equal(t, []string{"", "", "", "", ""}, size.Inside)
	assert.Equal(t, []string{"", "", "", "", ""}, objects.Inside)

	row, err := c.Chart(Options{ShowSavings: true})
	require.NoError(t, err)
	require.Len(t, row, 2)

	w := &chart.Writer{Dir: t.TempDir(), DPI: 20, Width: 8 * vg.Inch, Height: 4 * vg.Inch}
	path, err := w.Write(ChartName, row)
	require.NoError(t, err)
	assert.Equal(t, ChartName+".png", filepath.Base(path))
}

func TestWriteSummary(t *testing.T) {
	c, err := Compare(readListing(t))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, c.WriteSummary(&buf, Options{}))
	want := `Storage Comparison Summary:
Configuration      Size (MiB)  Size Change  Objects  Obj Change
---------------------------------------------------------------
Custom-Otlp             128.0          +7%     2000        +66%
Default Collector       120.1     baseline     1204    baseline
Custom HTTP-JSON         48.0         -60%     1204    baseline
Custom gRPC               7.0         -94%       61        -95%
Custom gRPC+gzip          0.5        -100%       30        -98%

Best storage efficiency: Custom gRPC+gzip (512 KiB)
Object count range: 30-2000 objects
Potential savings: Up to 100% reduction in storage costs
`
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, c.WriteSummary(&buf, Options{ShowCost: true, CostPerGB: 1}))
	assert.Contains(t, buf.String(), "Cost/mo")
	assert.Contains(t, buf.String(), "$0.125")
}
