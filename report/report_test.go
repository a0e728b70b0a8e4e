// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"strings"
	"testing"

	"github.com/loadplot/loadplot/loadmath"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stats = loadmath.Summary{N: 100, P50: 12.125, P95: 40.3, P99: 88, Mean: 17.94, Min: 1, Max: 301.4}

func TestParseFormat(t *testing.T) {
	check := func(name string, want Format) {
		t.Helper()
		got, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
		} else if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", name, got, want)
		}
	}
	check("text", Text)
	check("CSV", CSV)
	check("html", HTML)

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Equal(t, "Format(7)", Format(7).String())
}

func TestText(t *testing.T) {
	var buf strings.Builder
	s := &Summary{Title: "HTTP Request Duration - custom-grpc", Unit: "ms", Stats: stats}
	require.NoError(t, s.Write(&buf))
	want := `HTTP Request Duration - custom-grpc
P50       12.1 ms
P95       40.3 ms
P99       88.0 ms
Average   17.9 ms
Max      301.4 ms
`
	assert.Equal(t, want, buf.String())

	// No title, no unit.
	buf.Reset()
	s = &Summary{Stats: loadmath.Summary{P50: 1, P95: 2, P99: 3, Mean: 2, Max: 3}}
	require.NoError(t, s.Write(&buf))
	assert.Equal(t, "P50      1.0\nP95      2.0\nP99      3.0\nAverage  2.0\nMax      3.0\n", buf.String())
}

func TestCSV(t *testing.T) {
	var buf strings.Builder
	s := &Summary{Title: "ignored", Unit: "RPS", Stats: stats, Output: CSV}
	require.NoError(t, s.Write(&buf))
	want := `statistic,value,unit
P50,12.125,RPS
P95,40.3,RPS
P99,88,RPS
Average,17.94,RPS
Max,301.4,RPS
`
	assert.Equal(t, want, buf.String())
}

func TestHTML(t *testing.T) {
	var buf strings.Builder
	s := &Summary{Title: "<b>RPS</b> & more", Unit: "RPS", Stats: stats, Output: HTML}
	require.NoError(t, s.Write(&buf))
	got := buf.String()
	assert.True(t, strings.HasPrefix(got, "<table class='loadplot-summary'>"), got)
	assert.Contains(t, got, "<caption>&lt;b&gt;RPS&lt;/b&gt; &amp; more</caption>")
	assert.Contains(t, got, "<tr><td>P99<td>88.0<td>RPS\n")
	assert.Equal(t, 6, strings.Count(got, "<tr>"))
	assert.NotContains(t, got, "<b>")
}

func TestWriteBadFormat(t *testing.T) {
	s := &Summary{Output: Format(-1)}
	err := s.Write(new(strings.Builder))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
