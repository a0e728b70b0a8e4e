// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report prints summary statistics of a load test run.
//
// A Summary can be printed as an aligned text table for people, as CSV
// for scripts, or as an HTML table. The text form looks like
//
//	HTTP Request Duration - custom-grpc
//	P50       12.1 ms
//	P95       40.3 ms
//	P99       88.0 ms
//	Average   17.9 ms
//	Max      301.4 ms
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/safehtml/template"
	"github.com/loadplot/loadplot/internal/texttab"
	"github.com/loadplot/loadplot/loadmath"
	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported output
// formats.
var ErrUnknownFormat = errors.New("unknown summary format")

// Format is a summary output format.
type Format int

const (
	Text Format = iota
	CSV
	HTML
)

var formatNames = []string{"text", "csv", "html"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the Format called name.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(name, n) {
			return Format(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q (want one of %s)", name, strings.Join(formatNames, ", "))
}

// A Summary is a titled set of statistics in one unit.
type Summary struct {
	Title string
	Unit  string // "ms", "RPS", etc.
	Stats loadmath.Summary

	// Output selects how Write formats the summary.
	Output Format
}

// A Stat is a single named statistic.
type Stat struct {
	Name  string
	Value float64
}

// Rows returns the statistics s prints, in order.
func (s *Summary) Rows() []Stat {
	return []Stat{
		{"P50", s.Stats.P50},
		{"P95", s.Stats.P95},
		{"P99", s.Stats.P99},
		{"Average", s.Stats.Mean},
		{"Max", s.Stats.Max},
	}
}

// Write writes s to w in s.Output format.
func (s *Summary) Write(w io.Writer) error {
	switch s.Output {
	case Text:
		return s.writeText(w)
	case CSV:
		return s.writeCSV(w)
	case HTML:
		return s.writeHTML(w)
	}
	return errors.Wrapf(ErrUnknownFormat, "%v", s.Output)
}

func (s *Summary) writeText(w io.Writer) error {
	if s.Title != "" {
		if _, err := fmt.Fprintln(w, s.Title); err != nil {
			return err
		}
	}
	var tab texttab.Table
	for _, st := range s.Rows() {
		v := strconv.FormatFloat(st.Value, 'f', 1, 64)
		if s.Unit != "" {
			v += " " + s.Unit
		}
		tab.Row().Cell(st.Name).Cell(v, texttab.Right)
	}
	return tab.Format(w)
}

func (s *Summary) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"statistic", "value", "unit"})
	for _, st := range s.Rows() {
		// Full precision; this is meant for other programs.
		cw.Write([]string{st.Name, strconv.FormatFloat(st.Value, 'f', -1, 64), s.Unit})
	}
	cw.Flush()
	return cw.Error()
}

var htmlTemplate = template.Must(template.New("summary").Parse(`<table class='loadplot-summary'>
{{- with .Title}}
<caption>{{.}}</caption>
{{- end}}
<tr><th>statistic<th>value<th>unit
{{- range .Rows}}
<tr><td>{{.Name}}<td>{{.Value}}<td>{{$.Unit}}
{{- end}}
</table>
`))

type htmlRow struct {
	Name, Value string
}

func (s *Summary) writeHTML(w io.Writer) error {
	var rows []htmlRow
	for _, st := range s.Rows() {
		rows = append(rows, htmlRow{st.Name, strconv.FormatFloat(st.Value, 'f', 1, 64)})
	}
	return htmlTemplate.Execute(w, struct {
		Title, Unit string
		Rows        []htmlRow
	}{s.Title, s.Unit, rows})
}
