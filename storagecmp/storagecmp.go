// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storagecmp compares the storage footprint of telemetry
// exporter configurations.
//
// The input is a CSV listing, per configuration, the total size and
// number of objects it left in a bucket:
//
//	configuration,total size,total objects
//	quickpizza-default-collector-bucket,120.1 MiB,1204
//	quickpizza-custom-grpc-bucket,7.0 MiB,61
//
// Every configuration is compared against the default collector.
package storagecmp

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/loadplot/loadplot/telemetry"
	"github.com/loadplot/loadplot/units"
	"github.com/pkg/errors"
)

// ErrNoBaseline is returned when the input has no usable baseline
// configuration.
var ErrNoBaseline = errors.New("no baseline configuration")

// BaselineName is the display name of the configuration every other
// one is compared against.
const BaselineName = "Default Collector"

// Column names required in the CSV header.
const (
	ColConfiguration = "configuration"
	ColSize          = "total size"
	ColObjects       = "total objects"
)

// A Run is the storage left behind by one configuration.
type Run struct {
	Configuration string  // As written in the input
	Name          string  // Display name, see CleanName
	SizeMiB       float64
	Objects       int64
}

// Load reads runs from the named CSV file, which may be compressed.
func Load(path string) ([]Run, error) {
	rc, err := telemetry.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc, path)
}

// Read reads runs from CSV data in r. fileName is used in error
// messages.
func Read(r io.Reader, fileName string) ([]Run, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &telemetry.SyntaxError{FileName: fileName, Line: 1, Msg: "missing header row"}
	} else if err != nil {
		return nil, csvError(fileName, err)
	}
	cols := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	var idx [3]int
	for i, name := range []string{ColConfiguration, ColSize, ColObjects} {
		c, ok := cols[name]
		if !ok {
			return nil, &telemetry.SyntaxError{FileName: fileName, Line: 1, Msg: fmt.Sprintf("missing %q column", name)}
		}
		idx[i] = c
	}

	var runs []Run
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(fileName, err)
		}
		line, _ := cr.FieldPos(0)
		bad := func(format string, args ...interface{}) error {
			return &telemetry.SyntaxError{FileName: fileName, Line: line, Msg: fmt.Sprintf(format, args...)}
		}

		conf := strings.TrimSpace(rec[idx[0]])
		if conf == "" {
			return nil, bad("empty configuration")
		}
		size, err := units.ParseSize(rec[idx[1]])
		if err != nil {
			return nil, bad("%v", err)
		}
		objects, err := parseCount(rec[idx[2]])
		if err != nil {
			return nil, bad("bad %s %q", ColObjects, rec[idx[2]])
		}
		runs = append(runs, Run{conf, CleanName(conf), size, objects})
	}
	return runs, nil
}

func csvError(fileName string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &telemetry.SyntaxError{FileName: fileName, Line: perr.Line, Msg: perr.Err.Error()}
	}
	return &telemetry.ReadError{FileName: fileName, Err: err}
}

// parseCount parses an object count. Counts written as floats, such as
// "61.0", are accepted if they are whole.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, errors.Errorf("bad count %q", s)
	}
	return int64(f), nil
}

var displayNames = map[string]string{
	"http-json":             "Custom HTTP-JSON",
	"default-collector":     "Default Collector",
	"custom-http-json-gzip": "Custom HTTP-JSON+gzip",
	"custom-grcp-gzip":      "Custom gRPC+gzip", // sic, as the bucket is named
	"custom-grpc-gzip":      "Custom gRPC+gzip",
	"custom-grpc":           "Custom gRPC",
}

// CleanName returns the display name of a configuration. It removes
// the "quickpizza-" and "-bucket" affixes, then maps known names to
// their display names and title-cases the rest.
func CleanName(conf string) string {
	name := strings.ReplaceAll(conf, "quickpizza-", "")
	name = strings.ReplaceAll(name, "-bucket", "")
	if d, ok := displayNames[name]; ok {
		return d
	}
	return titleCase(name)
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the others, so "custom-otlp" becomes "Custom-Otlp".
func titleCase(s string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		if prevLetter {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(unicode.ToTitle(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return sb.String()
}

// A Row is a Run compared with the baseline.
type Row struct {
	Run

	// Baseline is set on the baseline row itself.
	Baseline bool

	// Savings is how much smaller the run is than the baseline, in
	// percent. It is negative if the run is larger.
	Savings float64

	// ObjectChange is the change in object count relative to the
	// baseline, in percent.
	ObjectChange float64
}

// SizeChange returns the change in size relative to the baseline, in
// percent.
func (r Row) SizeChange() float64 {
	return -r.Savings
}

// MonthlyCost returns the cost of storing r for a month at the given
// price per GiB-month.
func (r Row) MonthlyCost(perGB float64) float64 {
	return r.SizeMiB / 1024 * perGB
}

// A Comparison is a set of runs compared with the baseline, largest
// first.
type Comparison struct {
	Rows     []Row
	Baseline Run
}

// Compare compares runs with the run named BaselineName. It returns an
// error matching ErrNoBaseline if there is no such run or the baseline
// is empty.
func Compare(runs []Run) (*Comparison, error) {
	base := -1
	for i, r := range runs {
		if r.Name == BaselineName {
			base = i
			break
		}
	}
	if base < 0 {
		return nil, errors.Wrapf(ErrNoBaseline, "no %q configuration among %d", BaselineName, len(runs))
	}
	b := runs[base]
	if b.SizeMiB <= 0 {
		return nil, errors.Wrapf(ErrNoBaseline, "%s has size %v", b.Configuration, b.SizeMiB)
	}

	c := &Comparison{Baseline: b, Rows: make([]Row, len(runs))}
	for i, r := range runs {
		row := Row{Run: r, Baseline: i == base}
		row.Savings = (b.SizeMiB - r.SizeMiB) / b.SizeMiB * 100
		if b.Objects != 0 {
			row.ObjectChange = float64(r.Objects-b.Objects) / float64(b.Objects) * 100
		}
		c.Rows[i] = row
	}
	sort.SliceStable(c.Rows, func(i, j int) bool {
		return c.Rows[i].SizeMiB > c.Rows[j].SizeMiB
	})
	return c, nil
}

// Smallest returns the row with the smallest size.
func (c *Comparison) Smallest() Row {
	best := c.Rows[0]
	for _, r := range c.Rows[1:] {
		if r.SizeMiB < best.SizeMiB {
			best = r
		}
	}
	return best
}

// ObjectRange returns the smallest and largest object counts.
func (c *Comparison) ObjectRange() (lo, hi int64) {
	lo, hi = c.Rows[0].Objects, c.Rows[0].Objects
	for _, r := range c.Rows[1:] {
		if r.Objects < lo {
			lo = r.Objects
		}
		if r.Objects > hi {
			hi = r.Objects
		}
	}
	return lo, hi
}

// MaxSavings returns the largest saving of any row, in percent.
func (c *Comparison) MaxSavings() float64 {
	max := math.Inf(-1)
	for _, r := range c.Rows {
		max = math.Max(max, r.Savings)
	}
	return max
}
