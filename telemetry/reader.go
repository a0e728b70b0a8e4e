// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var (
	// ErrSourceUnreadable indicates that an input does not exist or
	// is not valid CSV, gzip, or zstd data.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrEmptyResult indicates that no rows matched the requested
	// metric.
	ErrEmptyResult = errors.New("no rows for metric")
)

// Column names required in the CSV header.
const (
	ColTimestamp = "timestamp"
	ColMetric    = "metric_name"
	ColValue     = "metric_value"

	colLine = "line"
)

// A SyntaxError represents a malformed row in a telemetry file.
// It matches ErrSourceUnreadable under errors.Is.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSourceUnreadable
}

// A ReadError records a failure to open or decode a telemetry file.
// It matches ErrSourceUnreadable under errors.Is and unwraps to the
// underlying cause.
type ReadError struct {
	FileName string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.FileName, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool {
	return target == ErrSourceUnreadable
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens the named file for reading, transparently decompressing
// gzip and zstd content. Compression is detected from the content
// itself, not from the file name. The caller must Close the result,
// which also closes the underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{path, err}
	}
	rc, err := decompress(f)
	if err != nil {
		f.Close()
		return nil, &ReadError{path, err}
	}
	return rc, nil
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func decompress(f io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(f)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "gzip")
		}
		return &readCloser{zr, []func() error{zr.Close, f.Close}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		return &readCloser{zr, []func() error{func() error { zr.Close(); return nil }, f.Close}}, nil
	}
	return &readCloser{br, []func() error{f.Close}}, nil
}

// A Table holds every row of a telemetry file.
//
// Rows are kept as read; numeric columns are parsed only for the
// metric a caller asks for, so a malformed row of an unrelated metric
// does not prevent reading the rest of the file.
type Table struct {
	fileName string
	t        *table.Table
}

// Load reads the named telemetry file into a Table. The file is
// closed before Load returns.
func Load(path string) (*Table, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadTable(rc, path)
}

// ReadTable reads CSV telemetry from r. fileName is used in error
// messages; it is purely diagnostic.
func ReadTable(r io.Reader, fileName string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SyntaxError{fileName, 1, "missing header row"}
	} else if err != nil {
		return nil, csvError(fileName, err)
	}
	cols := map[string]int{}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	var idx [3]int
	for i, name := range []string{ColTimestamp, ColMetric, ColValue} {
		c, ok := cols[name]
		if !ok {
			return nil, &SyntaxError{fileName, 1, fmt.Sprintf("missing %q column", name)}
		}
		idx[i] = c
	}

	var lines []int
	var stamps, metrics, values []string
	interns := map[string]string{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(fileName, err)
		}
		line, _ := cr.FieldPos(0)
		m := rec[idx[1]]
		if s, ok := interns[m]; ok {
			m = s
		} else {
			m = strings.Clone(m)
			interns[m] = m
		}
		lines = append(lines, line)
		stamps = append(stamps, strings.Clone(rec[idx[0]]))
		metrics = append(metrics, m)
		values = append(values, strings.Clone(rec[idx[2]]))
	}

	var b table.Builder
	b.Add(colLine, lines).Add(ColTimestamp, stamps).Add(ColMetric, metrics).Add(ColValue, values)
	return &Table{fileName, b.Done()}, nil
}

func csvError(fileName string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &SyntaxError{fileName, perr.Line, perr.Err.Error()}
	}
	return &ReadError{fileName, err}
}

// FileName returns the name the table was read from.
func (t *Table) FileName() string { return t.fileName }

// Len returns the number of data rows in t, across all metrics.
func (t *Table) Len() int { return t.t.Len() }

// Metrics returns the distinct metric names in t in the order they
// first appear.
func (t *Table) Metrics() []string {
	if t.t.Len() == 0 {
		return nil
	}
	var names []string
	for _, gid := range table.GroupBy(t.t, ColMetric).Tables() {
		names = append(names, gid.Label().(string))
	}
	return names
}

// Samples returns the samples of the named metric sorted by time.
// Rows with equal timestamps keep their file order.
//
// If no row matches metric, Samples returns an error matching
// ErrEmptyResult. If a matching row has a malformed timestamp or
// value, it returns a *SyntaxError.
func (t *Table) Samples(metric string) (SampleSet, error) {
	if t.t.Len() == 0 {
		return nil, errors.Wrapf(ErrEmptyResult, "%q", metric)
	}
	match := table.Flatten(table.FilterEq(t.t, ColMetric, metric))
	if match.Len() == 0 {
		return nil, errors.Wrapf(ErrEmptyResult, "%q", metric)
	}

	lines := match.MustColumn(colLine).([]int)
	stamps := match.MustColumn(ColTimestamp).([]string)
	values := match.MustColumn(ColValue).([]string)
	ts := make([]float64, len(stamps))
	vs := make([]float64, len(values))
	for i := range stamps {
		var err error
		if ts[i], err = parseFloat(stamps[i]); err != nil {
			return nil, &SyntaxError{t.fileName, lines[i], fmt.Sprintf("bad %s %q", ColTimestamp, stamps[i])}
		}
		if vs[i], err = parseFloat(values[i]); err != nil {
			return nil, &SyntaxError{t.fileName, lines[i], fmt.Sprintf("bad %s %q", ColValue, values[i])}
		}
	}

	var b table.Builder
	b.Add(ColTimestamp, ts).Add(ColValue, vs)
	sorted := table.Flatten(table.SortBy(b.Done(), ColTimestamp))
	ts = sorted.MustColumn(ColTimestamp).([]float64)
	vs = sorted.MustColumn(ColValue).([]float64)

	set := make(SampleSet, len(ts))
	for i := range set {
		set[i] = Sample{Time: ts[i], Value: vs[i]}
	}
	return set, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
