// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can chain them to
// build up a row at once.
type Table struct {
	rows [][]cell

	// Gap is the space between columns. The zero value means two
	// spaces.
	Gap string
}

type cell struct {
	value     string
	alignment align
	rule      bool
}

// A CellOption modifies a cell.
type CellOption func(c *cell)

var (
	Left   CellOption = func(c *cell) { c.alignment = alignLeft }
	Center CellOption = func(c *cell) { c.alignment = alignCenter }
	Right  CellOption = func(c *cell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// pad pads s to width w according to a. Left-aligned text is padded
// on the right only if pad is set.
func (a align) pad(s string, w int, pad bool) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	switch a {
	case alignCenter:
		l := (w - n) / 2
		s = strings.Repeat(" ", l) + s
		if pad {
			s += strings.Repeat(" ", w-n-l)
		}
		return s
	case alignRight:
		return strings.Repeat(" ", w-n) + s
	}
	if pad {
		s += strings.Repeat(" ", w-n)
	}
	return s
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell to the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := &t.rows[len(t.rows)-1]
	*r = append(*r, c)
	return t
}

// Rule adds a row consisting of a horizontal line spanning the full
// width of the table.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, []cell{{rule: true}})
	return t
}

// Len returns the number of rows in t, including rules.
func (t *Table) Len() int {
	return len(t.rows)
}

// Format lays out table t and writes it to w. Trailing spaces are
// never printed.
func (t *Table) Format(w io.Writer) error {
	gap := t.Gap
	if gap == "" {
		gap = "  "
	}

	// Compute column widths.
	var ws []int
	for _, row := range t.rows {
		if isRule(row) {
			continue
		}
		for i, c := range row {
			if i >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}
	total := 0
	for i, cw := range ws {
		if i > 0 {
			total += utf8.RuneCountInString(gap)
		}
		total += cw
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		if isRule(row) {
			line.WriteString(strings.Repeat("-", total))
		} else {
			// Drop trailing empty cells so we don't pad them.
			last := len(row) - 1
			for last >= 0 && row[last].value == "" {
				last--
			}
			for i, c := range row[:last+1] {
				if i > 0 {
					line.WriteString(gap)
				}
				line.WriteString(c.alignment.pad(c.value, ws[i], i < last))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func isRule(row []cell) bool {
	return len(row) == 1 && row[0].rule
}
