// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	check := func(s string, a align, w int, pad bool, want string) {
		t.Helper()
		got := a.pad(s, w, pad)
		if got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}

	check("abc", alignLeft, 10, false, "abc")
	check("abc", alignLeft, 5, true, "abc  ")
	check("abc", alignCenter, 10, false, "   abc")
	check("abc", alignCenter, 10, true, "   abc    ")
	check("abc", alignRight, 10, false, "       abc")
	check("☃", alignRight, 4, false, "   ☃")
	check("toolong", alignRight, 3, true, "toolong")
}

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var gotBuf strings.Builder
		if err := tab.Format(&gotBuf); err != nil {
			t.Fatal(err)
		}
		got := gotBuf.String()
		if want != got {
			t.Errorf("want:\n%sgot:\n%s", want, got)
		}
		// Reset tab.
		tab = Table{}
	}

	// Basic test.
	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("d").Cell("e").Cell("f")
	check("a  b  c\nd  e  f\n")

	// Cell padding, without trailing spaces.
	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("long").Cell("e").Cell("long")
	check("a     b  c\nlong  e  long\n")

	// Cell alignment.
	tab.Row().Cell("a", Left).Cell("b", Center).Cell("c", Right)
	tab.Row().Cell("xxx").Cell("xxx").Cell("xxx")
	check("a     b     c\nxxx  xxx  xxx\n")

	// Rules span the table.
	tab.Row().Cell("name").Cell("value", Right)
	tab.Rule()
	tab.Row().Cell("p95").Cell("1.5", Right)
	check("name  value\n-----------\np95     1.5\n")

	// Missing and empty cells at the end.
	tab.Row().Cell("a")
	tab.Row().Cell("d").Cell("e").Cell("")
	check("a\nd  e\n")

	// Blank rows.
	tab.Row().Cell("a")
	tab.Row()
	tab.Row().Cell("b")
	check("a\n\nb\n")

	// Custom gap.
	tab.Gap = " | "
	tab.Row().Cell("a").Cell("bb")
	tab.Row().Cell("ccc").Cell("d")
	check("a   | bb\nccc | d\n")
}

func TestLen(t *testing.T) {
	var tab Table
	tab.Cell("implicit row").Rule().Row()
	if got := tab.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}
