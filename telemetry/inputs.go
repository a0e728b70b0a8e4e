// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Inputs is a list of telemetry files named on a command line.
//
// By default each input is labeled with ConfigLabel of its path, and
// duplicate labels are disambiguated by appending "#N". If AllowLabels
// is true, then entries in Paths may be of the form label=path, and the
// label part is used verbatim.
type Inputs struct {
	Paths []string

	// AllowLabels indicates that custom labels are allowed in
	// Paths.
	AllowLabels bool
}

// An Input is one telemetry file and the configuration label it is
// reported under.
type Input struct {
	Path  string
	Label string
}

// Load reads the input's file.
func (in Input) Load() (*Table, error) {
	return Load(in.Path)
}

// List parses the paths in ins.
func (ins Inputs) List() []Input {
	var out []Input
	var labeled []bool
	count := make(map[string]int)
	for _, path := range ins.Paths {
		label, isLabeled := "", false
		if i := strings.Index(path, "="); ins.AllowLabels && i >= 0 {
			label, path = path[:i], path[i+1:]
			isLabeled = true
		} else {
			label = ConfigLabel(path)
			count[label]++
		}
		out = append(out, Input{path, label})
		labeled = append(labeled, isLabeled)
	}

	// Two runs of the same configuration would otherwise produce
	// identically named artifacts.
	seen := make(map[string]int)
	for i := range out {
		l := out[i].Label
		if labeled[i] || count[l] == 1 {
			continue
		}
		out[i].Label = fmt.Sprintf("%s#%d", l, seen[l])
		seen[l]++
	}
	return out
}

var runSuffix = regexp.MustCompile(`^(?:\d+-)?(?:quickpizza-)?(.+?)(?:-\d+vus-\d+s(?:-.+)?)?$`)

// ConfigLabel derives a configuration label from the name of a
// telemetry file. It strips the directory and any .gz, .zst, or .csv
// extensions, a leading "<date>-" stamp, a "quickpizza-" prefix, and a
// trailing "-<N>vus-<D>s-<instance>" run suffix. For example,
// "runs/20250101-quickpizza-custom-grpc-20vus-60s-t3.medium.gz" is
// labeled "custom-grpc".
func ConfigLabel(path string) string {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext != ".gz" && ext != ".zst" && ext != ".csv" || ext == base {
			break
		}
		base = strings.TrimSuffix(base, ext)
	}
	m := runSuffix.FindStringSubmatch(base)
	if m == nil || m[1] == "" {
		return base
	}
	return m[1]
}
