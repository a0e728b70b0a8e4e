// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units parses and formats storage sizes.
//
// Sizes are carried as float64 mebibytes (MiB), the unit storage
// listings report most often.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ErrBadSize is returned for size strings that cannot be parsed.
var ErrBadSize = errors.New("malformed size")

const mib = 1 << 20

// sizeUnits maps unit suffixes to their size in bytes.
var sizeUnits = map[string]float64{
	"B":   1,
	"KiB": 1 << 10,
	"MiB": 1 << 20,
	"GiB": 1 << 30,
	"TiB": 1 << 40,
	"kB":  1e3,
	"KB":  1e3,
	"MB":  1e6,
	"GB":  1e9,
	"TB":  1e12,
}

// ParseSize parses a size such as "120.1 MiB" or "3GiB" and returns
// it in MiB. A bare number is taken to already be in MiB.
func ParseSize(s string) (float64, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], strings.TrimSpace(s[i:])
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, errors.Wrapf(ErrBadSize, "%q", s)
	}
	if unit == "" {
		return v, nil
	}
	scale, ok := sizeUnits[unit]
	if !ok {
		return 0, errors.Wrapf(ErrBadSize, "%q: unknown unit %q", s, unit)
	}
	return v * scale / mib, nil
}

// A Scaler formats sizes with a fixed IEC prefix.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Bytes in one Prefix
	Prefix string  // "Ki", "Mi", etc
}

// Format formats a size given in MiB using s, followed by the unit.
// For example, Scaler{1, 1<<30, "Gi"}.Format(1536) returns "1.5 GiB".
func (s Scaler) Format(sizeMiB float64) string {
	buf := make([]byte, 0, 16)
	buf = strconv.AppendFloat(buf, sizeMiB*mib/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, ' ')
	buf = append(buf, s.Prefix...)
	buf = append(buf, 'B')
	return string(buf)
}

type factor struct {
	factor float64
	prefix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var iecFactors = mkIECFactors()

func mkIECFactors() []factor {
	// The thresholds are where Format starts rounding up to the
	// next digit, so 9.996 MiB prints as "10.0 MiB", not "10.00 MiB".
	var factors []factor
	exp := 40
	for _, p := range []string{"Ti", "Gi", "Mi", "Ki", ""} {
		f := math.Pow(2, float64(exp))
		factors = append(factors, factor{f, p, 99.95 * f, 9.995 * f, .9995 * f})
		exp -= 10
	}
	return factors
}

// CommonScale returns a Scaler that shows every size in sizes (in
// MiB) with three significant digits. The scale is chosen by the
// smallest non-zero size.
func CommonScale(sizes []float64) Scaler {
	var min float64
	for _, v := range sizes {
		v = math.Abs(v) * mib
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{0, 1, ""}
	}
	for _, f := range iecFactors {
		switch {
		case min >= f.t100:
			return Scaler{0, f.factor, f.prefix}
		case min >= f.t10:
			return Scaler{1, f.factor, f.prefix}
		case min >= f.t1:
			return Scaler{2, f.factor, f.prefix}
		}
	}
	// Less than one byte.
	return Scaler{3, 1, ""}
}

// FormatSize formats a size in MiB with an IEC prefix, such as
// "7.00 MiB" or "1.50 GiB".
func FormatSize(sizeMiB float64) string {
	return CommonScale([]float64{sizeMiB}).Format(sizeMiB)
}

// FormatMiB formats a size in MiB with one decimal, the way storage
// listings print it.
func FormatMiB(sizeMiB float64) string {
	return fmt.Sprintf("%.1f MiB", sizeMiB)
}
