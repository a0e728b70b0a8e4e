// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"

	"gonum.org/v1/plot/palette/brewer"
)

// Series and marker colors.
var (
	DarkBlue  color.Color
	LightBlue color.Color
	Navy      color.Color = color.NRGBA{0x00, 0x00, 0x80, 0x99}

	Orange color.Color = color.NRGBA{0xff, 0xa5, 0x00, 0xff}
	Red    color.Color = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	Green  color.Color = color.NRGBA{0x00, 0x80, 0x00, 0xb3}
	Gray   color.Color = color.NRGBA{0x80, 0x80, 0x80, 0x4d}
)

func init() {
	// Light and dark ends of the sequential blue scale.
	blues, err := brewer.GetPalette(brewer.TypeSequential, "Blues", 9)
	if err != nil {
		panic(err)
	}
	cs := blues.Colors()
	LightBlue, DarkBlue = cs[2], cs[8]
}

// Hex returns the opaque color written as "#rrggbb". It panics on
// malformed input.
func Hex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		panic("chart: bad hex color " + s)
	}
	var c [3]uint8
	for i := range c {
		c[i] = hexByte(s[1+2*i], s[2+2*i])
	}
	return color.NRGBA{c[0], c[1], c[2], 0xff}
}

func hexByte(hi, lo byte) uint8 {
	return hexDigit(hi)<<4 | hexDigit(lo)
}

func hexDigit(b byte) uint8 {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10
	}
	panic("chart: bad hex digit " + string(b))
}
