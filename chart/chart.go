// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders load-test series and bar comparisons to image
// files.
//
// A Figure describes a single plot: the series to draw and the
// reference lines to overlay on them. Row lays several plots out side
// by side. Either is handed to a Sink, usually a Writer, which encodes
// it in the configured image format.
package chart

import (
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// ErrDependencyMissing is returned when no encoder is available for
// the requested image format.
var ErrDependencyMissing = errors.New("image encoder not available")

// A Graphic is something that can draw itself onto a canvas.
type Graphic interface {
	Draw(c draw.Canvas)
}

// A Sink consumes finished graphics.
type Sink interface {
	// Write renders g under the base name name (without
	// extension) and returns where it was written.
	Write(name string, g Graphic) (string, error)
}

// Default image dimensions.
const (
	DefaultWidth  = 14 * vg.Inch
	DefaultHeight = 8 * vg.Inch
	DefaultDPI    = 300
)

type encoder func(w, h vg.Length, dpi int) vg.CanvasWriterTo

func rasterCanvas(w, h vg.Length, dpi int) *vgimg.Canvas {
	return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))
}

var encoders = map[string]encoder{
	"png": func(w, h vg.Length, dpi int) vg.CanvasWriterTo {
		return vgimg.PngCanvas{Canvas: rasterCanvas(w, h, dpi)}
	},
	"jpg": func(w, h vg.Length, dpi int) vg.CanvasWriterTo {
		return vgimg.JpegCanvas{Canvas: rasterCanvas(w, h, dpi)}
	},
	"tiff": func(w, h vg.Length, dpi int) vg.CanvasWriterTo {
		return vgimg.TiffCanvas{Canvas: rasterCanvas(w, h, dpi)}
	},
	"svg": func(w, h vg.Length, _ int) vg.CanvasWriterTo { return vgsvg.New(w, h) },
	"pdf": func(w, h vg.Length, _ int) vg.CanvasWriterTo { return vgpdf.New(w, h) },
	"eps": func(w, h vg.Length, _ int) vg.CanvasWriterTo { return vgeps.New(w, h) },
}

var formatAliases = map[string]string{
	"jpeg": "jpg",
	"tif":  "tiff",
}

// Formats returns the image formats a Writer can produce.
func Formats() []string {
	fs := make([]string, 0, len(encoders))
	for f := range encoders {
		fs = append(fs, f)
	}
	sort.Strings(fs)
	return fs
}

// CheckFormat returns the canonical name of format, or an error
// matching ErrDependencyMissing if there is no encoder for it.
func CheckFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if a, ok := formatAliases[f]; ok {
		f = a
	}
	if _, ok := encoders[f]; !ok {
		return "", errors.Wrapf(ErrDependencyMissing, "format %q (available: %s)", format, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// A Writer is a Sink that encodes graphics into files in a directory.
type Writer struct {
	// Dir is the output directory. It is created if needed.
	Dir string

	// Format is the image format, one of Formats. It defaults to
	// "png".
	Format string

	// DPI is the resolution of raster formats. It defaults to
	// DefaultDPI.
	DPI int

	// Width and Height are the image dimensions. They default to
	// DefaultWidth and DefaultHeight.
	Width, Height vg.Length
}

// Path returns the file name w would write the graphic called name
// to.
func (w *Writer) Path(name string) (string, error) {
	format, err := CheckFormat(w.format())
	if err != nil {
		return "", err
	}
	return filepath.Join(w.Dir, name+"."+format), nil
}

func (w *Writer) format() string {
	if w.Format == "" {
		return "png"
	}
	return w.Format
}

// Write renders g into Dir/name.<format>. The file appears only once
// it is completely written.
func (w *Writer) Write(name string, g Graphic) (string, error) {
	format, err := CheckFormat(w.format())
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.Dir, name+"."+format)

	width, height, dpi := w.Width, w.Height, w.DPI
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	c := encoders[format](width, height, dpi)
	g.Draw(draw.New(c))

	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0777); err != nil {
			return "", err
		}
	}
	if err := writeFile(path, c); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// writeFile writes the output of src to a temporary file next to path
// and renames it into place.
func writeFile(path string, src io.WriterTo) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	err = f.Chmod(0644)
	if err == nil {
		_, err = src.WriteTo(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}
