// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config assembles loadplot's configuration from command-line
// flags and an optional configuration file.
//
// A flag given on the command line takes precedence over the file,
// which takes precedence over the built-in default. The environment is
// never consulted.
package config

import (
	"strings"
	"time"

	"github.com/loadplot/loadplot/chart"
	"github.com/loadplot/loadplot/report"
	"github.com/loadplot/loadplot/smooth"
	"github.com/loadplot/loadplot/storagecmp"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
)

// ErrInvalid is returned for configuration that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration of a loadplot run. Keys in a
// configuration file are the mapstructure tags below.
type Config struct {
	LatencyMethod string `mapstructure:"latency-method"`
	RPSMethod     string `mapstructure:"rps-method"`

	LatencyMetric string `mapstructure:"latency-metric"`
	RPSMetric     string `mapstructure:"rps-metric"`

	Window          int           `mapstructure:"window"`
	Bucket          time.Duration `mapstructure:"bucket"`
	MinBucketCount  int           `mapstructure:"min-bucket-count"`
	PolyOrder       int           `mapstructure:"poly-order"`
	Factor          float64       `mapstructure:"factor"`
	Points          int           `mapstructure:"points"`
	MinUniquePoints int           `mapstructure:"min-unique-points"`

	OutputDir string  `mapstructure:"output-dir"`
	Format    string  `mapstructure:"format"`
	DPI       int     `mapstructure:"dpi"`
	Width     float64 `mapstructure:"width"`  // inches
	Height    float64 `mapstructure:"height"` // inches

	Summary string `mapstructure:"summary"`

	HideSavings bool    `mapstructure:"hide-savings"`
	ShowCost    bool    `mapstructure:"show-cost"`
	CostPerGB   float64 `mapstructure:"cost-per-gb"`
}

// Default returns the built-in configuration.
func Default() Config {
	sc := smooth.DefaultConfig()
	return Config{
		LatencyMethod: smooth.Rolling.String(),
		RPSMethod:     smooth.Interpolated.String(),

		LatencyMetric: "http_req_duration",
		RPSMetric:     "http_reqs",

		Window:          sc.Window,
		Bucket:          sc.Bucket,
		MinBucketCount:  sc.MinBucketCount,
		PolyOrder:       sc.PolyOrder,
		Factor:          sc.Factor,
		Points:          sc.Points,
		MinUniquePoints: sc.MinUniquePoints,

		OutputDir: ".",
		Format:    "png",
		DPI:       chart.DefaultDPI,
		Width:     float64(chart.DefaultWidth / vg.Inch),
		Height:    float64(chart.DefaultHeight / vg.Inch),

		Summary: report.Text.String(),

		CostPerGB: storagecmp.DefaultCostPerGB,
	}
}

// keys maps each configuration key to its default value.
func (c Config) keys() map[string]interface{} {
	return map[string]interface{}{
		"latency-method":    c.LatencyMethod,
		"rps-method":        c.RPSMethod,
		"latency-metric":    c.LatencyMetric,
		"rps-metric":        c.RPSMetric,
		"window":            c.Window,
		"bucket":            c.Bucket,
		"min-bucket-count":  c.MinBucketCount,
		"poly-order":        c.PolyOrder,
		"factor":            c.Factor,
		"points":            c.Points,
		"min-unique-points": c.MinUniquePoints,
		"output-dir":        c.OutputDir,
		"format":            c.Format,
		"dpi":               c.DPI,
		"width":             c.Width,
		"height":            c.Height,
		"summary":           c.Summary,
		"hide-savings":      c.HideSavings,
		"show-cost":         c.ShowCost,
		"cost-per-gb":       c.CostPerGB,
	}
}

// AddOutputFlags adds the flags shared by every command to fs.
func AddOutputFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP("output-dir", "o", d.OutputDir, "write images to `dir`")
	fs.String("format", d.Format, "image `format`: "+strings.Join(chart.Formats(), ", "))
	fs.Int("dpi", d.DPI, "resolution of raster images")
	fs.Float64("width", d.Width, "image width in inches")
	fs.Float64("height", d.Height, "image height in inches")
	fs.String("summary", d.Summary, "summary `format`: text, csv or html")
}

// AddLatencyFlags adds the latency smoothing flags to fs. The method
// and metric flags are bound to the latency-method and latency-metric
// keys by Load.
func AddLatencyFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP("method", "m", d.LatencyMethod, "smoothing `method`: raw, rolling, resample, savgol or both")
	fs.String("metric", d.LatencyMetric, "latency metric `name`")
	fs.IntP("window", "w", d.Window, "window `size` of the rolling average and Savitzky-Golay filter")
	fs.DurationP("bucket", "r", d.Bucket, "bucket width of the resample method")
	fs.Int("min-bucket-count", d.MinBucketCount, "drop resample buckets with fewer samples")
	fs.Int("poly-order", d.PolyOrder, "polynomial order of the Savitzky-Golay filter")
}

// AddRPSFlags adds the RPS CDF smoothing flags to fs.
func AddRPSFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP("method", "m", d.RPSMethod, "smoothing `method`: raw, interpolate, gaussian, binned or both")
	fs.String("metric", d.RPSMetric, "request counter metric `name`")
	fs.Float64P("factor", "f", d.Factor, "smoothing factor (0.1-2.0)")
	fs.IntP("points", "p", d.Points, "number of interpolation points")
	fs.Int("min-unique-points", d.MinUniquePoints, "fewest distinct values to interpolate")
}

// AddStorageFlags adds the storage comparison flags to fs.
func AddStorageFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Bool("no-savings", d.HideSavings, "hide savings percentages on bars")
	fs.Bool("cost-estimate", d.ShowCost, "show estimated monthly costs")
	fs.Float64("cost-per-gb", d.CostPerGB, "storage cost per GB-month in dollars")
}

// Flags whose names differ from the key they set, for passing to Load.
var (
	LatencyKeys = map[string]string{"method": "latency-method", "metric": "latency-metric"}
	RPSKeys     = map[string]string{"method": "rps-method", "metric": "rps-metric"}
	StorageKeys = map[string]string{"no-savings": "hide-savings", "cost-estimate": "show-cost"}
)

// Load builds a Config from the flags in fs and, if file is not empty,
// the configuration file it names. The file format is chosen by its
// extension (yaml, toml or json). rename maps flag names to the keys
// they set when the two differ.
func Load(fs *pflag.FlagSet, file string, rename map[string]string) (*Config, error) {
	v := viper.New()
	keys := Default().keys()
	for k, def := range keys {
		v.SetDefault(k, def)
	}

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if k, ok := rename[key]; ok {
			key = k
		}
		if _, ok := keys[key]; !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, bindErr
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(ErrInvalid, "reading %s: %v", file, err)
		}
	}

	var c Config
	if err := v.UnmarshalExact(&c); err != nil {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that c is usable. An unknown image format matches
// chart.ErrDependencyMissing; other problems match ErrInvalid.
func (c *Config) Validate() error {
	if err := c.Smooth().Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if _, err := chart.CheckFormat(c.Format); err != nil {
		return err
	}
	if c.DPI <= 0 {
		return errors.Wrapf(ErrInvalid, "dpi must be positive, got %d", c.DPI)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalid, "image size must be positive, got %gx%g", c.Width, c.Height)
	}
	if _, err := report.ParseFormat(c.Summary); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if c.CostPerGB < 0 {
		return errors.Wrapf(ErrInvalid, "cost-per-gb must not be negative, got %g", c.CostPerGB)
	}
	return nil
}

// Smooth returns the smoothing parameters of c.
func (c *Config) Smooth() smooth.Config {
	return smooth.Config{
		Window:          c.Window,
		Bucket:          c.Bucket,
		MinBucketCount:  c.MinBucketCount,
		PolyOrder:       c.PolyOrder,
		Factor:          c.Factor,
		Points:          c.Points,
		MinUniquePoints: c.MinUniquePoints,
	}
}

// Writer returns the image sink described by c.
func (c *Config) Writer() *chart.Writer {
	return &chart.Writer{
		Dir:    c.OutputDir,
		Format: c.Format,
		DPI:    c.DPI,
		Width:  vg.Length(c.Width) * vg.Inch,
		Height: vg.Length(c.Height) * vg.Inch,
	}
}

// Storage returns the storage comparison options of c.
func (c *Config) Storage() storagecmp.Options {
	return storagecmp.Options{
		ShowSavings: !c.HideSavings,
		ShowCost:    c.ShowCost,
		CostPerGB:   c.CostPerGB,
	}
}

// SummaryFormat returns the summary output format of c.
func (c *Config) SummaryFormat() report.Format {
	f, err := report.ParseFormat(c.Summary)
	if err != nil {
		return report.Text
	}
	return f
}
