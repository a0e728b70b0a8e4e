// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smooth

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/loadplot/loadplot/telemetry"
)

const secondsPerDay = 24 * 60 * 60

// bucketStarts returns the start of the bucket holding each time in
// ts. Buckets are width seconds wide and aligned to midnight UTC of
// the day containing ts[0].
func bucketStarts(ts []float64, width float64) []float64 {
	origin := math.Floor(ts[0]/secondsPerDay) * secondsPerDay
	starts := make([]float64, len(ts))
	for i, t := range ts {
		starts[i] = origin + math.Floor((t-origin)/width)*width
	}
	return starts
}

// aggStdDev returns an aggregate function that computes the sample
// standard deviation of col. The resulting column is named
// "stddev <col>". Groups with fewer than two rows have a standard
// deviation of 0.
func aggStdDev(col string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		sds := make([]float64, 0, len(input.Tables()))
		for _, gid := range input.Tables() {
			xs := input.Table(gid).MustColumn(col).([]float64)
			sd := 0.0
			if len(xs) > 1 {
				sd = stats.StdDev(xs)
			}
			sds = append(sds, sd)
		}
		b.Add("stddev "+col, sds)
	}
}

// bucketSeries aggregates s into time buckets and returns the series
// of bucket means along with the number of buckets dropped for
// holding too few samples.
func bucketSeries(s telemetry.SampleSet, cfg Config) (Series, int) {
	ts := s.Times()
	start := ts[0]

	var b table.Builder
	b.Add("bucket", bucketStarts(ts, cfg.Bucket.Seconds())).Add("value", s.Values())
	agg := ggstat.Agg("bucket")(ggstat.AggMean("value"), aggStdDev("value"), ggstat.AggCount("count")).F(b.Done())
	all := table.Flatten(agg)
	min := cfg.MinBucketCount
	kept := table.Flatten(table.SortBy(table.Filter(all, func(n int) bool { return n >= min }, "count"), "bucket"))

	ser := Series{
		Label: fmt.Sprintf("Resampled (%v buckets)", cfg.Bucket),
		Shape: ErrorBars,
	}
	if kept.Len() > 0 {
		starts := kept.MustColumn("bucket").([]float64)
		means := kept.MustColumn("mean value").([]float64)
		ser.YErr = kept.MustColumn("stddev value").([]float64)
		ser.Counts = kept.MustColumn("count").([]int)
		ser.Points = make([]Point, len(starts))
		for i := range starts {
			ser.Points[i] = Point{starts[i] - start, means[i]}
		}
	}
	return ser, all.Len() - kept.Len()
}
