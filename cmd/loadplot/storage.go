// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/loadplot/loadplot/internal/config"
	"github.com/loadplot/loadplot/storagecmp"
	"github.com/spf13/cobra"
)

func (a *app) storageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage [flags] listing.csv",
		Short: "Compare storage used by exporter configurations",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, config.StorageKeys)
			if err != nil {
				return err
			}
			a.log.Infof("Loading storage data from %s...", args[0])
			runs, err := storagecmp.Load(args[0])
			if err != nil {
				return err
			}
			cmp, err := storagecmp.Compare(runs)
			if err != nil {
				return err
			}
			opts := cfg.Storage()
			row, err := cmp.Chart(opts)
			if err != nil {
				return err
			}
			return a.emitPlot(cfg.Writer(), storagecmp.ChartName, row, func(w io.Writer) error {
				return cmp.WriteSummary(w, opts)
			})
		},
	}
	config.AddStorageFlags(cmd.Flags())
	return cmd
}
