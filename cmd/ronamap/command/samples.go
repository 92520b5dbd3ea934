// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"github.com/goccy/go-json"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/spf13/cobra"
)

// Description is the JSON document which is printed by the samples
// sub-command.
type Description struct {
	Count   int           `json:"count"`
	Padding float64       `json:"padding"`
	Extent  model.Extent  `json:"extent"`
	Samples model.Samples `json:"samples"`
}

func newSamplesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "samples <input_csv>",
		Short: "Prints the parsed samples and their map extent as JSON",
		Long: `Parses the input_csv file exactly like the root command
and prints its samples and their padded map extent as a JSON document
without drawing anything. The extent edges are reported in the order
which the map uses: min_lat and max_lat span the horizontal axis, and
min_lon and max_lon span the vertical axis.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := o.newUseCase()
			if err != nil {
				return err
			}
			samples, extent, err := uc.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(Description{
				Count:   len(samples),
				Padding: o.cfg.Map.Padding,
				Extent:  extent,
				Samples: samples,
			})
		},
	}
}
