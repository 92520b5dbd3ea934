// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/ronamap/pkg/adapter/render/gonumplot"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Lists the supported output file extensions",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, ext := range gonumplot.Formats() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), ext); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
