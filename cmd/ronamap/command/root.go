// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the ronamap
// project. Commands are organized using the cobra library.
// The root command plots the samples of a coordinates file over the
// regions of a species distribution shapefile and saves the map.
// The "samples" sub-command prints the parsed samples and their map
// extent as JSON, the "formats" sub-command lists the supported output
// file extensions, and the "config" sub-command prints the effective
// configuration settings.
//
//	./ronamap coords.csv map.svg distribution.shp [-c ronamap.yaml]
//	./ronamap samples coords.csv [-c ronamap.yaml]
//	./ronamap formats
//	./ronamap config [-c ronamap.yaml]
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/momeni/ronamap/pkg/adapter/config"
	"github.com/momeni/ronamap/pkg/adapter/naturalearth"
	"github.com/momeni/ronamap/pkg/adapter/render/gonumplot"
	"github.com/momeni/ronamap/pkg/adapter/shapefile"
	"github.com/momeni/ronamap/pkg/adapter/textfile"
	"github.com/momeni/ronamap/pkg/core/cerr"
	"github.com/momeni/ronamap/pkg/core/log"
	"github.com/momeni/ronamap/pkg/core/usecase/mapuc"
	"github.com/spf13/cobra"
)

// options holds the persistent flags and the settings which are
// loaded from them before any command runs.
type options struct {
	cfgPath   string
	logLevel  string
	logFormat string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:   "ronamap <input_csv> <output_image> <shapefile>",
		Short: "Plots sampling sites over a species distribution map",
		Long: `Plots sampling sites over a species distribution map.

The input_csv is a whitespace-delimited text file whose first line is
a header. Each other line holds a sample name and two coordinates.
Samples are drawn as labelled markers over the regions of the
shapefile (a .shp file next to its .shx and .dbf companions) and the
map is saved to output_image. The output format is chosen by its
extension; see the "formats" sub-command.

Coastlines and national borders of the 50m Natural Earth datasets
are drawn below the regions. They are downloaded on the first run and
kept in the user cache directory. The basemap section of the config
file may point them to local shapefiles instead.`,
		Args:              usageArgs(cobra.ExactArgs(3)),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
		RunE:              o.plotMap,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cerr.Usage(err)
	})
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&o.cfgPath, "config", "c", "", "config file path")
	pf.StringVar(&o.logLevel, "log-level", "", "debug, info, warn, or error")
	pf.StringVar(&o.logFormat, "log-format", "", "text or json")
	rootCmd.AddCommand(
		newSamplesCmd(o),
		newFormatsCmd(),
		newConfigCmd(o),
	)
	return rootCmd
}

func (o *options) plotMap(cmd *cobra.Command, args []string) error {
	uc, err := o.newUseCase()
	if err != nil {
		return err
	}
	return uc.Run(cmd.Context(), args[0], args[1], args[2])
}

// setup loads the config file (if any), lets the logging flags
// override its logging section, and installs the default logger which
// writes to the command error stream.
func (o *options) setup(cmd *cobra.Command, _ []string) error {
	if o.cfgPath == "" {
		o.cfg = config.Default()
	} else {
		c, err := config.Load(o.cfgPath)
		if err != nil {
			return err
		}
		o.cfg = c
	}
	if o.logLevel != "" {
		o.cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		o.cfg.Logging.Format = o.logFormat
	}
	err := log.Setup(
		cmd.ErrOrStderr(), o.cfg.Logging.Level, o.cfg.Logging.Format,
	)
	if err != nil {
		return cerr.Usage(err)
	}
	return nil
}

func (o *options) newUseCase() (*mapuc.UseCase, error) {
	ropts, err := o.cfg.Renderer()
	if err != nil {
		return nil, cerr.Usage(err)
	}
	r, err := gonumplot.New(ropts...)
	if err != nil {
		return nil, cerr.Usage(fmt.Errorf("creating renderer: %w", err))
	}
	lr, err := naturalearth.New(o.cfg.Layers()...)
	if err != nil {
		return nil, cerr.Usage(fmt.Errorf("creating layers repository: %w", err))
	}
	uc, err := mapuc.New(
		textfile.New(), shapefile.New(), r,
		append(o.cfg.UseCase(), mapuc.WithLayerReader(lr))...,
	)
	if err != nil {
		return nil, cerr.Usage(fmt.Errorf("creating map use case: %w", err))
	}
	return uc, nil
}

func usageArgs(pa cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := pa(cmd, args); err != nil {
			return cerr.Usage(fmt.Errorf("%w\n\n%s", err, cmd.UseLine()))
		}
		return nil
	}
}

// Run parses args (excluding the program name) and runs the most
// specific command, writing its outputs to stdout and its logs and
// diagnostics to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

// Execute runs the root command with the process arguments. Errors are
// logged to the standard error and the process exit code is chosen
// based on the error category (see the cerr package), so callers may
// tell a malformed input file apart from an unwritable output.
func Execute() {
	ctx := context.Background()
	err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		os.Exit(Report(ctx, os.Stderr, err))
	}
}

// Report logs the err error which was returned by Run and returns the
// process exit code of its category. Usage errors are also printed to
// w as plain text, so the expected command line is shown next to them.
func Report(ctx context.Context, w io.Writer, err error) int {
	code := cerr.ExitCode(err)
	if code == cerr.ExitUsage {
		fmt.Fprintln(w, "Error:", err)
	}
	log.Error(ctx, "ronamap failed", log.Err("err", err), slog.Int("exit", code))
	return code
}
