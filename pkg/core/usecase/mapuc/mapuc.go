// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mapuc contains the map UseCase which turns a sample
// coordinates file and a species distribution shapefile into a map
// image. Currently, two use cases are supported:
//  1. Plotting a map of the samples over their distribution regions,
//  2. Describing the samples of an input file and their map extent.
package mapuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/momeni/ronamap/pkg/core/cerr"
	"github.com/momeni/ronamap/pkg/core/log"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/momeni/ronamap/pkg/core/repo"
)

// Names of the base map layers in their drawing order.
const (
	LayerCoastlines = "coastlines"
	LayerBorders    = "borders"
)

var layerOrder = [...]string{LayerCoastlines, LayerBorders}

// UseCase represents the map use case. It holds the samples and
// regions readers and the renderer which draws prepared map scenes.
type UseCase struct {
	samples  repo.SampleReader
	regions  repo.RegionReader
	renderer repo.Renderer

	padding    *float64
	baseLayers map[string]string // layer name -> shapefile path
	layers     repo.LayerReader  // source of layers without a path
}

// New instantiates a map use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	s repo.SampleReader,
	r repo.RegionReader,
	rr repo.Renderer,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		samples:    s,
		regions:    r,
		renderer:   rr,
		baseLayers: make(map[string]string),
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.padding == nil {
		p := model.DefaultPadding
		uc.padding = &p
	}
	return uc, nil
}

// Run use case reads the samples of the inPath file and plots them
// over the distribution regions of the shapefile file, writing the
// resulting image to outPath. See Plot for the drawing steps.
func (mu *UseCase) Run(ctx context.Context, inPath, outPath, shapefile string) error {
	ctx = withRunID(ctx)
	samples, err := mu.readSamples(ctx, inPath)
	if err != nil {
		return err
	}
	return mu.plot(ctx, samples, outPath, shapefile)
}

// Plot use case draws the given samples on a map and writes it to the
// outPath file. The map extent is computed from the samples, base map
// layers are loaded (from their configured shapefiles or the layer
// reader), and all geometry records of the
// shapefile are overlaid as distribution regions in their file order.
// Returned errors are classified by cerr, so an unreadable shapefile
// and an unwritable output may be told apart.
func (mu *UseCase) Plot(ctx context.Context, samples model.Samples, outPath, shapefile string) error {
	return mu.plot(withRunID(ctx), samples, outPath, shapefile)
}

func (mu *UseCase) plot(ctx context.Context, samples model.Samples, outPath, shapefile string) error {
	extent, err := samples.Extent(*mu.padding)
	if err != nil {
		return cerr.Input(fmt.Errorf("computing map extent: %w", err))
	}
	log.Debug(ctx, "computed map extent", log.Valuer("extent", extent))
	m := &model.Map{Extent: extent, Samples: samples}
	if m.BaseLayers, err = mu.loadBaseLayers(ctx); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	m.Distribution, err = mu.regions.ReadRegions(ctx, shapefile)
	if err != nil {
		return cerr.Shapefile(fmt.Errorf("reading distribution %q: %w", shapefile, err))
	}
	log.Info(
		ctx, "loaded distribution regions",
		log.Path("shapefile", shapefile),
		slog.Int("regions", len(m.Distribution)),
	)
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = mu.renderer.Render(ctx, m, outPath); err != nil {
		return cerr.Output(fmt.Errorf("rendering %q: %w", outPath, err))
	}
	log.Info(ctx, "map is saved", log.Path("output", outPath))
	return nil
}

// loadBaseLayers reads the coastlines and borders layers. Configured
// shapefile paths take precedence over the layer reader. A layer is
// skipped with a warning if neither one may provide it.
func (mu *UseCase) loadBaseLayers(ctx context.Context) ([]model.Layer, error) {
	var layers []model.Layer
	for _, name := range layerOrder {
		regions, source, err := mu.readBaseLayer(ctx, name)
		switch {
		case errors.Is(err, repo.ErrLayerUnavailable):
			log.Warn(
				ctx, "base map layer is unavailable, skipping it",
				slog.String("layer", name), log.Err("err", err),
			)
			continue
		case err != nil:
			return nil, cerr.Shapefile(fmt.Errorf(
				"reading %s layer from %s: %w", name, source, err,
			))
		}
		log.Info(
			ctx, "loaded base map layer",
			slog.String("layer", name),
			slog.String("source", source),
			slog.Int("regions", len(regions)),
		)
		layers = append(layers, model.Layer{Name: name, Regions: regions})
	}
	return layers, nil
}

func (mu *UseCase) readBaseLayer(ctx context.Context, name string) (
	[]model.Region, string, error,
) {
	if path, found := mu.baseLayers[name]; found {
		regions, err := mu.regions.ReadRegions(ctx, path)
		return regions, fmt.Sprintf("%q", path), err
	}
	if mu.layers == nil {
		return nil, "", fmt.Errorf(
			"no shapefile is configured: %w", repo.ErrLayerUnavailable,
		)
	}
	regions, err := mu.layers.ReadLayer(ctx, name)
	return regions, "natural earth", err
}

// Describe use case reads the samples of the inPath file and computes
// their padded map extent without drawing anything.
func (mu *UseCase) Describe(ctx context.Context, inPath string) (
	model.Samples, model.Extent, error,
) {
	ctx = withRunID(ctx)
	samples, err := mu.readSamples(ctx, inPath)
	if err != nil {
		return nil, model.Extent{}, err
	}
	extent, err := samples.Extent(*mu.padding)
	if err != nil {
		return nil, model.Extent{}, cerr.Input(fmt.Errorf(
			"computing map extent: %w", err,
		))
	}
	return samples, extent, nil
}

func (mu *UseCase) readSamples(ctx context.Context, inPath string) (model.Samples, error) {
	samples, err := mu.samples.ReadSamples(ctx, inPath)
	if err != nil {
		var ce *cerr.Error
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, cerr.Input(fmt.Errorf("reading samples: %w", err))
	}
	log.Info(
		ctx, "parsed samples",
		log.Path("input", inPath),
		slog.Int("samples", len(samples)),
	)
	return samples, nil
}

func withRunID(ctx context.Context) context.Context {
	return log.WithAttrs(ctx, slog.String("run", uuid.NewString()))
}
