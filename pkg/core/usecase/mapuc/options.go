// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package mapuc

import (
	"errors"
	"fmt"
	"math"

	"github.com/momeni/ronamap/pkg/core/repo"
)

// Option is a functional option for the map use case.
type Option func(uc *UseCase) error

// WithPadding option configures the fraction of each edge value which
// is added around samples when the map extent is computed. Zero is
// accepted and disables padding. This option may be passed to New().
func WithPadding(padding float64) Option {
	return func(uc *UseCase) error {
		if padding < 0 || math.IsNaN(padding) || math.IsInf(padding, 0) {
			return fmt.Errorf("padding (%v) is not a finite non-negative number", padding)
		}
		if uc.padding != nil {
			return errors.New("padding is already configured")
		}
		uc.padding = &padding
		return nil
	}
}

// WithCoastlines option configures the shapefile which contains the
// coastline polylines of the base map, overriding the layer reader.
func WithCoastlines(path string) Option {
	return withBaseLayer(LayerCoastlines, path)
}

// WithBorders option configures the shapefile which contains the
// national borders of the base map, overriding the layer reader.
func WithBorders(path string) Option {
	return withBaseLayer(LayerBorders, path)
}

func withBaseLayer(name, path string) Option {
	return func(uc *UseCase) error {
		if path == "" {
			return fmt.Errorf("empty %s shapefile path", name)
		}
		if _, found := uc.baseLayers[name]; found {
			return fmt.Errorf("%s layer is already configured", name)
		}
		uc.baseLayers[name] = path
		return nil
	}
}

// WithLayerReader option configures the default source of the base map
// layers which have no configured shapefile. Without it, such layers
// are skipped with a warning.
func WithLayerReader(lr repo.LayerReader) Option {
	return func(uc *UseCase) error {
		if lr == nil {
			return errors.New("nil layer reader")
		}
		if uc.layers != nil {
			return errors.New("layer reader is already configured")
		}
		uc.layers = lr
		return nil
	}
}
