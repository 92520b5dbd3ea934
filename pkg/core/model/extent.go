// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// DefaultPadding is the fraction of each edge value which is added
// around the samples when a map extent is computed.
const DefaultPadding = 0.10

// Extent is the rectangular geographic bounding box which a map view
// displays. Field names follow the Sample fields which they are
// computed from.
type Extent struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// NewExtent computes the map edges of the given latitudes and
// longitudes. Each axis is padded independently by PadEdges.
// Both slices must be non-empty and only contain finite values.
func NewExtent(lats, lons []float64, padding float64) (Extent, error) {
	minLat, maxLat, err := PadEdges(lats, padding)
	if err != nil {
		return Extent{}, fmt.Errorf("latitudes: %w", err)
	}
	minLon, maxLon, err := PadEdges(lons, padding)
	if err != nil {
		return Extent{}, fmt.Errorf("longitudes: %w", err)
	}
	return Extent{
		MinLat: minLat, MaxLat: maxLat,
		MinLon: minLon, MaxLon: maxLon,
	}, nil
}

// PadEdges returns the padded minimum and maximum of values.
// The maximum grows by |max*padding| and the minimum shrinks by
// |min*padding|, so each edge is scaled by its own magnitude and
// not by the width of the range. For example, [-10, 5] with 0.1
// padding gives (-11, 5.5) while [0, 0] stays at (0, 0).
func PadEdges(values []float64, padding float64) (lo, hi float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("no values")
	}
	if padding < 0 || math.IsNaN(padding) || math.IsInf(padding, 0) {
		return 0, 0, fmt.Errorf("invalid padding: %v", padding)
	}
	lo, hi = values[0], values[0]
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("value #%d is not finite: %v", i, v)
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	hi += math.Abs(hi * padding)
	lo -= math.Abs(lo * padding)
	return lo, hi, nil
}

// Slice returns the extent edges in the (min-lat, max-lat, min-lon,
// max-lon) order. Renderers take the first pair as the horizontal
// range and the second pair as the vertical range.
func (e Extent) Slice() [4]float64 {
	return [4]float64{e.MinLat, e.MaxLat, e.MinLon, e.MaxLon}
}

// Degenerate reports if e has a zero width or height, e.g., because
// a single sample was located on the origin.
func (e Extent) Degenerate() bool {
	return e.MinLat == e.MaxLat || e.MinLon == e.MaxLon
}

// LogValue implements slog.LogValuer so an Extent may be logged as
// a group of its four edges.
func (e Extent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("min_lat", e.MinLat),
		slog.Float64("max_lat", e.MaxLat),
		slog.Float64("min_lon", e.MinLon),
		slog.Float64("max_lon", e.MaxLon),
	)
}
