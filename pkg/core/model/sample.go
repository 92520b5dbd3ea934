// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Models here describe sampling sites, the geographic extent which
// is derived from them, distribution regions which are loaded from
// shapefiles, and the Map scene which ties them together before it is
// handed over to a renderer.
package model

import "strings"

// Sample models one sampling site as it was read from an input file.
//
// Latitude holds the third column of an input row and Longitude holds
// its second column. That is the historical column convention of the
// sample coordinate files and it is kept as is; renderers place the
// marker of a sample at (Latitude, Longitude) as the (x, y) pair, so
// both swaps cancel out for files which are laid out as name, lat, lon.
type Sample struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label returns the text which should be drawn next to the sample
// marker. Surrounding whitespaces are trimmed and underscores are
// replaced by spaces, so "Pop_1" is shown as "Pop 1".
func (s Sample) Label() string {
	return strings.ReplaceAll(strings.TrimSpace(s.Name), "_", " ")
}

// Samples is an ordered list of sampling sites. The order of samples
// is the order of rows in their input file.
type Samples []Sample

// Names returns the sample names, positionally aligned with the
// Latitudes and Longitudes slices.
func (ss Samples) Names() []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.Name
	}
	return names
}

// Latitudes returns the Latitude field of all samples in order.
func (ss Samples) Latitudes() []float64 {
	lats := make([]float64, len(ss))
	for i, s := range ss {
		lats[i] = s.Latitude
	}
	return lats
}

// Longitudes returns the Longitude field of all samples in order.
func (ss Samples) Longitudes() []float64 {
	lons := make([]float64, len(ss))
	for i, s := range ss {
		lons[i] = s.Longitude
	}
	return lons
}

// Extent computes the padded map extent of the ss samples.
// See NewExtent for the padding rule.
func (ss Samples) Extent(padding float64) (Extent, error) {
	return NewExtent(ss.Latitudes(), ss.Longitudes(), padding)
}
