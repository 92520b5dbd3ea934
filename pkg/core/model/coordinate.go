// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Coordinate represents a geographical location with a latitude and
// longitude, as stored in shapefile geometries (where X is longitude
// and Y is latitude).
type Coordinate struct {
	Lat, Lon float64 // latitude and longitude of the geo-location
}

// Ring is an ordered sequence of coordinates. Polygon rings are not
// required to repeat their first coordinate at the end.
type Ring []Coordinate
