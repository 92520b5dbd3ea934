// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "fmt"

// GeometryKind tells how the rings of a Region should be drawn.
type GeometryKind int

// These constants define the supported geometry kinds.
// Polygons are filled, polylines are stroked, and points are drawn
// as individual dots.
const (
	GeometryPolygon GeometryKind = iota + 1
	GeometryPolyLine
	GeometryPoint
)

// String returns the lowercase name of k.
func (k GeometryKind) String() string {
	switch k {
	case GeometryPolygon:
		return "polygon"
	case GeometryPolyLine:
		return "polyline"
	case GeometryPoint:
		return "point"
	default:
		return fmt.Sprintf("geometry(%d)", int(k))
	}
}

// Region is one geometry record of a shapefile. A polygon region with
// several rings contains its outer rings and holes in the same order
// as they were stored. Attributes of the record are not kept.
type Region struct {
	Kind  GeometryKind
	Rings []Ring
}

// Layer is a named list of regions which are drawn together, such as
// the coastlines or national borders of a base map.
type Layer struct {
	Name    string
	Regions []Region
}
