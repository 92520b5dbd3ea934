// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package shapefile is an adapter which loads geometry records of ESRI
// shapefiles as model.Region instances using the go-shp library.
// Polygon, polyline, and point families (including their Z and M
// variants) are supported. Null records are skipped and attributes
// which are kept in the companion .dbf file are never read.
// Shapefiles may be given as .shp paths, as .zip archives holding one
// shapefile, or as a pair of readers (see ReadFrom).
package shapefile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/momeni/ronamap/pkg/core/log"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/momeni/ronamap/pkg/core/repo"
)

// records is the common part of the go-shp Reader, ZipReader, and
// SequentialReader types which is needed for walking the shapes.
type records interface {
	Next() bool
	Shape() (int, shp.Shape)
	Err() error
}

type regionsRepo struct{}

// New instantiates a regions repository reading shapefiles.
func New() repo.RegionReader {
	return regionsRepo{}
}

// ReadRegions opens the path shapefile and converts its records into
// regions, keeping their file order. Shapefile X values are taken as
// longitudes and Y values as latitudes. A path with the .zip extension
// is read as an archive which must contain exactly one shapefile.
func (regionsRepo) ReadRegions(ctx context.Context, path string) ([]model.Region, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		zr, err := shp.OpenZip(path)
		if err != nil {
			return nil, fmt.Errorf("opening shapefile archive: %w", err)
		}
		defer zr.Close()
		return readRecords(ctx, path, zr)
	}
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer r.Close()
	return readRecords(ctx, path, r)
}

// ReadFrom converts the records of a shapefile which is read from the
// shpFile and dbfFile streams (the .shp and .dbf contents) into regions.
// The name is only used for logging. Both streams are closed before
// returning, even if reading fails.
func ReadFrom(
	ctx context.Context, name string, shpFile, dbfFile io.ReadCloser,
) ([]model.Region, error) {
	sr := shp.SequentialReaderFromExt(shpFile, dbfFile)
	defer sr.Close()
	return readRecords(ctx, name, sr)
}

func readRecords(ctx context.Context, name string, r records) ([]model.Region, error) {
	var regions []model.Region
	skipped := 0
	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, shape := r.Shape()
		region, ok := toRegion(shape)
		if !ok {
			skipped++
			log.Debug(
				ctx, "skipping shapefile record",
				slog.Int("record", n),
				slog.String("type", fmt.Sprintf("%T", shape)),
			)
			continue
		}
		regions = append(regions, region)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading shapefile records: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warn(
			ctx, "some shapefile records had no drawable geometry",
			log.Path("shapefile", name),
			slog.Int("skipped", skipped),
		)
	}
	return regions, nil
}

// toRegion converts a go-shp shape into a region. It returns false for
// null shapes and for shapes without any point.
func toRegion(s shp.Shape) (model.Region, bool) {
	var (
		kind   model.GeometryKind
		parts  []int32
		points []shp.Point
	)
	switch g := s.(type) {
	case *shp.Polygon:
		kind, parts, points = model.GeometryPolygon, g.Parts, g.Points
	case *shp.PolygonZ:
		kind, parts, points = model.GeometryPolygon, g.Parts, g.Points
	case *shp.PolygonM:
		kind, parts, points = model.GeometryPolygon, g.Parts, g.Points
	case *shp.PolyLine:
		kind, parts, points = model.GeometryPolyLine, g.Parts, g.Points
	case *shp.PolyLineZ:
		kind, parts, points = model.GeometryPolyLine, g.Parts, g.Points
	case *shp.PolyLineM:
		kind, parts, points = model.GeometryPolyLine, g.Parts, g.Points
	case *shp.Point:
		kind, points = model.GeometryPoint, []shp.Point{*g}
	case *shp.PointZ:
		kind, points = model.GeometryPoint, []shp.Point{{X: g.X, Y: g.Y}}
	case *shp.PointM:
		kind, points = model.GeometryPoint, []shp.Point{{X: g.X, Y: g.Y}}
	case *shp.MultiPoint:
		kind, points = model.GeometryPoint, g.Points
	case *shp.MultiPointZ:
		kind, points = model.GeometryPoint, g.Points
	case *shp.MultiPointM:
		kind, points = model.GeometryPoint, g.Points
	default:
		return model.Region{}, false
	}
	rings := splitParts(parts, points)
	if len(rings) == 0 {
		return model.Region{}, false
	}
	return model.Region{Kind: kind, Rings: rings}, true
}

// splitParts cuts points into one ring per part. The parts slice holds
// the starting index of each part. A nil parts slice means that all
// points belong to one ring. Empty or out of range parts are dropped.
func splitParts(parts []int32, points []shp.Point) []model.Ring {
	if len(points) == 0 {
		return nil
	}
	if len(parts) == 0 {
		parts = []int32{0}
	}
	rings := make([]model.Ring, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || start >= end {
			continue
		}
		ring := make(model.Ring, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, model.Coordinate{Lat: p.Y, Lon: p.X})
		}
		rings = append(rings, ring)
	}
	return rings
}
