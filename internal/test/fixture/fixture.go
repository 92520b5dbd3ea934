// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fixture is an internal helper for the test packages.
// It writes sample coordinate files and small shapefiles into
// temporary directories, so adapters and commands may be tested
// against real files instead of in-memory fakes.
package fixture

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
)

// Samples writes a coordinates file named name into dir and returns
// its path. The header line is written first, followed by rows.
func Samples(t *testing.T, dir, name, header string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := header + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// Polygons writes a polygon shapefile at path with one record per
// given list of rings. Each point is an (x, y) pair, i.e., (lon, lat).
func Polygons(t *testing.T, path string, records ...[][][2]float64) {
	t.Helper()
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err, "creating %s", path)
	defer w.Close()
	for _, rings := range records {
		p := shp.Polygon(*shp.NewPolyLine(toParts(rings)))
		w.Write(&p)
	}
}

// PolyLines writes a polyline shapefile at path with one record per
// given list of parts.
func PolyLines(t *testing.T, path string, records ...[][][2]float64) {
	t.Helper()
	w, err := shp.Create(path, shp.POLYLINE)
	require.NoError(t, err, "creating %s", path)
	defer w.Close()
	for _, parts := range records {
		w.Write(shp.NewPolyLine(toParts(parts)))
	}
}

// Points writes a point shapefile at path with one record per point.
func Points(t *testing.T, path string, points ...[2]float64) {
	t.Helper()
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err, "creating %s", path)
	defer w.Close()
	for _, p := range points {
		w.Write(&shp.Point{X: p[0], Y: p[1]})
	}
}

// Zip archives the .shp, .shx, and .dbf files of the shpPath shapefile
// into a new zipPath archive, storing them without any directory.
func Zip(t *testing.T, zipPath, shpPath string) {
	t.Helper()
	f, err := os.Create(zipPath)
	require.NoError(t, err, "creating %s", zipPath)
	defer f.Close()
	zw := zip.NewWriter(f)
	base := strings.TrimSuffix(shpPath, filepath.Ext(shpPath))
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		src, err := os.Open(base + ext)
		require.NoError(t, err)
		w, err := zw.Create(filepath.Base(base) + ext)
		require.NoError(t, err)
		_, err = io.Copy(w, src)
		src.Close()
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func toParts(rings [][][2]float64) [][]shp.Point {
	parts := make([][]shp.Point, len(rings))
	for i, ring := range rings {
		parts[i] = make([]shp.Point, len(ring))
		for j, p := range ring {
			parts[i][j] = shp.Point{X: p[0], Y: p[1]}
		}
	}
	return parts
}
