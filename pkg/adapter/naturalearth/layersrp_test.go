// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package naturalearth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/momeni/ronamap/internal/test/fixture"
	"github.com/momeni/ronamap/pkg/adapter/naturalearth"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/momeni/ronamap/pkg/core/repo"
	"github.com/momeni/ronamap/pkg/core/usecase/mapuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var coast = [][][2]float64{{{-10, 36}, {-9, 39}, {-8, 42}}}

// archive writes a zipped polyline shapefile named base into dir.
func archive(t *testing.T, dir, base string) string {
	t.Helper()
	shpPath := filepath.Join(dir, base+".shp")
	fixture.PolyLines(t, shpPath, coast)
	zipPath := filepath.Join(dir, base+".zip")
	fixture.Zip(t, zipPath, shpPath)
	return zipPath
}

// serve starts a server which responds with the files of the routes
// map (URL path to local path) and counts the handled requests.
func serve(t *testing.T, routes map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			path, found := routes[r.URL.Path]
			if !found {
				http.NotFound(w, r)
				return
			}
			http.ServeFile(w, r, path)
		},
	))
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestReadLayerBundled(t *testing.T) {
	dir := t.TempDir()
	shpPath := filepath.Join(dir, "ne_50m_coastline.shp")
	fixture.PolyLines(t, shpPath, coast)
	shpData, err := os.ReadFile(shpPath)
	require.NoError(t, err)
	dbfData, err := os.ReadFile(filepath.Join(dir, "ne_50m_coastline.dbf"))
	require.NoError(t, err)

	lr, err := naturalearth.New(
		naturalearth.WithBundle(fstest.MapFS{
			"ne_50m_coastline.shp": {Data: shpData},
			"ne_50m_coastline.dbf": {Data: dbfData},
		}),
		naturalearth.WithBaseURL(""),
		naturalearth.WithCacheDir(t.TempDir()),
	)
	require.NoError(t, err)
	regions, err := lr.ReadLayer(context.Background(), mapuc.LayerCoastlines)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, model.GeometryPolyLine, regions[0].Kind)
	assert.Equal(t, model.Coordinate{Lat: 39, Lon: -9}, regions[0].Rings[0][1])

	_, err = lr.ReadLayer(context.Background(), mapuc.LayerBorders)
	assert.ErrorIs(t, err, repo.ErrLayerUnavailable, "borders are not bundled")
}

func TestReadLayerDownloadsOnce(t *testing.T) {
	src := archive(t, t.TempDir(), "ne_50m_admin_0_boundary_lines_land")
	srv, hits := serve(t, map[string]string{
		"/50m_cultural/ne_50m_admin_0_boundary_lines_land.zip": src,
	})
	cache := filepath.Join(t.TempDir(), "cache")
	lr, err := naturalearth.New(
		naturalearth.WithBundle(fstest.MapFS{}),
		naturalearth.WithBaseURL(srv.URL+"/"),
		naturalearth.WithCacheDir(cache),
		naturalearth.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		regions, err := lr.ReadLayer(context.Background(), mapuc.LayerBorders)
		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Len(t, regions[0].Rings[0], 3)
	}
	assert.EqualValues(t, 1, hits.Load(), "second read must use the cache")
	assert.FileExists(t,
		filepath.Join(cache, "ne_50m_admin_0_boundary_lines_land.zip"),
	)
}

func TestReadLayerDownloadFailure(t *testing.T) {
	srv, _ := serve(t, nil)
	cache := t.TempDir()
	lr, err := naturalearth.New(
		naturalearth.WithBundle(fstest.MapFS{}),
		naturalearth.WithBaseURL(srv.URL),
		naturalearth.WithCacheDir(cache),
	)
	require.NoError(t, err)
	_, err = lr.ReadLayer(context.Background(), mapuc.LayerCoastlines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.NotErrorIs(t, err, repo.ErrLayerUnavailable)
	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed downloads leave no files behind")
}

func TestReadLayerCancelled(t *testing.T) {
	srv, hits := serve(t, nil)
	lr, err := naturalearth.New(
		naturalearth.WithBundle(fstest.MapFS{}),
		naturalearth.WithBaseURL(srv.URL),
		naturalearth.WithCacheDir(t.TempDir()),
	)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lr.ReadLayer(ctx, mapuc.LayerCoastlines)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits.Load())
}

func TestReadLayerUnknown(t *testing.T) {
	lr, err := naturalearth.New(naturalearth.WithCacheDir(t.TempDir()))
	require.NoError(t, err)
	_, err = lr.ReadLayer(context.Background(), "rivers")
	assert.ErrorContains(t, err, "unknown base map layer")
}

func TestNewOptions(t *testing.T) {
	_, err := naturalearth.New(naturalearth.WithBaseURL("ftp://example.org"))
	assert.Error(t, err)
	_, err = naturalearth.New(naturalearth.WithCacheDir(""))
	assert.Error(t, err)
	_, err = naturalearth.New(naturalearth.WithBundle(nil))
	assert.Error(t, err)
	_, err = naturalearth.New(naturalearth.WithHTTPClient(nil))
	assert.Error(t, err)
}
