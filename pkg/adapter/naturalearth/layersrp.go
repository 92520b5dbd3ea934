// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package naturalearth is an adapter which provides the coastlines and
// national borders base map layers from the 50m scale Natural Earth
// datasets. Each layer is looked up in these sources, in order:
//  1. The data directory which is compiled into the binary,
//  2. The zip archive which was downloaded before into the cache,
//  3. The Natural Earth server, keeping the downloaded archive in the
//     cache directory for the next runs.
package naturalearth

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/momeni/ronamap/pkg/adapter/shapefile"
	"github.com/momeni/ronamap/pkg/core/log"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/momeni/ronamap/pkg/core/repo"
	"github.com/momeni/ronamap/pkg/core/usecase/mapuc"
)

// Scale is the Natural Earth resolution of all layers.
const Scale = "50m"

// DefaultBaseURL is the server which Natural Earth archives are
// downloaded from when no other base URL is configured.
const DefaultBaseURL = "https://naturalearth.s3.amazonaws.com"

//go:embed data
var bundled embed.FS

type dataset struct {
	category string // physical or cultural
	name     string
}

func (d dataset) base() string {
	return "ne_" + Scale + "_" + d.name
}

func (d dataset) url(baseURL string) string {
	return baseURL + "/" + Scale + "_" + d.category + "/" + d.base() + ".zip"
}

var datasets = map[string]dataset{
	mapuc.LayerCoastlines: {category: "physical", name: "coastline"},
	mapuc.LayerBorders: {
		category: "cultural", name: "admin_0_boundary_lines_land",
	},
}

type layersRepo struct {
	bundle   fs.FS
	cacheDir string
	baseURL  string
	client   *http.Client
	regions  repo.RegionReader
}

// New instantiates a layers repository which serves the coastlines and
// borders layers of the mapuc package. Downloads use DefaultBaseURL
// unless WithBaseURL is passed.
func New(opts ...Option) (repo.LayerReader, error) {
	lr := &layersRepo{
		baseURL: DefaultBaseURL,
		regions: shapefile.New(),
	}
	for _, opt := range opts {
		if err := opt(lr); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if lr.bundle == nil {
		sub, err := fs.Sub(bundled, "data")
		if err != nil {
			return nil, fmt.Errorf("bundled data: %w", err)
		}
		lr.bundle = sub
	}
	if lr.cacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		lr.cacheDir = filepath.Join(dir, "ronamap", "naturalearth")
	}
	if lr.client == nil {
		lr.client = http.DefaultClient
	}
	return lr, nil
}

// ReadLayer reads the regions of the name layer. It returns an error
// wrapping repo.ErrLayerUnavailable if the layer is neither bundled nor
// cached and downloads are disabled.
func (lr *layersRepo) ReadLayer(ctx context.Context, name string) ([]model.Region, error) {
	d, found := datasets[name]
	if !found {
		return nil, fmt.Errorf("unknown base map layer %q", name)
	}
	regions, found, err := lr.readBundled(ctx, d)
	if found || err != nil {
		return regions, err
	}
	archive := filepath.Join(lr.cacheDir, d.base()+".zip")
	switch _, err = os.Stat(archive); {
	case errors.Is(err, fs.ErrNotExist):
		if lr.baseURL == "" {
			return nil, fmt.Errorf(
				"%s is not bundled or cached in %q: %w",
				d.base(), lr.cacheDir, repo.ErrLayerUnavailable,
			)
		}
		if err = lr.download(ctx, d.url(lr.baseURL), archive); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("checking cached archive: %w", err)
	}
	log.Debug(
		ctx, "reading cached base map layer",
		slog.String("layer", name), log.Path("archive", archive),
	)
	return lr.regions.ReadRegions(ctx, archive)
}

// readBundled reads d from the bundle, returning false if it is not
// bundled.
func (lr *layersRepo) readBundled(ctx context.Context, d dataset) (
	[]model.Region, bool, error,
) {
	shpFile, err := lr.bundle.Open(d.base() + ".shp")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		return nil, true, fmt.Errorf("opening bundled %s: %w", d.base(), err)
	}
	dbfFile, err := lr.bundle.Open(d.base() + ".dbf")
	if err != nil {
		_ = shpFile.Close()
		return nil, true, fmt.Errorf("opening bundled %s: %w", d.base(), err)
	}
	regions, err := shapefile.ReadFrom(ctx, d.base()+".shp", shpFile, dbfFile)
	return regions, true, err
}

// download fetches the url archive and stores it at the dst path. The
// archive is written to a temporary file first and renamed to dst only
// after it is received completely.
func (lr *layersRepo) download(ctx context.Context, url, dst string) (err error) {
	log.Info(
		ctx, "downloading base map layer",
		slog.String("url", url), log.Path("cache", dst),
	)
	dir := filepath.Dir(dst)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := lr.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: %s", url, resp.Status)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = io.Copy(tmp, resp.Body); err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing cache file: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("storing cache file: %w", err)
	}
	return nil
}
