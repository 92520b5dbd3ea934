// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package naturalearth

import (
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
)

// Option is a functional option for the layers repository.
type Option func(lr *layersRepo) error

// WithCacheDir option configures the directory which keeps downloaded
// layer archives. By default, a ronamap/naturalearth directory in the
// user cache directory is used.
func WithCacheDir(dir string) Option {
	return func(lr *layersRepo) error {
		if dir == "" {
			return errors.New("empty cache directory")
		}
		lr.cacheDir = dir
		return nil
	}
}

// WithBaseURL option configures the server which layer archives are
// downloaded from. An empty baseURL disables downloads, so only the
// bundled and cached layers may be read.
func WithBaseURL(baseURL string) Option {
	return func(lr *layersRepo) error {
		if baseURL != "" {
			u, err := url.Parse(baseURL)
			if err != nil {
				return err
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return errors.New("base URL must use the http or https scheme")
			}
		}
		lr.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

// WithBundle option replaces the compiled in data directory with the
// fsys file system. Its root must hold the .shp and .dbf files.
func WithBundle(fsys fs.FS) Option {
	return func(lr *layersRepo) error {
		if fsys == nil {
			return errors.New("nil bundle file system")
		}
		lr.bundle = fsys
		return nil
	}
}

// WithHTTPClient option configures the client which downloads layer
// archives. By default, http.DefaultClient is used.
func WithHTTPClient(c *http.Client) Option {
	return func(lr *layersRepo) error {
		if c == nil {
			return errors.New("nil http client")
		}
		lr.client = c
		return nil
	}
}
