// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the ronamap to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of functional options (see the UseCase and
// Renderer methods), so each component validates its own settings too.
//
// A config file must carry a version which is supported by Version.
// Omitted settings keep their default values, so the smallest valid
// config file only contains the version line:
//
//	version: 1.0.0
//	map:
//	  padding: 0.1
//	basemap:
//	  coastlines: /data/ne_50m_coastline.shp
//	  source: https://naturalearth.s3.amazonaws.com
//	  cache_dir: /var/cache/ronamap
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/ronamap/pkg/adapter/naturalearth"
	"github.com/momeni/ronamap/pkg/core/cerr"
	"github.com/momeni/ronamap/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Config contains all settings of the ronamap command.
type Config struct {
	Version model.SemVer `yaml:"version"`
	Map     Map          `yaml:"map"`
	Basemap Basemap      `yaml:"basemap"`
	Style   Style        `yaml:"style"`
	Logging Logging      `yaml:"logging"`
}

// Map contains the extent and canvas settings.
type Map struct {
	Padding float64 `yaml:"padding" validate:"gte=0"`
	Width   float64 `yaml:"width" validate:"gt=0"`  // inches
	Height  float64 `yaml:"height" validate:"gt=0"` // inches
	DPI     int     `yaml:"dpi" validate:"gt=0"`
}

// Basemap contains the sources of the base map layers. Coastlines and
// Borders are optional shapefile (.shp or .zip) paths. Layers without
// a path are read from the Natural Earth datasets which are bundled,
// cached in CacheDir, or downloaded from the Source server. An empty
// Source disables downloads and layers which are not found locally are
// skipped.
type Basemap struct {
	Coastlines string `yaml:"coastlines,omitempty" validate:"omitempty,shapefile"`
	Borders    string `yaml:"borders,omitempty" validate:"omitempty,shapefile"`
	Source     string `yaml:"source" validate:"omitempty,http_url"`
	CacheDir   string `yaml:"cache_dir,omitempty"`
}

// Style contains colors and sizes of the drawn map elements.
// Colors are "#rrggbb" strings, one of the names in ParseColor, or
// "none" which makes an element transparent.
// Sizes are in points, except MarkerArea which is in square points.
type Style struct {
	Background      string  `yaml:"background" validate:"required"`
	MarkerColor     string  `yaml:"marker_color" validate:"required"`
	MarkerArea      float64 `yaml:"marker_area" validate:"gt=0"`
	RegionFill      string  `yaml:"region_fill" validate:"required"`
	RegionEdge      string  `yaml:"region_edge" validate:"required"`
	RegionEdgeWidth float64 `yaml:"region_edge_width" validate:"gte=0"`
	LabelFontSize   float64 `yaml:"label_font_size" validate:"gt=0"`
	TickFontSize    float64 `yaml:"tick_font_size" validate:"gt=0"`
	CaptionFontSize float64 `yaml:"caption_font_size" validate:"gt=0"`
	GridLines       bool    `yaml:"grid_lines"`
}

// Logging contains the default slog handler settings.
type Logging struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Default returns the settings which are used when no config file is
// given. They reproduce a 22x12 inches transparent map with 10% edge
// padding and the Natural Earth coastlines and borders.
func Default() *Config {
	return &Config{
		Version: Version,
		Map: Map{
			Padding: model.DefaultPadding,
			Width:   22,
			Height:  12,
			DPI:     100,
		},
		Basemap: Basemap{Source: naturalearth.DefaultBaseURL},
		Style: Style{
			Background:      "none",
			MarkerColor:     "black",
			MarkerArea:      220,
			RegionFill:      "lightgrey",
			RegionEdge:      "black",
			RegionEdgeWidth: 1,
			LabelFontSize:   17,
			TickFontSize:    22,
			CaptionFontSize: 28,
		},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load function loads and validates the path configuration file and
// returns its settings as an instance of the Config struct.
// Returned errors are classified as cerr usage errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerr.Usage(fmt.Errorf("reading config file: %w", err))
	}
	c, err := Parse(data)
	if err != nil {
		return nil, cerr.Usage(fmt.Errorf("config file %q: %w", path, err))
	}
	return c, nil
}

// Parse deserializes data over the Default settings, so omitted keys
// keep their default values. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	c.Version = model.SemVer{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if !Version.Supports(c.Version) {
		return nil, &cerr.MismatchingSemVerError{Version, c.Version}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// shapefile accepts .shp and .zip paths, ignoring the extension case
	err := v.RegisterValidation("shapefile", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(filepath.Ext(fl.Field().String())) {
		case ".shp", ".zip":
			return true
		}
		return false
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the value ranges of all settings and that all colors
// may be parsed.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating settings: %w", err)
	}
	colors := map[string]string{
		"style.background":   c.Style.Background,
		"style.marker_color": c.Style.MarkerColor,
		"style.region_fill":  c.Style.RegionFill,
		"style.region_edge":  c.Style.RegionEdge,
	}
	for key, s := range colors {
		if _, err := ParseColor(s); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// Marshal serializes c as a yaml document which may be loaded again.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
