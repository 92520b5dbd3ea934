// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/momeni/ronamap/pkg/adapter/naturalearth"
	"github.com/momeni/ronamap/pkg/adapter/render/gonumplot"
	"github.com/momeni/ronamap/pkg/core/usecase/mapuc"
	"gonum.org/v1/plot/vg"
)

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"grey":      "#808080",
	"gray":      "#808080",
	"lightgrey": "#d3d3d3",
	"lightgray": "#d3d3d3",
	"darkgrey":  "#a9a9a9",
	"darkgray":  "#a9a9a9",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
}

// ParseColor parses s as a "#rrggbb" or "#rgb" hex color or as one of
// the basic color names (black, white, grey, lightgrey, darkgrey, red,
// green, and blue). The "none" and "transparent" values produce a nil
// color.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "none", "transparent":
		return nil, nil
	}
	if hex, found := namedColors[s]; found {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// UseCase returns the map use case options of c settings.
func (c *Config) UseCase() []mapuc.Option {
	opts := []mapuc.Option{mapuc.WithPadding(c.Map.Padding)}
	if c.Basemap.Coastlines != "" {
		opts = append(opts, mapuc.WithCoastlines(c.Basemap.Coastlines))
	}
	if c.Basemap.Borders != "" {
		opts = append(opts, mapuc.WithBorders(c.Basemap.Borders))
	}
	return opts
}

// Layers returns the naturalearth layers repository options of c
// settings.
func (c *Config) Layers() []naturalearth.Option {
	opts := []naturalearth.Option{naturalearth.WithBaseURL(c.Basemap.Source)}
	if c.Basemap.CacheDir != "" {
		opts = append(opts, naturalearth.WithCacheDir(c.Basemap.CacheDir))
	}
	return opts
}

// Renderer returns the gonumplot renderer options of c settings.
// It fails if some color can not be parsed.
func (c *Config) Renderer() ([]gonumplot.Option, error) {
	s := c.Style
	bg, err := ParseColor(s.Background)
	if err != nil {
		return nil, err
	}
	if bg == nil {
		bg = color.Transparent
	}
	marker, err := ParseColor(s.MarkerColor)
	if err != nil {
		return nil, err
	}
	if marker == nil {
		marker = color.Transparent
	}
	fill, err := ParseColor(s.RegionFill)
	if err != nil {
		return nil, err
	}
	edge, err := ParseColor(s.RegionEdge)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		edge = color.Transparent
	}
	return []gonumplot.Option{
		gonumplot.WithCanvasSize(
			vg.Length(c.Map.Width)*vg.Inch, vg.Length(c.Map.Height)*vg.Inch,
		),
		gonumplot.WithDPI(c.Map.DPI),
		gonumplot.WithBackground(bg),
		gonumplot.WithMarker(marker, vg.Points(math.Sqrt(s.MarkerArea)/2)),
		gonumplot.WithRegionStyle(fill, edge, vg.Points(s.RegionEdgeWidth)),
		gonumplot.WithFontSizes(
			vg.Points(s.LabelFontSize),
			vg.Points(s.TickFontSize),
			vg.Points(s.CaptionFontSize),
		),
		gonumplot.WithGridLines(s.GridLines),
	}, nil
}
