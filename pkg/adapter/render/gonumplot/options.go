// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gonumplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/vg"
)

// Style holds the drawing parameters of a Renderer.
type Style struct {
	Width, Height vg.Length // canvas size
	DPI           int       // resolution of raster formats
	Background    color.Color

	MarkerColor  color.Color
	MarkerRadius vg.Length

	LabelFontSize vg.Length
	LabelOffset   vg.Length // distance of labels below their markers

	RegionFill      color.Color
	RegionEdge      color.Color
	RegionEdgeWidth vg.Length

	BaseLineColor color.Color
	BaseLineWidth vg.Length

	TickFontSize    vg.Length
	CaptionFontSize vg.Length
	GridLines       bool
}

// DefaultStyle returns the style of a 22x12 inches transparent map with
// black sample markers, 17pt labels, light grey distribution regions
// with black edges, 22pt tick labels, and 28pt axis captions.
func DefaultStyle() Style {
	return Style{
		Width:      22 * vg.Inch,
		Height:     12 * vg.Inch,
		DPI:        100,
		Background: color.Transparent,

		MarkerColor: color.Black,
		// area of a marker is 220 square points
		MarkerRadius: vg.Length(math.Sqrt(220) / 2),

		LabelFontSize: vg.Points(17),
		LabelOffset:   vg.Points(28),

		RegionFill:      color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},
		RegionEdge:      color.Black,
		RegionEdgeWidth: vg.Points(1),

		BaseLineColor: color.Black,
		BaseLineWidth: vg.Points(1),

		TickFontSize:    vg.Points(22),
		CaptionFontSize: vg.Points(28),
	}
}

// Option is a functional option for the Renderer.
type Option func(r *Renderer) error

// WithCanvasSize option configures the canvas width and height.
func WithCanvasSize(width, height vg.Length) Option {
	return func(r *Renderer) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("canvas size (%v x %v) is not positive", width, height)
		}
		r.style.Width, r.style.Height = width, height
		return nil
	}
}

// WithDPI option configures the resolution of raster outputs.
func WithDPI(dpi int) Option {
	return func(r *Renderer) error {
		if dpi <= 0 {
			return fmt.Errorf("dpi (%d) is not positive", dpi)
		}
		r.style.DPI = dpi
		return nil
	}
}

// WithBackground option configures the figure background color.
// Formats without an alpha channel (JPEG) are drawn on white when c
// is not opaque.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) error {
		if c == nil {
			return errors.New("nil background color")
		}
		r.style.Background = c
		return nil
	}
}

// WithMarker option configures the color and radius of sample markers.
func WithMarker(c color.Color, radius vg.Length) Option {
	return func(r *Renderer) error {
		if c == nil || radius <= 0 {
			return errors.New("marker needs a color and a positive radius")
		}
		r.style.MarkerColor, r.style.MarkerRadius = c, radius
		return nil
	}
}

// WithRegionStyle option configures the fill and edge of distribution
// regions. A nil fill leaves regions hollow.
func WithRegionStyle(fill, edge color.Color, edgeWidth vg.Length) Option {
	return func(r *Renderer) error {
		if edge == nil || edgeWidth < 0 {
			return errors.New("region edge needs a color and a non-negative width")
		}
		r.style.RegionFill = fill
		r.style.RegionEdge, r.style.RegionEdgeWidth = edge, edgeWidth
		return nil
	}
}

// WithFontSizes option configures the font sizes of sample labels,
// tick labels, and axis captions.
func WithFontSizes(label, tick, caption vg.Length) Option {
	return func(r *Renderer) error {
		if label <= 0 || tick <= 0 || caption <= 0 {
			return errors.New("font sizes must be positive")
		}
		r.style.LabelFontSize = label
		r.style.TickFontSize = tick
		r.style.CaptionFontSize = caption
		return nil
	}
}

// WithGridLines option makes the renderer draw grid lines behind all
// layers. By default, only tick labels are drawn.
func WithGridLines(enabled bool) Option {
	return func(r *Renderer) error {
		r.style.GridLines = enabled
		return nil
	}
}
