// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gonumplot is an adapter which draws map scenes with the
// gonum plot library. Maps use the equirectangular (Plate Carree)
// projection, so degrees are mapped linearly to the canvas axes.
// Layers are drawn bottom-up: optional grid lines, base map lines,
// distribution regions in their file order, sample markers, and at
// last the sample labels.
package gonumplot

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/momeni/ronamap/pkg/core/log"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/momeni/ronamap/pkg/core/repo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Captions of the horizontal and vertical axes.
const (
	CaptionX = "Longitude"
	CaptionY = "Latitude"
)

// Renderer draws model.Map scenes. It is stateless between Render
// calls, so a Renderer may be reused for several maps.
type Renderer struct {
	style Style
}

var _ repo.Renderer = (*Renderer)(nil)

// New instantiates a Renderer with DefaultStyle, updated by opts.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{style: DefaultStyle()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return r, nil
}

// Style returns a copy of the drawing parameters of r.
func (r *Renderer) Style() Style {
	return r.style
}

// Render draws m and writes it to the path file. The output format is
// chosen by the path extension (see Formats). The file is replaced
// atomically, so a failed render keeps any previous file intact.
func (r *Renderer) Render(ctx context.Context, m *model.Map, path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	p, err := r.newPlot(m)
	if err != nil {
		return fmt.Errorf("preparing plot: %w", err)
	}
	c := r.newCanvas(f)
	p.Draw(draw.New(c))
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = writeFile(path, c); err != nil {
		return err
	}
	log.Debug(
		ctx, "map is drawn",
		slog.String("format", string(f)),
		slog.Int("layers", len(m.BaseLayers)),
	)
	return nil
}

func (r *Renderer) newPlot(m *model.Map) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = r.style.Background
	if r.style.GridLines {
		p.Add(plotter.NewGrid())
	}
	base := draw.LineStyle{
		Color: r.style.BaseLineColor,
		Width: r.style.BaseLineWidth,
	}
	for _, l := range m.BaseLayers {
		for i, region := range l.Regions {
			if err := r.addRegion(p, region, nil, base); err != nil {
				return nil, fmt.Errorf("%s region #%d: %w", l.Name, i, err)
			}
		}
	}
	edge := draw.LineStyle{
		Color: r.style.RegionEdge,
		Width: r.style.RegionEdgeWidth,
	}
	for i, region := range m.Distribution {
		if err := r.addRegion(p, region, r.style.RegionFill, edge); err != nil {
			return nil, fmt.Errorf("distribution region #%d: %w", i, err)
		}
	}
	if err := r.addSamples(p, m.Samples); err != nil {
		return nil, err
	}
	r.setupAxes(p, m.Extent)
	return p, nil
}

// addRegion adds plotters which draw region to p. Polygons are filled
// with fill (unless it is nil) and stroked with edge, polylines are
// stroked with edge, and points are drawn as small dots.
func (r *Renderer) addRegion(
	p *plot.Plot, region model.Region, fill color.Color, edge draw.LineStyle,
) error {
	switch region.Kind {
	case model.GeometryPolygon:
		var rings []plotter.XYer
		for _, ring := range region.Rings {
			if len(ring) >= 3 {
				rings = append(rings, regionXYs(ring))
			}
		}
		if len(rings) == 0 {
			return nil
		}
		poly, err := plotter.NewPolygon(rings...)
		if err != nil {
			return err
		}
		poly.Color = fill
		poly.LineStyle = edge
		p.Add(poly)
	case model.GeometryPolyLine:
		for _, ring := range region.Rings {
			if len(ring) < 2 {
				continue
			}
			line, err := plotter.NewLine(regionXYs(ring))
			if err != nil {
				return err
			}
			line.LineStyle = edge
			p.Add(line)
		}
	case model.GeometryPoint:
		for _, ring := range region.Rings {
			s, err := plotter.NewScatter(regionXYs(ring))
			if err != nil {
				return err
			}
			s.GlyphStyle = draw.GlyphStyle{
				Color:  edge.Color,
				Radius: vg.Points(1.5),
				Shape:  draw.CircleGlyph{},
			}
			p.Add(s)
		}
	default:
		return fmt.Errorf("unsupported geometry: %v", region.Kind)
	}
	return nil
}

// regionXYs places shapefile coordinates on the plot, longitude on
// the horizontal axis and latitude on the vertical axis.
func regionXYs(ring model.Ring) plotter.XYs {
	xys := make(plotter.XYs, len(ring))
	for i, c := range ring {
		xys[i].X, xys[i].Y = c.Lon, c.Lat
	}
	return xys
}

// addSamples adds the sample markers and their labels. A sample is
// placed at (Latitude, Longitude) as its (x, y) point, matching the
// extent whose latitude pair spans the horizontal axis.
func (r *Renderer) addSamples(p *plot.Plot, samples model.Samples) error {
	xys := make(plotter.XYs, len(samples))
	labels := make([]string, len(samples))
	for i, s := range samples {
		xys[i].X, xys[i].Y = s.Latitude, s.Longitude
		labels[i] = s.Label()
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("sample markers: %w", err)
	}
	sc.GlyphStyle = draw.GlyphStyle{
		Color:  r.style.MarkerColor,
		Radius: r.style.MarkerRadius,
		Shape:  draw.CircleGlyph{},
	}
	lb, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("sample labels: %w", err)
	}
	for i := range lb.TextStyle {
		lb.TextStyle[i].Font.Size = r.style.LabelFontSize
		lb.TextStyle[i].XAlign = text.XCenter
		lb.TextStyle[i].YAlign = text.YBottom
	}
	lb.Offset = vg.Point{Y: -r.style.LabelOffset}
	p.Add(sc, lb)
	return nil
}

// setupAxes fixes the visible area to the e extent. It must be called
// after all plotters are added because p.Add grows the axes ranges to
// include the data of added plotters.
func (r *Renderer) setupAxes(p *plot.Plot, e model.Extent) {
	edges := e.Slice()
	p.X.Min, p.X.Max = widen(edges[0], edges[1])
	p.Y.Min, p.Y.Max = widen(edges[2], edges[3])
	p.X.Padding, p.Y.Padding = 0, 0

	p.X.Tick.Marker = DegreeTicks{Positive: "E", Negative: "W"}
	p.Y.Tick.Marker = DegreeTicks{Positive: "N", Negative: "S"}
	p.X.Tick.Label.Font.Size = r.style.TickFontSize
	p.Y.Tick.Label.Font.Size = r.style.TickFontSize

	p.X.Label.Text = CaptionX
	p.Y.Label.Text = CaptionY
	p.X.Label.TextStyle.Font.Size = r.style.CaptionFontSize
	p.Y.Label.TextStyle.Font.Size = r.style.CaptionFontSize
}

// widen returns a non-empty range for drawing. A degenerate extent
// (one sample on the origin) is opened by one degree on each side.
func widen(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}
