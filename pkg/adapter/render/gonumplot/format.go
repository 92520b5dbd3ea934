// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gonumplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

type format string

// These constants are the supported output formats. Each one is also
// the canonical file extension (without its leading dot).
const (
	formatPNG  format = "png"
	formatJPEG format = "jpeg"
	formatTIFF format = "tiff"
	formatSVG  format = "svg"
	formatPDF  format = "pdf"
	formatEPS  format = "eps"
)

var extensions = map[string]format{
	"png":  formatPNG,
	"jpg":  formatJPEG,
	"jpeg": formatJPEG,
	"tif":  formatTIFF,
	"tiff": formatTIFF,
	"svg":  formatSVG,
	"pdf":  formatPDF,
	"eps":  formatEPS,
}

// UnsupportedFormatError is returned by Render when the output path
// has an extension which can not be produced.
type UnsupportedFormatError struct {
	Ext string
}

func (ufe *UnsupportedFormatError) Error() string {
	if ufe.Ext == "" {
		return fmt.Sprintf(
			"output path has no extension, use one of: %s",
			strings.Join(Formats(), ", "),
		)
	}
	return fmt.Sprintf(
		"unsupported output format %q, use one of: %s",
		ufe.Ext, strings.Join(Formats(), ", "),
	)
}

// Formats returns the sorted list of supported file extensions.
func Formats() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func formatOf(path string) (format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f, found := extensions[ext]
	if !found {
		return "", &UnsupportedFormatError{Ext: ext}
	}
	return f, nil
}

// newCanvas creates a canvas for the f format with the size of r.
// Raster canvases are filled with the background color beforehand,
// so transparent backgrounds stay transparent in PNG and TIFF outputs.
func (r *Renderer) newCanvas(f format) vg.CanvasWriterTo {
	w, h := r.style.Width, r.style.Height
	switch f {
	case formatSVG:
		return vgsvg.New(w, h)
	case formatPDF:
		return vgpdf.New(w, h)
	case formatEPS:
		return vgeps.New(w, h)
	}
	bg := r.style.Background
	if f == formatJPEG && !opaque(bg) {
		bg = color.White
	}
	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(r.style.DPI),
		vgimg.UseBackgroundColor(bg),
	)
	switch f {
	case formatJPEG:
		return vgimg.JpegCanvas{Canvas: c}
	case formatTIFF:
		return vgimg.TiffCanvas{Canvas: c}
	default:
		return vgimg.PngCanvas{Canvas: c}
	}
}

func opaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0xffff
}

// writeFile writes c into a temporary file next to path and renames it
// to path, so readers never observe a partially written image.
func writeFile(path string, c vg.CanvasWriterTo) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = c.WriteTo(tmp); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("setting output file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing output file: %w", err)
	}
	return nil
}
