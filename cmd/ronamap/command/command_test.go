// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/ronamap/cmd/ronamap/command"
	"github.com/momeni/ronamap/internal/test/fixture"
	"github.com/momeni/ronamap/pkg/adapter/config"
	"github.com/momeni/ronamap/pkg/core/cerr"
	"github.com/momeni/ronamap/pkg/core/log"
	"github.com/stretchr/testify/suite"
)

// Natural Earth archive names of the coastlines and borders layers.
const (
	coastlinesZip = "ne_50m_coastline.zip"
	bordersZip    = "ne_50m_admin_0_boundary_lines_land.zip"
)

type CommandTestSuite struct {
	suite.Suite

	Ctx       context.Context
	Dir       string
	Input     string
	Shapefile string
	Logger    *slog.Logger
}

func TestCommandTestSuite(t *testing.T) {
	// the user cache directory keeps the Natural Earth archives
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("LocalAppData", filepath.Join(home, "cache"))
	suite.Run(t, &CommandTestSuite{Ctx: context.Background()})
}

func (cts *CommandTestSuite) SetupSuite() {
	cts.Logger = slog.Default()
	dir, err := os.UserCacheDir()
	cts.Require().NoError(err)
	cache := filepath.Join(dir, "ronamap", "naturalearth")
	cts.Require().NoError(os.MkdirAll(cache, 0o755))
	cts.archive(filepath.Join(cache, coastlinesZip))
	cts.archive(filepath.Join(cache, bordersZip))
}

// archive writes a zipped polyline shapefile at zipPath.
func (cts *CommandTestSuite) archive(zipPath string) {
	shpPath := strings.TrimSuffix(zipPath, ".zip") + ".shp"
	fixture.PolyLines(cts.T(), shpPath, [][][2]float64{
		{{-10, 36}, {-9, 39}, {-8, 42}},
	})
	fixture.Zip(cts.T(), zipPath, shpPath)
}

// writeConfig stores c as a config file and returns its path.
func (cts *CommandTestSuite) writeConfig(c *config.Config) string {
	data, err := c.Marshal()
	cts.Require().NoError(err)
	path := filepath.Join(cts.Dir, "ronamap.yaml")
	cts.Require().NoError(os.WriteFile(path, data, 0o600))
	return path
}

func (cts *CommandTestSuite) TearDownSuite() {
	slog.SetDefault(cts.Logger)
}

func (cts *CommandTestSuite) SetupTest() {
	cts.Dir = cts.T().TempDir()
	cts.Input = fixture.Samples(
		cts.T(), cts.Dir, "coords.csv", "Sample Latitude Longitude",
		"Pop_1 -8.5 41.2",
		"Pop_2 -7.9 38.6",
	)
	cts.Shapefile = filepath.Join(cts.Dir, "dist.shp")
	fixture.Polygons(cts.T(), cts.Shapefile, [][][2]float64{
		{{38, -9}, {42, -9}, {42, -7}, {38, -9}},
	})
}

func (cts *CommandTestSuite) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := command.Run(cts.Ctx, args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (cts *CommandTestSuite) TestPlotPNG() {
	out := filepath.Join(cts.Dir, "map.png")
	_, stderr, err := cts.run(cts.Input, out, cts.Shapefile)
	cts.Require().NoError(err)
	st, err := os.Stat(out)
	cts.Require().NoError(err)
	cts.NotZero(st.Size())
	cts.Contains(stderr, "map is saved")
	for _, layer := range []string{"coastlines", "borders"} {
		cts.Regexp(`msg="loaded base map layer" .*layer=`+layer+` `, stderr)
	}
	cts.NotContains(stderr, "level=WARN")
}

func (cts *CommandTestSuite) TestPlotDownloadsMissingLayers() {
	src := filepath.Join(cts.Dir, "src")
	cts.Require().NoError(os.Mkdir(src, 0o755))
	cts.archive(filepath.Join(src, coastlinesZip))
	cts.archive(filepath.Join(src, bordersZip))
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.ServeFile(w, r, filepath.Join(src, filepath.Base(r.URL.Path)))
		},
	))
	defer srv.Close()

	c := config.Default()
	c.Basemap.Source = srv.URL
	c.Basemap.CacheDir = filepath.Join(cts.Dir, "cache")
	c.Map.Width, c.Map.Height, c.Map.DPI = 4, 3, 40
	cfgPath := cts.writeConfig(c)

	out := filepath.Join(cts.Dir, "map.png")
	for i := 0; i < 2; i++ {
		_, stderr, err := cts.run("-c", cfgPath, cts.Input, out, cts.Shapefile)
		cts.Require().NoError(err)
		cts.NotContains(stderr, "level=WARN")
	}
	cts.EqualValues(2, hits.Load(), "each layer is downloaded once")
	cts.FileExists(filepath.Join(c.Basemap.CacheDir, coastlinesZip))
	cts.FileExists(filepath.Join(c.Basemap.CacheDir, bordersZip))
}

func (cts *CommandTestSuite) TestPlotOfflineSkipsLayers() {
	c := config.Default()
	c.Basemap.Source = ""
	c.Basemap.CacheDir = filepath.Join(cts.Dir, "empty")
	cfgPath := cts.writeConfig(c)

	out := filepath.Join(cts.Dir, "map.png")
	_, stderr, err := cts.run("-c", cfgPath, cts.Input, out, cts.Shapefile)
	cts.Require().NoError(err)
	cts.FileExists(out)
	cts.Contains(stderr, "base map layer is unavailable")
}

func (cts *CommandTestSuite) TestPlotWithBaseMapConfig() {
	coast := filepath.Join(cts.Dir, "coast.shp")
	fixture.PolyLines(cts.T(), coast, [][][2]float64{{{30, -10}, {45, -6}}})

	c := config.Default()
	c.Basemap.Coastlines = coast
	c.Basemap.Borders = coast
	c.Basemap.Source = ""
	c.Map.Width, c.Map.Height, c.Map.DPI = 4, 3, 40
	cfgPath := cts.writeConfig(c)

	out := filepath.Join(cts.Dir, "map.svg")
	_, stderr, err := cts.run(
		"-c", cfgPath, "--log-format", "json", cts.Input, out, cts.Shapefile,
	)
	cts.Require().NoError(err)
	cts.FileExists(out)
	cts.NotContains(stderr, "unavailable")
	cts.NotContains(stderr, "natural earth")
	cts.Contains(stderr, `"msg":"map is saved"`)
}

func (cts *CommandTestSuite) TestErrorExitCodes() {
	out := filepath.Join(cts.Dir, "map.png")
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"missing args", []string{cts.Input, out}, cerr.ExitUsage},
		{"unknown flag", []string{"--nope", cts.Input, out, cts.Shapefile}, cerr.ExitUsage},
		{"bad log level", []string{"--log-level", "loud", cts.Input, out, cts.Shapefile}, cerr.ExitUsage},
		{"missing config", []string{"-c", filepath.Join(cts.Dir, "x.yaml"), cts.Input, out, cts.Shapefile}, cerr.ExitUsage},
		{"missing input", []string{filepath.Join(cts.Dir, "x.csv"), out, cts.Shapefile}, cerr.ExitInput},
		{"missing shapefile", []string{cts.Input, out, filepath.Join(cts.Dir, "x.shp")}, cerr.ExitShapefile},
		{"unsupported output", []string{cts.Input, filepath.Join(cts.Dir, "map.gif"), cts.Shapefile}, cerr.ExitOutput},
	}
	for _, c := range cases {
		_, _, err := cts.run(c.args...)
		cts.Error(err, c.name)
		cts.Equal(c.code, cerr.ExitCode(err), c.name)
	}
	cts.NoFileExists(out)
}

func (cts *CommandTestSuite) TestMalformedInput() {
	bad := fixture.Samples(cts.T(), cts.Dir, "bad.csv", "h", "Pop1 1.0")
	_, _, err := cts.run(bad, filepath.Join(cts.Dir, "map.png"), cts.Shapefile)
	cts.Equal(cerr.ExitInput, cerr.ExitCode(err))
	var pe *cerr.ParseError
	cts.Require().ErrorAs(err, &pe)
	cts.Equal(2, pe.Line)
}

func (cts *CommandTestSuite) TestSamples() {
	stdout, _, err := cts.run("samples", cts.Input)
	cts.Require().NoError(err)
	var d command.Description
	cts.Require().NoError(json.Unmarshal([]byte(stdout), &d))
	cts.Equal(2, d.Count)
	cts.Equal("Pop_1", d.Samples[0].Name)
	cts.Equal(41.2, d.Samples[0].Latitude)
	cts.Equal(-8.5, d.Samples[0].Longitude)
	cts.InDelta(38.6-3.86, d.Extent.MinLat, 1e-9)
	cts.InDelta(-9.35, d.Extent.MinLon, 1e-9)
}

func (cts *CommandTestSuite) TestFormatsAndConfig() {
	stdout, _, err := cts.run("formats")
	cts.Require().NoError(err)
	cts.Contains(strings.Fields(stdout), "svg")
	cts.Contains(strings.Fields(stdout), "png")

	stdout, _, err = cts.run("config", "--log-level", "debug")
	cts.Require().NoError(err)
	c, err := config.Parse([]byte(stdout))
	cts.Require().NoError(err)
	cts.Equal("debug", c.Logging.Level)
}

func (cts *CommandTestSuite) TestReport() {
	var logs, out bytes.Buffer
	cts.Require().NoError(log.Setup(&logs, "info", "text"))

	code := command.Report(cts.Ctx, &out, cerr.Usage(errors.New("accepts 3 arg(s)")))
	cts.Equal(cerr.ExitUsage, code)
	cts.Equal("Error: accepts 3 arg(s)\n", out.String())
	cts.Contains(logs.String(), `msg="ronamap failed" err="accepts 3 arg(s)" exit=2`)

	out.Reset()
	code = command.Report(cts.Ctx, &out, cerr.Shapefile(errors.New("bad shp")))
	cts.Equal(cerr.ExitShapefile, code)
	cts.Empty(out.String())
	cts.Contains(logs.String(), `err="bad shp" exit=4`)
}
