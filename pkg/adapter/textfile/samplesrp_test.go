// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package textfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/momeni/ronamap/pkg/adapter/textfile"
	"github.com/momeni/ronamap/pkg/core/cerr"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coords.csv")
	data := "Sample_names Longitude Latitude\n" +
		"Pop1 10.0 20.0\n" +
		"\n" +
		"  Pop_2\t-8.5   41.25  extra columns\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	ss, err := textfile.New().ReadSamples(context.Background(), path)
	require.NoError(t, err)
	expected := model.Samples{
		{Name: "Pop1", Latitude: 20.0, Longitude: 10.0},
		{Name: "Pop_2", Latitude: 41.25, Longitude: -8.5},
	}
	if diff := cmp.Diff(expected, ss); diff != "" {
		t.Errorf("unexpected samples (-want +got):\n%s", diff)
	}
	assert.Len(t, ss.Names(), 2)
	assert.Len(t, ss.Latitudes(), 2)
	assert.Len(t, ss.Longitudes(), 2)
}

func TestParseHeaderOnly(t *testing.T) {
	ss, err := textfile.Parse(
		context.Background(), "h", strings.NewReader("name lon lat\n"),
	)
	require.NoError(t, err)
	assert.Empty(t, ss)
}

func TestParseHeaderIsNotValidated(t *testing.T) {
	ss, err := textfile.Parse(
		context.Background(), "h", strings.NewReader("x\nA 1 2"),
	)
	require.NoError(t, err)
	assert.Equal(t, model.Samples{{Name: "A", Latitude: 2, Longitude: 1}}, ss)
}

func TestParseLongRows(t *testing.T) {
	extra := strings.Repeat("x", 70000)
	data := "h " + extra + "\nA 10.0 20.0 " + extra + "\r\nB -1 -2 " + extra
	ss, err := textfile.Parse(context.Background(), "c.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, model.Samples{
		{Name: "A", Latitude: 20, Longitude: 10},
		{Name: "B", Latitude: -2, Longitude: -1},
	}, ss)

	path := filepath.Join(t.TempDir(), "c.csv")
	require.NoError(t, os.WriteFile(path, []byte(data+"\n"), 0o600))
	ss, err = textfile.New().ReadSamples(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, ss, 2)
}

func TestParseMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		data string
		line int
	}{
		{"too few fields", "h\nA 1 2\nB 3\n", 3},
		{"non numeric", "h\nA one 2\n", 2},
		{"not finite", "h\nA 1 NaN\n", 2},
		{"infinite", "h\n\nA Inf 2\n", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := textfile.Parse(
				context.Background(), "in.csv", strings.NewReader(c.data),
			)
			var pe *cerr.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, c.line, pe.Line)
			assert.Equal(t, "in.csv", pe.Path)
		})
	}
	_, err := textfile.Parse(
		context.Background(), "in.csv", strings.NewReader("h\nA x 2\n"),
	)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestReadSamplesMissingFile(t *testing.T) {
	_, err := textfile.New().ReadSamples(
		context.Background(), filepath.Join(t.TempDir(), "nope.csv"),
	)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
