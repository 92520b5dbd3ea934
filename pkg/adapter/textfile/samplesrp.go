// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package textfile is an adapter which reads sample coordinates from
// whitespace-delimited text files. The first line of a file is its
// header and is dropped without inspection. Each remaining non-blank
// line must contain at least three fields: the sample name and two
// coordinates. Extra fields are ignored.
package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/momeni/ronamap/pkg/core/cerr"
	"github.com/momeni/ronamap/pkg/core/model"
	"github.com/momeni/ronamap/pkg/core/repo"
)

// MinFields is the number of fields which a data row must contain.
const MinFields = 3

type samplesRepo struct{}

// New instantiates a samples repository reading text files.
func New() repo.SampleReader {
	return samplesRepo{}
}

// ReadSamples opens the path file and parses it with Parse.
// The file is closed before returning, on both success and failure.
func (samplesRepo) ReadSamples(ctx context.Context, path string) (model.Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(ctx, path, f)
}

// Parse reads samples from r. The name is only used for reporting
// the location of malformed rows as *cerr.ParseError instances.
// The second field of each row is stored as the Longitude and the
// third field is stored as the Latitude of its sample.
func Parse(ctx context.Context, name string, r io.Reader) (model.Samples, error) {
	br := bufio.NewReader(r)
	var samples model.Samples
	for lineNo := 1; ; lineNo++ {
		// rows may be longer than bufio.MaxScanTokenSize
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if line == "" && err != nil {
			break
		}
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if fields := strings.Fields(line); lineNo > 1 && len(fields) > 0 {
			s, err := parseFields(fields)
			if err != nil {
				return nil, &cerr.ParseError{Path: name, Line: lineNo, Err: err}
			}
			samples = append(samples, s)
		}
		if err != nil {
			break
		}
	}
	return samples, nil
}

func parseFields(fields []string) (model.Sample, error) {
	if len(fields) < MinFields {
		return model.Sample{}, fmt.Errorf(
			"expected at least %d fields, got %d", MinFields, len(fields),
		)
	}
	lon, err := parseCoordinate(fields[1])
	if err != nil {
		return model.Sample{}, fmt.Errorf("field #2: %w", err)
	}
	lat, err := parseCoordinate(fields[2])
	if err != nil {
		return model.Sample{}, fmt.Errorf("field #3: %w", err)
	}
	return model.Sample{Name: fields[0], Latitude: lat, Longitude: lon}, nil
}

func parseCoordinate(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("coordinate is not a finite number")
	}
	return v, nil
}
