// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the expected interfaces from the adapters
// layer which are used by the use cases layer. Use cases only depend
// on these interfaces, so file formats and drawing libraries may be
// replaced without touching them.
package repo

import (
	"context"

	"github.com/momeni/ronamap/pkg/core/model"
)

// SampleReader reads the sampling sites of an input file at path.
// Returned samples keep the order of rows in that file.
type SampleReader interface {
	ReadSamples(ctx context.Context, path string) (model.Samples, error)
}
