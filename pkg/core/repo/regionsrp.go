// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/ronamap/pkg/core/model"
)

// RegionReader loads all geometry records of a shapefile at path in
// their stored order. Record attributes are ignored.
type RegionReader interface {
	ReadRegions(ctx context.Context, path string) ([]model.Region, error)
}
