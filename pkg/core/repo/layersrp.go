// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"errors"

	"github.com/momeni/ronamap/pkg/core/model"
)

// ErrLayerUnavailable is returned by a LayerReader when the data of a
// known layer can not be found locally and fetching it is disabled.
var ErrLayerUnavailable = errors.New("base map layer is unavailable")

// LayerReader loads the regions of a named base map layer, such as
// coastlines or national borders, from its default data source.
type LayerReader interface {
	ReadLayer(ctx context.Context, name string) ([]model.Region, error)
}
