// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/ronamap/pkg/core/model"
)

// Renderer draws the m map scene and writes it to the path file.
// Output format is chosen by the path extension and implementations
// must reject extensions which they cannot produce.
// Rendering the same scene twice must overwrite the previous file.
type Renderer interface {
	Render(ctx context.Context, m *model.Map, path string) error
}
