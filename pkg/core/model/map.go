// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Map is a fully prepared scene. It is built by the map use case and
// consumed once by a renderer which draws, in order, the BaseLayers,
// the Distribution regions (in file order), and the Samples with
// their labels on top of everything else.
type Map struct {
	Extent       Extent
	Samples      Samples
	BaseLayers   []Layer
	Distribution []Region
}
