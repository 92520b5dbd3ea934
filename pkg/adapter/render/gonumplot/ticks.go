// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gonumplot

import (
	"strings"

	"gonum.org/v1/plot"
)

// DegreeTicks is a plot.Ticker which places ticks like the
// plot.DefaultTicks and labels major ticks as degrees with their
// hemisphere letter, e.g., 10°E, 10°W, and 0°.
type DegreeTicks struct {
	Positive, Negative string // hemisphere letters
}

// Ticks returns the ticks between min and max.
func (dt DegreeTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue // minor tick
		}
		ticks[i].Label = dt.Label(ticks[i].Value, ticks[i].Label)
	}
	return ticks
}

// Label turns the plain numeric label of the v tick value into a
// degrees label. The numeric label is reused as is (without its sign)
// because it is already rounded to the precision of the tick step.
func (dt DegreeTicks) Label(v float64, numeric string) string {
	numeric = strings.TrimPrefix(numeric, "-")
	if strings.Trim(numeric, "0.") == "" {
		return "0°"
	}
	if v > 0 {
		return numeric + "°" + dt.Positive
	}
	return numeric + "°" + dt.Negative
}
