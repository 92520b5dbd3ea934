// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/ronamap/pkg/core/model"
)

// MismatchingSemVerError indicates an error condition where a version
// which is supported by this binary was expected, but an incompatible
// version was present. The first element is the supported version and
// the second element is the actual version.
type MismatchingSemVerError [2]model.SemVer

// Error returns a string representation of `msve` error instance. This
// method causes *MismatchingSemVerError to implement error interface.
func (msve *MismatchingSemVerError) Error() string {
	supported := (*msve)[0]
	actual := (*msve)[1]
	return fmt.Sprintf(
		"v%s is not compatible with the supported v%s",
		actual.String(), supported.String(),
	)
}
