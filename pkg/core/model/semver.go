// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer represents a released semantic version, consisting of three
// components, namely the major, minor, and patch versions.
// It is used for versioning of the configuration file format, so
// a binary can reject files which were written for a newer format.
type SemVer [3]uint

// UnmarshalText deserializes text byte slice as a string consisting of
// one to three dot-separated numbers and fills the sv SemVer instance.
// Missing components are taken as zero, so "1" means "1.0.0".
// In case of errors, sv will be left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if len(p) > 3 {
		return fmt.Errorf("the %q has wrong number of components", text)
	}
	var v SemVer
	for i, c := range p {
		n, err := strconv.ParseUint(c, 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", c)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `sv` semantic version as its string representation.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// Supports reports if a file which was written with the `other`
// version may be read by code which implements the sv version.
// Major versions must match and other minor version may not be newer.
func (sv SemVer) Supports(other SemVer) bool {
	return sv[0] == other[0] && other[1] <= sv[1]
}

// String returns the sv semantic version as a dot-separated string
// like major.minor.patch.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}
