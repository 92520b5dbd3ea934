// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core error types. Errors are classified
// by the stage which has failed, so the CLI can report a distinct
// exit code for each failure category without inspecting messages.
package cerr

import (
	"errors"
	"fmt"
)

// These constants are the process exit codes of each error category.
// Unclassified errors are reported with ExitFailure.
const (
	ExitFailure   = 1
	ExitUsage     = 2
	ExitInput     = 3
	ExitShapefile = 4
	ExitOutput    = 5
)

// Error associates an error with the exit code of its failure category.
// It is created by the Usage, Input, Shapefile, and Output functions and
// may be found in a wrapped errors chain using errors.As or ExitCode.
type Error struct {
	Err      error
	ExitCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Usage wraps errors caused by wrong CLI arguments or config files.
func Usage(err error) *Error {
	return &Error{Err: err, ExitCode: ExitUsage}
}

// Input wraps errors of reading or parsing the samples file.
func Input(err error) *Error {
	return &Error{Err: err, ExitCode: ExitInput}
}

// Shapefile wraps errors of reading distribution or base map shapes.
func Shapefile(err error) *Error {
	return &Error{Err: err, ExitCode: ExitShapefile}
}

// Output wraps errors of rendering or writing the map image, including
// an unsupported output file extension.
func Output(err error) *Error {
	return &Error{Err: err, ExitCode: ExitOutput}
}

// ExitCode returns the exit code of the outer most *Error in the err
// chain, zero for a nil err, and ExitFailure for other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return ExitFailure
}

// ParseError indicates that a line of an input file could not be
// parsed. Line numbers are one-based and count the header line too.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", pe.Path, pe.Line, pe.Err)
}
