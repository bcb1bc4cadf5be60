// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput reports source data that is not the expected nested structure.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingField reports a record lacking a required member.
	ErrMissingField = errors.New("missing field")

	// ErrLengthMismatch reports a record whose context and label sequences differ in length.
	ErrLengthMismatch = errors.New("context and label length mismatch")

	// ErrIO reports a source that cannot be read or a destination that cannot be written.
	ErrIO = errors.New("i/o failure")
)

// FieldError describes a problem with one member of one source record.
type FieldError struct {
	Record string
	Field  string
	Err    error
}

// Error returns a string representation of the [FieldError].
func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %q: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("record %q: field %q: %v", e.Record, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// NotImplementedError is the error type for unimplemented behaviour.
type NotImplementedError string

// Error returns a string representation of the [NotImplementedError].
func (e NotImplementedError) Error() string {
	return string(e)
}
