// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"errors"
	"io"
)

// ErrArtifactNotFound reports a name with no stored artifact.
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore stores produced dataset files so a remote tuning service can read them.
type ArtifactStore interface {
	// Put stores the content of r under name and returns the URI the tuning service reads it from.
	Put(ctx context.Context, name string, r io.Reader, contentType string) (string, error)

	// Get returns the content stored under name, or an error wrapping [ErrArtifactNotFound].
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases the store's resources.
	Close() error
}
