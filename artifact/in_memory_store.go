// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/go-a2a/gemma-lora/types"
)

// InMemoryStore represents an in-memory implementation of [types.ArtifactStore].
type InMemoryStore struct {
	objects map[string][]byte
	mu      sync.Mutex
}

var _ types.ArtifactStore = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new instance of [InMemoryStore].
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		objects: make(map[string][]byte),
	}
}

// Put implements [types.ArtifactStore].
func (s *InMemoryStore) Put(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data

	return "mem://" + name, nil
}

// Get implements [types.ArtifactStore].
func (s *InMemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, types.ErrArtifactNotFound)
	}
	return slices.Clone(data), nil
}

// List implements [types.ArtifactStore].
func (s *InMemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for _, name := range slices.Sorted(maps.Keys(s.objects)) {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Close implements [types.ArtifactStore].
func (s *InMemoryStore) Close() error {
	return nil
}
