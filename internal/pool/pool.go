// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed [sync.Pool] wrappers for the buffers used while building prompts and encoding JSONL.
package pool

import (
	"bytes"
	"sync"
)

// maxRetained bounds the capacity of buffers returned to a pool.
const maxRetained = 1 << 20

// Pool is a generics wrapper around [sync.Pool].
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) bool
}

// New returns a new [Pool] for T. fn constructs new values and reset prepares a value for
// reuse, reporting false when the value should be dropped instead.
func New[T any](fn func() T, reset func(T) bool) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets x and returns it into the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil && !p.reset(x) {
		return
	}
	p.pool.Put(x)
}

// Buffer provides the [*bytes.Buffer] pooling objects.
var Buffer = New(
	func() *bytes.Buffer { return &bytes.Buffer{} },
	func(b *bytes.Buffer) bool {
		if b.Cap() > maxRetained {
			return false
		}
		b.Reset()
		return true
	},
)

