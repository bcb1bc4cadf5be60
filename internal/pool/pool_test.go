// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool_test

import (
	"testing"

	"github.com/go-a2a/gemma-lora/internal/pool"
)

func TestBufferReset(t *testing.T) {
	buf := pool.Buffer.Get()
	buf.WriteString("QUESTION:")
	pool.Buffer.Put(buf)

	got := pool.Buffer.Get()
	defer pool.Buffer.Put(got)
	if got.Len() != 0 {
		t.Errorf("Buffer.Get() returned %d unread bytes, want 0", got.Len())
	}
}

func TestPoolDropsRejected(t *testing.T) {
	created := 0
	p := pool.New(
		func() []byte {
			created++
			return make([]byte, 0, 8)
		},
		func(b []byte) bool { return cap(b) <= 8 },
	)

	p.Put(make([]byte, 0, 64))
	b := p.Get()
	if cap(b) != 8 {
		t.Errorf("Get() cap = %d, want 8 (oversized value must not be pooled)", cap(b))
	}
	if created != 1 {
		t.Errorf("constructor called %d times, want 1", created)
	}
}
