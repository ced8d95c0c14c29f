// pool.go: pooled scratch buffers for assembling INDEX records and
// LOG argument values without a per-call allocation.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0

package bufferpool

import (
	"bytes"
	"sync"
)

// Configuration constants for buffer pool behavior
const (
	// MaxBufferSize is the maximum buffer capacity before dropping.
	// Buffers larger than this are discarded to prevent memory bloat.
	MaxBufferSize = 1 << 20 // 1 MiB

	// DefaultCapacity is the initial capacity hint for new buffers.
	// This reduces reallocations for typical log entry sizes.
	DefaultCapacity = 512 // 512 bytes
)

// pool is the global sync.Pool for reusing byte buffers.
// Using sync.Pool provides automatic garbage collection coordination
// and scales well across multiple goroutines.
var pool = sync.Pool{
	New: func() any {
		// Pre-allocate with default capacity to reduce early reallocations
		buf := bytes.NewBuffer(make([]byte, 0, DefaultCapacity))
		return buf
	},
}

// Get returns a clean (Reset) *bytes.Buffer from the pool, ready for
// immediate use with no leftover content.
func Get() *bytes.Buffer {
	b := pool.Get().(*bytes.Buffer)
	b.Reset() // Ensure buffer is clean
	return b
}

// Put returns the buffer to the pool. If it has grown too large, its
// backing array is replaced instead of pooling it, trading one extra
// allocation now for bounded steady-state memory use.
func Put(b *bytes.Buffer) {
	if b == nil {
		return
	}

	if b.Cap() > MaxBufferSize {
		*b = *bytes.NewBuffer(make([]byte, 0, DefaultCapacity))
	}

	b.Reset() // Clean buffer before returning to pool
	pool.Put(b)
}
