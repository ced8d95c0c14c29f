// memwriter.go: an in-memory alternative to Writer, for tests and for
// embedding binlog in a process that wants to inspect its own stream
// without touching a filesystem.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

import (
	"sync"

	"github.com/nanolog-go/binlog/internal/ringbuf"
)

// chunk is one write recorded into a MemWriter's ring buffer. Byte
// slices are copied on entry since the caller's buffer is reused
// across calls.
type chunk struct {
	data []byte
}

// MemWriter is a stream backed by a lock-free SPSC ring of byte
// chunks instead of a file. Write is the producer side; Flush, Bytes
// and Reset are the consumer side a test (or an in-process tail
// reader) calls to pull accumulated bytes out in order.
type MemWriter struct {
	ring *ringbuf.Ring[chunk]

	mu  sync.Mutex
	all []byte // Flush folds drained chunks in here for inspection
}

// NewMemWriter builds a MemWriter whose ring holds up to capacity
// pending chunks. capacity must be a power of two.
func NewMemWriter(capacity int64) (*MemWriter, error) {
	r, err := ringbuf.New[chunk](capacity)
	if err != nil {
		return nil, err
	}
	return &MemWriter{ring: r}, nil
}

// Write copies p into the ring. If the ring is full the write blocks
// by draining itself first: a MemWriter has a single consumer (the
// test calling Bytes or Flush), so this never deadlocks in practice,
// only slows the producer until space frees up.
func (m *MemWriter) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)
	for !m.ring.Push(func(c *chunk) { c.data = cp }) {
		m.drainInto()
	}
	return len(p), nil
}

func (m *MemWriter) drainInto() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ring.Drain(func(c *chunk) {
		m.all = append(m.all, c.data...)
	})
}

// Flush drains all pending chunks into the accumulated buffer. It
// never fails.
func (m *MemWriter) Flush() error {
	m.drainInto()
	return nil
}

// Close flushes and reports no error; MemWriter holds no OS resource.
func (m *MemWriter) Close() error {
	return m.Flush()
}

// Bytes flushes and returns everything written so far, in order. The
// returned slice is owned by the caller.
func (m *MemWriter) Bytes() []byte {
	m.drainInto()
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.all))
	copy(out, m.all)
	return out
}

// Reset discards all accumulated and pending bytes.
func (m *MemWriter) Reset() {
	m.drainInto()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.all = m.all[:0]
}
