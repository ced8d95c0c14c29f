// ringbuf.go: single-producer/single-consumer ring buffer
//
// This is a trimmed fragment of a commercial lock-free ring buffer,
// kept internal and cut down to the pieces binlog's in-memory Writer
// needs: a power-of-two backed slot array with a padded atomic cursor
// pair. The idle-strategy spin/yield machinery of the original is gone
// since nothing here drains from a background goroutine — binlog's
// in-memory Writer drains synchronously inside Flush.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package ringbuf

import "fmt"

// ErrCapacity is returned when a requested capacity is not a power of two.
var ErrCapacity = fmt.Errorf("ringbuf: capacity must be a power of two")

// ProcessorFunc consumes one slot during Drain.
type ProcessorFunc[T any] func(*T)

// Ring is a fixed-capacity single-producer/single-consumer buffer of T.
//
// Push is called by the one producer; Drain is called by the one
// consumer. Neither side may be called concurrently with itself, but
// Push and Drain may interleave arbitrarily from different goroutines
// thanks to the atomic cursor pair.
type Ring[T any] struct {
	buffer    []T
	capacity  int64
	mask      int64
	tail      PaddedInt64       // next slot the producer will write
	published AtomicPaddedInt64 // highest slot visible to the consumer
	head      AtomicPaddedInt64 // highest slot the consumer has drained
}

// New creates a Ring with the given power-of-two capacity.
func New[T any](capacity int64) (*Ring[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, ErrCapacity
	}
	r := &Ring[T]{
		buffer:   make([]T, capacity),
		capacity: capacity,
		mask:     capacity - 1,
	}
	r.tail.Value = -1
	r.published.Store(-1)
	r.head.Store(-1)
	return r, nil
}

// Push writes one slot via fn and publishes it. Returns false if the
// ring is full (the consumer has not drained fast enough).
func (r *Ring[T]) Push(fn func(*T)) bool {
	next := r.tail.Value + 1
	if next-r.head.Load() > r.capacity {
		return false
	}
	fn(&r.buffer[next&r.mask])
	r.tail.Value = next
	r.published.Store(next)
	return true
}

// Drain processes every published slot not yet seen by the consumer
// and returns how many slots were processed.
func (r *Ring[T]) Drain(process ProcessorFunc[T]) int {
	current := r.head.Load()
	available := r.published.Load()
	if available <= current {
		return 0
	}
	for seq := current + 1; seq <= available; seq++ {
		process(&r.buffer[seq&r.mask])
	}
	count := available - current
	r.head.Store(available)
	return int(count)
}

// Len reports how many published slots are pending drain.
func (r *Ring[T]) Len() int64 {
	return r.published.Load() - r.head.Load()
}
