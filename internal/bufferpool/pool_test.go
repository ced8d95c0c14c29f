// pool_test.go: test suite for the pooled scratch buffers
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0

package bufferpool

import (
	"bytes"
	"sync"
	"testing"
)

// TestGetReturnsCleanBuffer tests that Get() returns a clean buffer
func TestGetReturnsCleanBuffer(t *testing.T) {
	buf := Get()
	if buf == nil {
		t.Fatal("Get() returned nil buffer")
	}

	if buf.Len() != 0 {
		t.Errorf("Expected clean buffer with len=0, got len=%d", buf.Len())
	}

	if buf.Cap() < DefaultCapacity {
		t.Errorf("Expected buffer capacity >= %d, got %d", DefaultCapacity, buf.Cap())
	}

	Put(buf)
}

// TestPutWithNilBuffer tests that Put() handles nil gracefully
func TestPutWithNilBuffer(t *testing.T) {
	// Should not panic
	Put(nil)
}

// TestBufferReuse tests that buffers are properly reused
func TestBufferReuse(t *testing.T) {
	// Get and put a buffer
	buf1 := Get()
	buf1.WriteString("test data")
	Put(buf1)

	// Get another buffer - should be reused
	buf2 := Get()

	// Should be clean even though we wrote to it before
	if buf2.Len() != 0 {
		t.Errorf("Reused buffer should be clean, got len=%d", buf2.Len())
	}

	Put(buf2)
}

// TestOversizedBufferDrop tests that oversized buffers are dropped
func TestOversizedBufferDrop(t *testing.T) {
	buf := Get()

	// Make buffer oversized by writing large amount of data
	largeData := make([]byte, MaxBufferSize+1)
	buf.Write(largeData)

	if buf.Cap() <= MaxBufferSize {
		t.Skipf("Buffer didn't grow as expected, cap=%d", buf.Cap())
	}

	Put(buf)

	// Get another buffer - should be fresh due to drop
	buf2 := Get()
	if buf2.Cap() > MaxBufferSize {
		t.Errorf("New buffer after drop should be normal size, got cap=%d", buf2.Cap())
	}

	Put(buf2)
}

// TestConcurrentAccess tests thread safety
func TestConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const opsPerGoroutine = 50

	var wg sync.WaitGroup

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < opsPerGoroutine; j++ {
				buf := Get()
				buf.WriteString("concurrent test data")
				Put(buf)
			}
		}()
	}

	wg.Wait()
}

// TestBufferCapacityGrowth tests buffer growth behavior
func TestBufferCapacityGrowth(t *testing.T) {
	buf := Get()
	initialCap := buf.Cap()

	// Write data to force growth
	data := make([]byte, initialCap*2)
	buf.Write(data)

	if buf.Cap() <= initialCap {
		t.Errorf("Buffer should have grown, initial=%d, current=%d", initialCap, buf.Cap())
	}

	Put(buf)

	// Get another buffer - capacity behavior depends on whether it was dropped
	buf2 := Get()
	Put(buf2)
}

// TestDefaultCapacity tests that new buffers have expected capacity
func TestDefaultCapacity(t *testing.T) {
	// Force allocation of new buffer
	bufs := make([]*bytes.Buffer, 10)
	for i := range bufs {
		bufs[i] = Get()
	}

	// Check that at least one has expected capacity
	foundExpectedCap := false
	for _, buf := range bufs {
		if buf.Cap() >= DefaultCapacity {
			foundExpectedCap = true
			break
		}
	}

	if !foundExpectedCap {
		t.Errorf("Expected at least one buffer with capacity >= %d", DefaultCapacity)
	}

	for _, buf := range bufs {
		Put(buf)
	}
}

// TestMaxBufferSizeConstant tests the MaxBufferSize constant
func TestMaxBufferSizeConstant(t *testing.T) {
	if MaxBufferSize != 1<<20 {
		t.Errorf("MaxBufferSize should be 1 MiB (1048576), got %d", MaxBufferSize)
	}
}

// TestDefaultCapacityConstant tests the DefaultCapacity constant
func TestDefaultCapacityConstant(t *testing.T) {
	if DefaultCapacity != 512 {
		t.Errorf("DefaultCapacity should be 512, got %d", DefaultCapacity)
	}
}
