package ringbuf

import "testing"

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := New[int](3); err != ErrCapacity {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if _, err := New[int](0); err != ErrCapacity {
		t.Fatalf("expected ErrCapacity for zero capacity, got %v", err)
	}
}

func TestPushDrainOrder(t *testing.T) {
	r, err := New[int](8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 5; i++ {
		v := i
		if !r.Push(func(slot *int) { *slot = v }) {
			t.Fatalf("push %d failed unexpectedly", i)
		}
	}

	var got []int
	n := r.Drain(func(slot *int) { got = append(got, *slot) })
	if n != 5 {
		t.Fatalf("drained %d items, want 5", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after full drain", r.Len())
	}
}

func TestPushFailsWhenFull(t *testing.T) {
	r, err := New[int](2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !r.Push(func(slot *int) { *slot = 1 }) {
		t.Fatal("push 1 should succeed")
	}
	if !r.Push(func(slot *int) { *slot = 2 }) {
		t.Fatal("push 2 should succeed")
	}
	if r.Push(func(slot *int) { *slot = 3 }) {
		t.Fatal("push 3 should fail: ring is full")
	}
	r.Drain(func(*int) {})
	if !r.Push(func(slot *int) { *slot = 3 }) {
		t.Fatal("push 3 should succeed after drain")
	}
}
