package binlog

import (
	"bytes"
	"testing"
)

func TestMemWriterPreservesOrder(t *testing.T) {
	m, err := NewMemWriter(8)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"ab", "cd", "ef"} {
		if _, err := m.Write([]byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.Bytes(); !bytes.Equal(got, []byte("abcdef")) {
		t.Fatalf("got %q, want %q", got, "abcdef")
	}
}

func TestMemWriterResetClears(t *testing.T) {
	m, err := NewMemWriter(4)
	if err != nil {
		t.Fatal(err)
	}
	m.Write([]byte("x"))
	m.Reset()
	if got := m.Bytes(); len(got) != 0 {
		t.Fatalf("expected empty after Reset, got %q", got)
	}
}

func TestMemWriterDrainsWhenFull(t *testing.T) {
	m, err := NewMemWriter(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if _, err := m.Write([]byte{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.Bytes(); len(got) != 10 {
		t.Fatalf("expected 10 bytes accumulated, got %d", len(got))
	}
}
