// writer.go: the buffered, write-through byte sink backing each of the
// LOG/INDEX/RUNLENGTH streams.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

import (
	"os"
	"sync"
)

// Default buffer capacities. LOG is hot-path and latency-sensitive;
// INDEX and RUNLENGTH are small and rare, per the format spec's
// component design for the buffered Writer.
const (
	DefaultLogBufferSize       = 1 << 20 // 1 MiB
	DefaultIndexBufferSize     = 32
	DefaultRunLengthBufferSize = 32
)

// stream is the contract every output sink (file-backed or in-memory)
// satisfies.
type stream interface {
	Write(p []byte) (int, error)
	Flush() error
	Close() error
}

// Writer is a buffered sink over a single os.File. It appends to an
// in-memory buffer and drains to the file only when the buffer would
// overflow, on Flush, or for a single write larger than the whole
// buffer.
type Writer struct {
	file *os.File
	path string
	buf  []byte
	fill int

	mu       sync.Mutex
	deferred error
	warnOnce sync.Once
}

// NewWriter opens path for writing, truncating any existing content,
// and wraps it in a buffer of the given capacity.
func NewWriter(path string, capacity int) (*Writer, error) {
	if capacity <= 0 {
		capacity = DefaultLogBufferSize
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, newIOError(err, path)
	}
	return &Writer{
		file: f,
		path: path,
		buf:  make([]byte, capacity),
	}, nil
}

// Write appends p to the buffer, draining first if p would overflow
// it. A write larger than the whole buffer is drained around and
// written directly. Write never reports an I/O failure to its caller:
// the producer hot path is infallible by contract (spec.md §7). Any
// error encountered while draining or writing directly is captured in
// w.deferred and only surfaced later, from Flush or Close.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(p) > len(w.buf) {
		w.drainLocked()
		if _, err := w.file.Write(p); err != nil {
			w.setDeferredLocked(err)
		}
		return len(p), nil
	}

	if w.fill+len(p) > len(w.buf) {
		w.drainLocked()
	}
	copy(w.buf[w.fill:], p)
	w.fill += len(p)
	return len(p), nil
}

// drainLocked writes any buffered bytes to the file and resets fill to
// zero, regardless of whether the write succeeded: bytes already
// handed to the kernel cannot be un-buffered and retried without
// risking unbounded growth on a wedged file, so a drain failure is
// recorded in w.deferred rather than left in the buffer. Callers must
// hold w.mu.
func (w *Writer) drainLocked() {
	if w.fill == 0 {
		return
	}
	_, err := w.file.Write(w.buf[:w.fill])
	w.fill = 0
	if err != nil {
		w.setDeferredLocked(err)
	}
}

func (w *Writer) setDeferredLocked(err error) {
	if w.deferred == nil {
		w.deferred = err
	}
}

// Flush drains the buffer to the file and returns the first deferred
// I/O error seen since the last Flush, if any — whether it came from
// this drain or from an earlier Write that swallowed its failure. No
// fsync is performed; the format spec requires only fflush semantics.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drainLocked()
	err := w.deferred
	w.deferred = nil
	return err
}

// Close flushes then closes the underlying file, returning whichever
// error occurred first.
func (w *Writer) Close() error {
	flushErr := w.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// CloseQuiet flushes and closes w, swallowing any error after
// reporting it exactly once via the package ErrorHandler. This is the
// drop() contract from the format spec's error design: errors at
// shutdown are swallowed but logged once.
func (w *Writer) CloseQuiet() {
	if err := w.Close(); err != nil {
		w.warnOnce.Do(func() {
			handleError(newIOError(err, w.path))
		})
	}
}
