// logger.go: Logger owns the three output streams and the Packer,
// and allocates call-site ids in first-registration order.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

import "sync"

// maxCallSites is the largest number of distinct format strings a
// single Logger can register: the on-disk id is a u16 (spec.md §4.4).
const maxCallSites = 1 << 16

// Logger is the producer-side entry point: it owns the LOG, INDEX and
// RUNLENGTH Writers and the Packer that serializes onto them, and
// hands out call-site ids in registration order. logIndex, log, Flush
// and Close all take the Logger's one mutex, so calls from several
// goroutines are serialized; goroutines racing on the first hit of the
// same Site may each register a schema for it (see site.go).
type Logger struct {
	log   *Writer
	index *Writer
	run   *Writer

	packer *Packer

	mu     sync.Mutex
	nextID uint32 // next id to allocate; compared against maxCallSites
}

// Open creates (truncating) basePath, basePath+".index" and
// basePath+".runlength", wiring a Logger over them.
func Open(basePath string, opts ...Option) (*Logger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	logW, err := NewWriter(basePath, cfg.logCapacity)
	if err != nil {
		return nil, err
	}
	indexW, err := NewWriter(basePath+".index", cfg.indexCapacity)
	if err != nil {
		logW.CloseQuiet()
		return nil, err
	}
	runW, err := NewWriter(basePath+".runlength", cfg.runCapacity)
	if err != nil {
		logW.CloseQuiet()
		indexW.CloseQuiet()
		return nil, err
	}

	return &Logger{
		log:    logW,
		index:  indexW,
		run:    runW,
		packer: newPacker(logW, indexW, runW),
	}, nil
}

// logIndex registers format as a new call site and returns its id.
// Called by Site.id on a Site's first hit.
func (l *Logger) logIndex(format string, args []Arg) (uint16, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.nextID >= maxCallSites {
		return 0, newTooManyCallSitesError(l.nextID)
	}
	id := uint16(l.nextID)
	if err := l.packer.registerCallSite(id, format, args); err != nil {
		return 0, err
	}
	l.nextID++
	return id, nil
}

// log appends one LOG record for the already-registered id. This is
// the hot path spec.md §6.2 and §7 require to be infallible: the
// underlying Writers never return an I/O error from Write, so the only
// way this returns non-nil is a genuine encoding failure (an
// unsupported Arg), never a stalled or broken output file.
func (l *Logger) log(id uint16, args []Arg) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.packer.writeLogEntry(id, args)
}

// Flush forces durability of everything written so far: it closes any
// pending run and drains all three Writer buffers. It returns the
// first deferred I/O error seen, clearing it.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.packer.flush()
}

// Close flushes the Logger then releases its file handles. Errors
// from the final flush are returned; errors from closing the
// underlying files are swallowed but logged once each, matching
// spec.md §4.2's drop() contract.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.packer.flush()
	l.log.CloseQuiet()
	l.index.CloseQuiet()
	l.run.CloseQuiet()
	return err
}
