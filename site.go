// site.go: call-site macro emulation. Go has no compile-time macros,
// so a literal format string's call-site id is cached in a per-site
// atomic slot that is populated exactly once, at the first call
// through that physical Site value.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

import "sync/atomic"

// noID is the sentinel for "not yet registered". Valid ids start at 0,
// so the slot is biased by one: stored = id+1, with 0 meaning unset.
const noID uint32 = 0

// Site stands in for the single static slot of integer type the
// format spec's call-site macro (§4.5) would allocate at each
// expansion site in a language with compile-time macros. Declare one
// package-level Site per call site and reuse it across every call
// through that site:
//
//	var helloSite binlog.Site
//
//	func greet(l *binlog.Logger) error {
//		return binlog.Log(l, &helloSite, "Hello, {}!", binlog.Str("world"))
//	}
//
// A Site must never be shared between two distinct format strings;
// doing so registers whichever string happens to win the race to
// initialize the slot.
type Site struct {
	slot atomic.Uint32
}

// id returns the site's registered id, registering format with l on
// the first call. Concurrent first calls on the same Site are safe
// but may each register a schema before losing the compare-and-swap;
// see DESIGN.md's Open Questions for why this is acceptable.
func (s *Site) id(l *Logger, format string, args []Arg) (uint16, error) {
	if v := s.slot.Load(); v != noID {
		return uint16(v - 1), nil
	}
	id, err := l.logIndex(format, args)
	if err != nil {
		return 0, err
	}
	s.slot.CompareAndSwap(noID, uint32(id)+1)
	return id, nil
}

// Log is the call-site shim standing in for the format spec's macro
// expansion (§4.5): it resolves site's id (registering format on the
// first call) and then always delegates to Logger.log with the
// supplied arguments. A non-nil return means argument encoding failed,
// not that the write was lost to a stalled file: I/O errors are never
// surfaced here, only from Flush or Close (spec.md §7).
func Log(l *Logger, site *Site, format string, args ...Arg) error {
	id, err := site.id(l, format, args)
	if err != nil {
		return err
	}
	return l.log(id, args)
}
