// packer.go: type-directed serialization of call-site schemas and
// per-call payloads onto the three output streams.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

import (
	"encoding/binary"

	"github.com/nanolog-go/binlog/internal/bufferpool"
)

// Packer serializes schema registrations and per-call payloads onto a
// Logger's three streams. It holds no state of its own beyond the
// pending run-length tracker; everything else is derived from the
// arguments handed to it on each call.
type Packer struct {
	log   stream
	index stream
	run   stream

	lastID   uint16
	haveLast bool
	runCount uint64
}

// newPacker builds a Packer writing to the given streams.
func newPacker(log, index, run stream) *Packer {
	return &Packer{log: log, index: index, run: run}
}

// registerCallSite writes the INDEX record for call site id, built from
// format and args, per spec.md §4.3's byte layout:
//
//	format_string_length : u16
//	format_string_bytes
//	num_args              : u8
//	arg_kinds             : num_args x u8
//	per-arg is_constant   : u8, followed by the value if 1
func (p *Packer) registerCallSite(id uint16, format string, args []Arg) error {
	if len(format) > 1<<16-1 {
		return newUnsupportedArgError("format string exceeds 65535 bytes")
	}
	if len(args) > 255 {
		return newUnsupportedArgError("call site has more than 255 arguments")
	}

	buf := bufferpool.Get()
	defer bufferpool.Put(buf)

	var u16buf [2]byte
	binary.LittleEndian.PutUint16(u16buf[:], uint16(len(format)))
	buf.Write(u16buf[:])
	buf.WriteString(format)
	buf.WriteByte(byte(len(args)))
	for _, a := range args {
		buf.WriteByte(a.Kind.Tag())
	}
	for _, a := range args {
		if !a.Constant {
			buf.WriteByte(0)
			continue
		}
		buf.WriteByte(1)
		encoded, err := a.appendTo(nil)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	}

	_, err := p.index.Write(buf.Bytes())
	return err
}

// writeLogEntry applies the run-length update (§4.3.1) for id and
// args, then appends any non-constant argument values to LOG in
// positional order.
func (p *Packer) writeLogEntry(id uint16, args []Arg) error {
	allConstant := true
	for _, a := range args {
		if !a.Constant {
			allConstant = false
			break
		}
	}

	switch {
	case !p.haveLast:
		if err := p.writeID(id); err != nil {
			return err
		}
		p.lastID = id
		p.haveLast = true
		p.runCount = 1
	case id == p.lastID && allConstant:
		p.runCount++
	default:
		if err := p.closeRun(); err != nil {
			return err
		}
		if err := p.writeID(id); err != nil {
			return err
		}
		p.lastID = id
		p.haveLast = true
		p.runCount = 1
	}

	buf := bufferpool.Get()
	defer bufferpool.Put(buf)
	for _, a := range args {
		if a.Constant {
			continue
		}
		buf.Reset()
		encoded, err := a.appendTo(buf.Bytes())
		if err != nil {
			return err
		}
		if _, err := p.log.Write(encoded); err != nil {
			return err
		}
	}
	return nil
}

// writeID appends a bare u16 call-site id to LOG.
func (p *Packer) writeID(id uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], id)
	_, err := p.log.Write(b[:])
	return err
}

// closeRun emits the pending run to RUNLENGTH if it covered more than
// one call, per the boundary behavior in spec.md §8 ("a run of length
// exactly 1 MUST NOT produce a RUNLENGTH record").
func (p *Packer) closeRun() error {
	if !p.haveLast || p.runCount <= 1 {
		p.haveLast = false
		p.runCount = 0
		return nil
	}
	var rec [10]byte
	binary.LittleEndian.PutUint16(rec[0:2], p.lastID)
	binary.LittleEndian.PutUint64(rec[2:10], p.runCount)
	_, err := p.run.Write(rec[:])
	p.haveLast = false
	p.runCount = 0
	return err
}

// flush closes any open run, then flushes all three underlying
// streams, returning the first error encountered. This is where any
// I/O failure swallowed by a prior Write finally surfaces (spec.md
// §7): the hot path never reports one directly.
func (p *Packer) flush() error {
	err := p.closeRun()
	for _, s := range []stream{p.index, p.log, p.run} {
		if ferr := s.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}
