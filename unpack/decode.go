// decode.go: the LOG+RUNLENGTH co-walk described in spec.md §4.6,
// expanding collapsed runs and resolving each record against its
// schema.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package unpack

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/nanolog-go/binlog"
)

// Record is one fully-resolved logged call: its schema and the
// argument values in positional order (constants pulled from the
// schema, non-constants read from LOG).
type Record struct {
	Schema *Schema
	Values []binlog.Arg
}

// pendingRun is a peeked-ahead RUNLENGTH record not yet consumed.
type pendingRun struct {
	id    uint16
	count uint64
	valid bool
}

// Decoder co-walks LOG and RUNLENGTH against a schema table built by
// ReadIndex, yielding Records in physical program order.
type Decoder struct {
	schemas []Schema
	log     *bufio.Reader
	run     *bufio.Reader

	peeked pendingRun

	currentID       uint16
	remainingRepeat uint64
	haveCurrent     bool
}

// NewDecoder builds a Decoder over the given streams. runR may be nil
// or empty (spec.md §4.6: RUNLENGTH "MAY be empty or absent").
func NewDecoder(schemas []Schema, logR io.Reader, runR io.Reader) *Decoder {
	if runR == nil {
		runR = io.NopCloser(new(zeroReader))
	}
	return &Decoder{
		schemas: schemas,
		log:     bufio.NewReader(logR),
		run:     bufio.NewReader(runR),
	}
}

type zeroReader struct{}

func (*zeroReader) Read([]byte) (int, error) { return 0, io.EOF }

// Next returns the next resolved Record, or io.EOF once LOG is
// exhausted and no repeats of the current run remain; RUNLENGTH
// records left unread at that point are ignored.
func (d *Decoder) Next() (Record, error) {
	if d.remainingRepeat == 0 {
		id, err := d.readLogID()
		if err == io.EOF {
			return Record{}, io.EOF
		}
		if err != nil {
			return Record{}, err
		}

		if err := d.fillPeek(); err != nil {
			return Record{}, err
		}
		if d.peeked.valid && d.peeked.id == id {
			d.remainingRepeat = d.peeked.count
			d.peeked.valid = false
		} else {
			d.remainingRepeat = 1
		}
		d.currentID = id
		d.haveCurrent = true
	}

	if int(d.currentID) >= len(d.schemas) {
		return Record{}, newInconsistentStreamsError(d.currentID, len(d.schemas))
	}
	schema := &d.schemas[d.currentID]

	values := make([]binlog.Arg, len(schema.Args))
	for i, spec := range schema.Args {
		if spec.Constant {
			values[i] = spec.Value
			continue
		}
		v, err := binlog.DecodeArg(spec.Kind, d.log)
		if err != nil {
			return Record{}, err
		}
		values[i] = v
	}

	d.remainingRepeat--
	return Record{Schema: schema, Values: values}, nil
}

// readLogID reads the next u16 call-site id from LOG.
func (d *Decoder) readLogID() (uint16, error) {
	var buf [2]byte
	n, err := io.ReadFull(d.log, buf[:])
	if err == io.EOF && n == 0 {
		return 0, io.EOF
	}
	if err != nil {
		return 0, wrapTruncated("log", err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// fillPeek ensures d.peeked holds the next RUNLENGTH record, if any,
// without consuming it from the stream's perspective beyond the read
// already performed (RUNLENGTH records are read once and cached until
// matched or superseded).
func (d *Decoder) fillPeek() error {
	if d.peeked.valid {
		return nil
	}
	var idBuf [2]byte
	n, err := io.ReadFull(d.run, idBuf[:])
	if err == io.EOF && n == 0 {
		return nil
	}
	if err != nil {
		return wrapTruncated("runlength", err)
	}
	var countBuf [8]byte
	if _, err := io.ReadFull(d.run, countBuf[:]); err != nil {
		return wrapTruncated("runlength", err)
	}
	d.peeked = pendingRun{
		id:    binary.LittleEndian.Uint16(idBuf[:]),
		count: binary.LittleEndian.Uint64(countBuf[:]),
		valid: true,
	}
	return nil
}

// All drains the Decoder to completion, returning every Record in
// order. Useful for tests and for the CLI's single-file mode.
func (d *Decoder) All() ([]Record, error) {
	var out []Record
	for {
		rec, err := d.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
