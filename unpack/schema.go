// schema.go: INDEX stream parser, rebuilding the dense table of
// call-site schemas a producer built up during a session.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package unpack

import (
	"encoding/binary"
	"io"

	"github.com/nanolog-go/binlog"
)

// ArgSpec describes one positional argument of a call site: its kind,
// whether it's schema-resident, and its constant value when it is.
type ArgSpec struct {
	Kind     binlog.ArgKind
	Constant bool
	Value    binlog.Arg // valid only when Constant
}

// Schema is the decoder's reconstruction of one producer-side
// CallSite: its format string plus the per-position argument
// descriptions spec.md §3 defines.
type Schema struct {
	ID     uint16
	Format string
	Args   []ArgSpec
}

// ReadIndex parses r as a complete INDEX stream (spec.md §6.1) and
// returns the resulting schema table, indexed by registration order
// starting at 0.
func ReadIndex(r io.Reader) ([]Schema, error) {
	var schemas []Schema
	for {
		schema, err := readOneSchema(r)
		if err == io.EOF {
			return schemas, nil
		}
		if err != nil {
			return nil, err
		}
		schema.ID = uint16(len(schemas))
		schemas = append(schemas, schema)
	}
}

func readOneSchema(r io.Reader) (Schema, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return Schema{}, io.EOF
		}
		return Schema{}, wrapTruncated("index", err)
	}
	formatLen := binary.LittleEndian.Uint16(lenBuf[:])

	formatBuf := make([]byte, formatLen)
	if formatLen > 0 {
		if _, err := io.ReadFull(r, formatBuf); err != nil {
			return Schema{}, wrapTruncated("index", err)
		}
	}

	var numArgsBuf [1]byte
	if _, err := io.ReadFull(r, numArgsBuf[:]); err != nil {
		return Schema{}, wrapTruncated("index", err)
	}
	numArgs := int(numArgsBuf[0])

	tags := make([]byte, numArgs)
	if numArgs > 0 {
		if _, err := io.ReadFull(r, tags); err != nil {
			return Schema{}, wrapTruncated("index", err)
		}
	}

	args := make([]ArgSpec, numArgs)
	for i, tag := range tags {
		kind, err := binlog.KindFromTag(tag)
		if err != nil {
			return Schema{}, err
		}
		args[i].Kind = kind

		var flagBuf [1]byte
		if _, err := io.ReadFull(r, flagBuf[:]); err != nil {
			return Schema{}, wrapTruncated("index", err)
		}
		if flagBuf[0] == 0 {
			continue
		}
		args[i].Constant = true
		val, err := binlog.DecodeArg(kind, r)
		if err != nil {
			return Schema{}, err
		}
		args[i].Value = val
	}

	return Schema{Format: string(formatBuf), Args: args}, nil
}
