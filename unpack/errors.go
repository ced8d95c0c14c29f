// errors.go: decoder-side error construction, reusing the producer's
// FormatError taxonomy and error codes.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package unpack

import (
	"io"

	"github.com/agilira/go-errors"
	"github.com/nanolog-go/binlog"
)

func wrapTruncated(stream string, cause error) error {
	if cause == io.EOF || cause == io.ErrUnexpectedEOF {
		return errors.New(binlog.ErrCodeTruncated, "stream ended mid-record").
			WithSeverity("error").
			WithContext("stream", stream)
	}
	return errors.Wrap(cause, binlog.ErrCodeIO, "I/O failure reading binlog stream").
		WithSeverity("error").
		WithContext("stream", stream)
}

func newInconsistentStreamsError(id uint16, schemaCount int) error {
	return errors.New(binlog.ErrCodeInconsistentStreams, "LOG references an id absent from INDEX").
		WithSeverity("error").
		WithContext("id", id).
		WithContext("known_schemas", schemaCount)
}
