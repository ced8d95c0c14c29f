// errors.go: error taxonomy for the binlog producer and decoder
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

import (
	"fmt"
	"os"
	"runtime"

	"github.com/agilira/go-errors"
)

// Error codes for the closed FormatError taxonomy described in the
// format spec's error-handling design. Producer-side errors
// (Io, TooManyCallSites, UnsupportedArg) can be raised by Logger and
// Packer; decoder-side errors (Truncated, UnknownTag,
// InconsistentStreams) are raised only on the decode path: by
// DecodeArg and KindFromTag here, and by the unpack package, which
// reuses these same codes.
const (
	ErrCodeIO                  errors.ErrorCode = "BINLOG_IO"
	ErrCodeTooManyCallSites    errors.ErrorCode = "BINLOG_TOO_MANY_CALL_SITES"
	ErrCodeUnsupportedArg      errors.ErrorCode = "BINLOG_UNSUPPORTED_ARG"
	ErrCodeTruncated           errors.ErrorCode = "BINLOG_TRUNCATED"
	ErrCodeUnknownTag          errors.ErrorCode = "BINLOG_UNKNOWN_TAG"
	ErrCodeInconsistentStreams errors.ErrorCode = "BINLOG_INCONSISTENT_STREAMS"
)

// ErrorHandler processes an error raised internally when there is no
// caller around to hand it to directly (the swallowed-but-logged-once
// case at Writer.CloseQuiet described in the format spec's error design).
type ErrorHandler func(err *errors.Error)

// defaultErrorHandler prints each error it is given to stderr.
var defaultErrorHandler ErrorHandler = func(err *errors.Error) {
	fmt.Fprintf(os.Stderr, "[binlog] %s: %s\n", err.Code, err.Message)
	if err.Cause != nil {
		fmt.Fprintf(os.Stderr, "[binlog] caused by: %v\n", err.Cause)
	}
}

var currentErrorHandler = defaultErrorHandler

// SetErrorHandler overrides how binlog reports errors it cannot return
// to a caller. Passing nil restores the default stderr handler.
func SetErrorHandler(handler ErrorHandler) {
	if handler == nil {
		currentErrorHandler = defaultErrorHandler
		return
	}
	currentErrorHandler = handler
}

func handleError(err *errors.Error) {
	if err == nil {
		return
	}
	currentErrorHandler(err)
}

func newIOError(cause error, path string) *errors.Error {
	err := errors.Wrap(cause, ErrCodeIO, "I/O failure on binlog stream").
		WithSeverity("error").
		WithContext("path", path)
	return err
}

func newTooManyCallSitesError(attempted uint32) *errors.Error {
	return errors.New(ErrCodeTooManyCallSites, "call-site id space exhausted").
		WithSeverity("error").
		WithContext("attempted_id", attempted).
		WithContext("max_call_sites", maxCallSites)
}

func newUnsupportedArgError(detail string) *errors.Error {
	return errors.NewWithField(ErrCodeUnsupportedArg, "unsupported argument value", "detail", detail).
		WithSeverity("error")
}

func newUnknownTagError(tag uint8) *errors.Error {
	if pc, file, line, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			return errors.New(ErrCodeUnknownTag, "unknown ArgKind tag byte").
				WithSeverity("error").
				WithContext("tag", tag).
				WithContext("caller_func", fn.Name()).
				WithContext("caller_file", file).
				WithContext("caller_line", line)
		}
	}
	return errors.New(ErrCodeUnknownTag, "unknown ArgKind tag byte").
		WithSeverity("error").
		WithContext("tag", tag)
}

func newTruncatedError(stream string, offset int64) *errors.Error {
	return errors.New(ErrCodeTruncated, "stream ended mid-record").
		WithSeverity("error").
		WithContext("stream", stream).
		WithContext("offset", offset)
}

func newInconsistentStreamsError(id uint16, schemaCount int) *errors.Error {
	return errors.New(ErrCodeInconsistentStreams, "RUNLENGTH references an id absent from INDEX").
		WithSeverity("error").
		WithContext("id", id).
		WithContext("known_schemas", schemaCount)
}

// IsRetryableError reports whether err is a *errors.Error marked
// retryable.
func IsRetryableError(err error) bool {
	if fe, ok := err.(*errors.Error); ok {
		return fe.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the ErrorCode from err, or "" if err is not a
// binlog FormatError.
func GetErrorCode(err error) errors.ErrorCode {
	if fe, ok := err.(*errors.Error); ok {
		return fe.ErrorCode()
	}
	return ""
}

// IsFormatError checks whether err is a binlog FormatError with the
// given code.
func IsFormatError(err error, code errors.ErrorCode) bool {
	return errors.HasCode(err, code)
}
