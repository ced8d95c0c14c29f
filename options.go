// options.go: functional options for tuning a Logger's Writer buffer
// capacities at construction time.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

// Option configures a Logger at Open time.
type Option func(*config)

type config struct {
	logCapacity   int
	indexCapacity int
	runCapacity   int
}

func defaultConfig() config {
	return config{
		logCapacity:   DefaultLogBufferSize,
		indexCapacity: DefaultIndexBufferSize,
		runCapacity:   DefaultRunLengthBufferSize,
	}
}

// WithLogBufferSize overrides the LOG stream's buffer capacity.
func WithLogBufferSize(bytes int) Option {
	return func(c *config) { c.logCapacity = bytes }
}

// WithIndexBufferSize overrides the INDEX stream's buffer capacity.
func WithIndexBufferSize(bytes int) Option {
	return func(c *config) { c.indexCapacity = bytes }
}

// WithRunLengthBufferSize overrides the RUNLENGTH stream's buffer
// capacity.
func WithRunLengthBufferSize(bytes int) Option {
	return func(c *config) { c.runCapacity = bytes }
}
