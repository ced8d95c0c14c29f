// decode.go: single-file decode path, wiring unpack.ReadIndex and
// unpack.Decoder against a <log_file>/<log_file>.index/
// <log_file>.runlength triple.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nanolog-go/binlog/unpack"
)

// runSingle decodes logPath (plus its sibling .index and, if present,
// .runlength files) and writes one formatted line per record to out.
func runSingle(logPath string, out io.Writer) error {
	indexFile, err := os.Open(logPath + ".index")
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer indexFile.Close()

	schemas, err := unpack.ReadIndex(indexFile)
	if err != nil {
		return fmt.Errorf("parsing index: %w", err)
	}

	logFile, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()

	var runReader io.Reader
	if runFile, err := os.Open(logPath + ".runlength"); err == nil {
		defer runFile.Close()
		runReader = runFile
	}

	dec := unpack.NewDecoder(schemas, logFile, runReader)
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		fmt.Fprintln(out, unpack.Render(rec))
	}
}
