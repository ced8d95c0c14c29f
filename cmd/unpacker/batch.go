// batch.go: directory-walk batch decoding with a worker pool, one
// worker per core, grounded on the teacher's batch_processor.go.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

type decodeTask struct {
	inputPath  string
	outputPath string
}

type batchStats struct {
	processed int64
	errored   int64
}

// runBatch walks cfg.inputDir for LOG files (every file whose extension
// is neither .index nor .runlength, see isLogFile) and decodes each
// into cfg.outputDir, fanning work out across runtime.NumCPU workers.
func runBatch(cfg cliConfig) error {
	if err := os.MkdirAll(cfg.outputDir, 0750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	workers := runtime.NumCPU()
	if cfg.verbose {
		fmt.Fprintf(os.Stderr, "unpacker: %d workers\n", workers)
	}

	tasks := make(chan decodeTask, workers*2)
	var stats batchStats
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				if err := decodeToFile(t); err != nil {
					atomic.AddInt64(&stats.errored, 1)
					if cfg.verbose {
						fmt.Fprintf(os.Stderr, "unpacker: %s: %v\n", t.inputPath, err)
					}
					continue
				}
				atomic.AddInt64(&stats.processed, 1)
			}
		}()
	}

	walkErr := filepath.Walk(cfg.inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !cfg.recursive && path != cfg.inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !isLogFile(path) {
			return nil
		}

		rel, err := filepath.Rel(cfg.inputDir, path)
		if err != nil {
			return err
		}
		out := filepath.Join(cfg.outputDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".txt")
		tasks <- decodeTask{inputPath: path, outputPath: out}
		return nil
	})
	close(tasks)
	wg.Wait()

	if cfg.verbose {
		fmt.Fprintf(os.Stderr, "unpacker: %d decoded, %d errored\n", stats.processed, stats.errored)
	}
	if walkErr != nil {
		return fmt.Errorf("walking %s: %w", cfg.inputDir, walkErr)
	}
	if stats.errored > 0 {
		return fmt.Errorf("%d file(s) failed to decode", stats.errored)
	}
	return nil
}

func decodeToFile(t decodeTask) error {
	if dir := filepath.Dir(t.outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	out, err := os.Create(t.outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return runSingle(t.inputPath, out)
}

// isLogFile matches the LOG-stream file of a binlog session; its
// sibling .index is required and .runlength is optional, per
// spec.md §6.2.
func isLogFile(path string) bool {
	ext := filepath.Ext(path)
	return ext != ".index" && ext != ".runlength"
}
