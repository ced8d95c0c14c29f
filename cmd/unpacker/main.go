// unpacker: CLI that decodes a binlog LOG/INDEX/RUNLENGTH triple back
// into formatted text.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"flag"
	"fmt"
	"os"
)

const usage = `unpacker - decode a binlog session to formatted text

USAGE:
    unpacker <log_file>
    unpacker -i <dir> -o <dir> -r

Given a single <log_file>, unpacker looks for <log_file>.index alongside
it and, optionally, <log_file>.runlength. Output is one formatted line
per resolved log record, in physical order, written to stdout.

OPTIONS:
`

type cliConfig struct {
	inputDir  string
	outputDir string
	recursive bool
	verbose   bool
}

func main() {
	cfg, args := parseFlags()

	if cfg.inputDir != "" {
		if cfg.outputDir == "" {
			fmt.Fprintln(os.Stderr, "unpacker: -o is required with -i")
			os.Exit(1)
		}
		if err := runBatch(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "unpacker: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := runSingle(args[0], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "unpacker: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (cliConfig, []string) {
	var cfg cliConfig
	flag.StringVar(&cfg.inputDir, "i", "", "input directory for batch mode")
	flag.StringVar(&cfg.outputDir, "o", "", "output directory for batch mode")
	flag.BoolVar(&cfg.recursive, "r", false, "recurse into subdirectories")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose progress output")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()
	return cfg, flag.Args()
}
