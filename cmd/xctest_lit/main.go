// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package main implements xctest_lit, which lists and runs XCTest bundles
// one test at a time and reports PASS, FAIL or UNRESOLVED for each.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"go.chromium.org/xctest/internal/command"
	"go.chromium.org/xctest/internal/logging"
)

// Version is filled in at build time.
var Version = "<unknown>"

func newLogger(verbose, logTime bool) logging.Logger {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.NewSinkLogger(level, logTime, logging.NewWriterSink(os.Stderr))
}

// doMain is separate from main so that its deferred calls run before
// os.Exit.
func doMain() int {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(newListCmd(os.Stdout), "")
	subcommands.Register(newRunCmd(os.Stdout), "")

	version := flag.Bool("version", false, "print version and exit")
	verbose := flag.Bool("verbose", false, "log process invocations")
	logTime := flag.Bool("logtime", true, "prefix logs with timestamps")
	flag.Parse()

	if *version {
		fmt.Printf("xctest_lit version %s\n", Version)
		return 0
	}

	ctx := logging.AttachLogger(context.Background(), newLogger(*verbose, *logTime))
	command.InstallSignalHandler(os.Stderr, func(os.Signal) {})
	return int(subcommands.Execute(ctx))
}

func main() {
	os.Exit(doMain())
}
