// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"go.chromium.org/xctest/internal/config"
	"go.chromium.org/xctest/internal/logging"
	"go.chromium.org/xctest/internal/runner"
)

// listCmd implements subcommands.Command to list discovered tests.
type listCmd struct {
	json   bool
	flags  config.Flags
	stdout io.Writer
}

var _ subcommands.Command = &listCmd{}

func newListCmd(stdout io.Writer) *listCmd {
	return &listCmd{stdout: stdout}
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list tests in XCTest bundles" }
func (*listCmd) Usage() string {
	return `Usage: list [flag]... <config.yaml>

Description:
    Lists every test specifier found in the bundles of the suite.

Flag:
`
}

func (lc *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&lc.json, "json", false, "print tests as JSON")
	lc.flags.SetFlags(f)
}

// listedTest is the JSON form of a listed test.
type listedTest struct {
	Name      string `json:"name"`
	Bundle    string `json:"bundle"`
	Specifier string `json:"specifier"`
}

func (lc *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		logging.Info(ctx, "Need exactly one config file.\n\n"+lc.Usage())
		return subcommands.ExitUsageError
	}
	s, err := loadSuite(ctx, f.Arg(0), &lc.flags, f)
	if err != nil {
		logging.Infof(ctx, "Failed to set up: %v", err)
		return subcommands.ExitFailure
	}
	tests, err := runner.New().Discover(ctx, s.format, s.suite)
	if err != nil {
		logging.Infof(ctx, "%v", err)
		return subcommands.ExitFailure
	}

	if lc.json {
		out := make([]listedTest, 0, len(tests))
		for _, t := range tests {
			n := len(t.PathInSuite)
			out = append(out, listedTest{Name: t.FullName(), Bundle: t.PathInSuite[n-2], Specifier: t.PathInSuite[n-1]})
		}
		enc := json.NewEncoder(lc.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			logging.Infof(ctx, "Failed to write tests: %v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	for _, t := range tests {
		if _, err := fmt.Fprintln(lc.stdout, t.FullName()); err != nil {
			logging.Infof(ctx, "Failed to write tests: %v", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
