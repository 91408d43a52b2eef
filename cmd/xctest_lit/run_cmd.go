// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"go.chromium.org/xctest/internal/config"
	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/internal/logging"
	"go.chromium.org/xctest/internal/reporting"
	"go.chromium.org/xctest/internal/runner"
)

// runCmd implements subcommands.Command to run tests.
type runCmd struct {
	noExecute  bool
	resultsDir string
	showOutput bool
	flags      config.Flags
	stdout     io.Writer
}

var _ subcommands.Command = &runCmd{}

func newRunCmd(stdout io.Writer) *runCmd {
	return &runCmd{stdout: stdout}
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run tests in XCTest bundles" }
func (*runCmd) Usage() string {
	return `Usage: run [flag]... <config.yaml>

Description:
    Runs every test specifier of the suite on its own with xctest and
    reports PASS, FAIL or UNRESOLVED for each. Exits with status 1 unless
    every test passed.

Flag:
`
}

func (rc *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&rc.noExecute, "n", false, "discover tests but do not execute them")
	f.StringVar(&rc.resultsDir, "results", "", "directory to write results.json and results.xml to")
	f.BoolVar(&rc.showOutput, "show_output", false, "log the output of non-passing tests")
	rc.flags.SetFlags(f)
}

func (rc *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		logging.Info(ctx, "Need exactly one config file.\n\n"+rc.Usage())
		return subcommands.ExitUsageError
	}
	s, err := loadSuite(ctx, f.Arg(0), &rc.flags, f)
	if err != nil {
		logging.Infof(ctx, "Failed to set up: %v", err)
		return subcommands.ExitFailure
	}

	r := runner.New(runner.WithTimeout(s.cfg.Timeout))
	tests, err := r.Discover(ctx, s.format, s.suite)
	if err != nil {
		logging.Infof(ctx, "%v", err)
		return subcommands.ExitFailure
	}
	results, err := r.Run(ctx, s.format, tests, &harness.RunConfig{NoExecute: rc.noExecute, Jobs: s.cfg.Jobs})
	if err != nil {
		logging.Infof(ctx, "%v", err)
		return subcommands.ExitFailure
	}

	if rc.showOutput {
		for _, res := range results {
			if res.Code.IsFailure() {
				logging.Infof(ctx, "%s: %s\n%s", res.Code, res.Test.FullName(), res.Output)
			}
		}
	}
	if rc.resultsDir != "" {
		if err := rc.writeResults(s.cfg.Name, results); err != nil {
			logging.Infof(ctx, "Failed to write results: %v", err)
			return subcommands.ExitFailure
		}
	}

	sum := reporting.Summarize(results)
	if err := reporting.WriteSummary(rc.stdout, sum); err != nil {
		logging.Infof(ctx, "Failed to write summary: %v", err)
		return subcommands.ExitFailure
	}
	if !sum.OK() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (rc *runCmd) writeResults(suiteName string, results []*runner.Result) error {
	if err := os.MkdirAll(rc.resultsDir, 0755); err != nil {
		return err
	}
	if err := reporting.WriteResultsJSON(filepath.Join(rc.resultsDir, reporting.ResultsJSONFilename), results); err != nil {
		return err
	}
	return reporting.WriteJUnitXML(filepath.Join(rc.resultsDir, reporting.JUnitXMLFilename), suiteName, results)
}
