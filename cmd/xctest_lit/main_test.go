// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"

	"go.chromium.org/xctest/internal/logging"
	"go.chromium.org/xctest/internal/logging/loggingtest"
	"go.chromium.org/xctest/internal/reporting"
	"go.chromium.org/xctest/testutil"
)

const finderScript = `
case "${1##*/}" in
A.xctest) echo '{"testSpecifiers": ["A.T/testPass", "A.T/testFail", null, "A.T/testOther"]}' ;;
PerfTestsB.xctest) echo '{"testSpecifiers": ["B.T/testPerf"]}' ;;
*) echo "cannot load $1" >&2; exit 1 ;;
esac
`

const xctestScript = `
case "$2" in
*/testPass|*/testPerf)
	echo "Executed 1 test, with 0 failures" >&2
	echo "Test Suite 'Selected tests' passed" >&2
	;;
*/testFail)
	echo "Executed 1 test, with 1 failure" >&2
	exit 1
	;;
*)
	echo "Executed 0 tests, with 0 failures" >&2
	;;
esac
`

// writeSuite lays out a suite with fake tools and returns its config path.
func writeSuite(t *testing.T) string {
	td := testutil.TempDir(t)
	if err := testutil.WriteFiles(td, map[string]string{
		"tests/A.xctest/":          "",
		"tests/PerfTestsB.xctest/": "",
		"tests/README":             "",
	}); err != nil {
		t.Fatal(err)
	}
	testutil.WriteExecutable(t, td, "finder", finderScript)
	xc := testutil.WriteExecutable(t, td, "xctest", xctestScript)
	cfg := `name: foundation
tests_dir: tests
bundle_test_finder: finder
developer_dir: /Applications/Xcode.app/Contents/Developer
xctest: [` + xc + `]
clean_environment: true
jobs: 1
`
	if err := testutil.WriteFiles(td, map[string]string{"lit.yaml": cfg}); err != nil {
		t.Fatal(err)
	}
	return filepath.Join(td, "lit.yaml")
}

func execute(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	logger := loggingtest.NewLogger(t, logging.LevelInfo)
	ctx := logging.AttachLogger(context.Background(), logger)
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	status := cmd.Execute(ctx, fs)
	return status, logger.String()
}

func TestListCmd(t *testing.T) {
	cfg := writeSuite(t)
	var out bytes.Buffer
	if status, logs := execute(t, newListCmd(&out), cfg); status != subcommands.ExitSuccess {
		t.Fatalf("list returned %v; logs:\n%s", status, logs)
	}
	want := `foundation :: A.xctest/A.T/testPass
foundation :: A.xctest/A.T/testFail
foundation :: A.xctest/A.T/testOther
`
	if diff := cmp.Diff(out.String(), want); diff != "" {
		t.Errorf("Output mismatch (-got +want):\n%s", diff)
	}
}

func TestListCmdJSONWithPerf(t *testing.T) {
	cfg := writeSuite(t)
	var out bytes.Buffer
	if status, logs := execute(t, newListCmd(&out), "-json", "-perf", cfg); status != subcommands.ExitSuccess {
		t.Fatalf("list returned %v; logs:\n%s", status, logs)
	}
	var got []listedTest
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := []listedTest{
		{Name: "foundation :: A.xctest/A.T/testPass", Bundle: "A.xctest", Specifier: "A.T/testPass"},
		{Name: "foundation :: A.xctest/A.T/testFail", Bundle: "A.xctest", Specifier: "A.T/testFail"},
		{Name: "foundation :: A.xctest/A.T/testOther", Bundle: "A.xctest", Specifier: "A.T/testOther"},
		{Name: "foundation :: PerfTestsB.xctest/B.T/testPerf", Bundle: "PerfTestsB.xctest", Specifier: "B.T/testPerf"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Listed tests mismatch (-got +want):\n%s", diff)
	}
}

func TestListCmdUsage(t *testing.T) {
	var out bytes.Buffer
	if status, _ := execute(t, newListCmd(&out)); status != subcommands.ExitUsageError {
		t.Errorf("list with no config returned %v; want %v", status, subcommands.ExitUsageError)
	}
}

func TestRunCmd(t *testing.T) {
	cfg := writeSuite(t)
	resDir := filepath.Join(testutil.TempDir(t), "results")
	var out bytes.Buffer
	status, logs := execute(t, newRunCmd(&out), "-results", resDir, cfg)
	if status != subcommands.ExitFailure {
		t.Errorf("run returned %v; want %v; logs:\n%s", status, subcommands.ExitFailure, logs)
	}
	want := `Failed Tests (1):
  foundation :: A.xctest/A.T/testFail

Unresolved Tests (1):
  foundation :: A.xctest/A.T/testOther

  Passed     : 1
  Failed     : 1
  Unresolved : 1
`
	if diff := cmp.Diff(out.String(), want); diff != "" {
		t.Errorf("Summary mismatch (-got +want):\n%s", diff)
	}
	for _, fn := range []string{reporting.ResultsJSONFilename, reporting.JUnitXMLFilename} {
		if _, err := os.Stat(filepath.Join(resDir, fn)); err != nil {
			t.Errorf("%s not written: %v", fn, err)
		}
	}
}

func TestRunCmdNoExecute(t *testing.T) {
	cfg := writeSuite(t)
	var out bytes.Buffer
	if status, logs := execute(t, newRunCmd(&out), "-n", cfg); status != subcommands.ExitSuccess {
		t.Fatalf("run -n returned %v; logs:\n%s", status, logs)
	}
	if diff := cmp.Diff(out.String(), "  Passed     : 3\n"); diff != "" {
		t.Errorf("Summary mismatch (-got +want):\n%s", diff)
	}
}

func TestRunCmdBadDeveloperDir(t *testing.T) {
	cfg := writeSuite(t)
	var out bytes.Buffer
	if status, _ := execute(t, newRunCmd(&out), "-developer_dir", "relative/dir", cfg); status != subcommands.ExitFailure {
		t.Errorf("run returned %v; want %v", status, subcommands.ExitFailure)
	}
	if out.Len() != 0 {
		t.Errorf("run printed %q; want nothing", out.String())
	}
}
