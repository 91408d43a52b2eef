// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package xctest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/xctest/internal/genericexec"
	"go.chromium.org/xctest/internal/harness"
)

func TestClassify(t *testing.T) {
	argv := []string{"xcrun", "xctest", "-XCTest", "Foo.Bar/testBaz", "/t/My Tests.xctest"}
	const (
		executed = "Test Suite 'Selected tests' started\nExecuted 1 test, with 0 failures (0 unexpected) in 0.001 (0.002) seconds\n"
		passed   = "Test Suite 'Selected tests' passed at 2023-01-01 00:00:00.000.\n"
	)

	for _, tc := range []struct {
		name   string
		stdout string
		stderr string
		exit   int
		want   *harness.Result
	}{
		{
			name: "not run",
			want: &harness.Result{
				Code:   harness.Unresolved,
				Output: "unexpected XCTest output (test was not run):\n\nxcrun xctest -XCTest Foo.Bar/testBaz '/t/My Tests.xctest'\n",
			},
		},
		{
			name:   "zero tests executed",
			stdout: "out\n",
			stderr: "Executed 0 tests, with 0 failures\n",
			want: &harness.Result{
				Code:   harness.Unresolved,
				Output: "unexpected XCTest output (test was not run):\n\nxcrun xctest -XCTest Foo.Bar/testBaz '/t/My Tests.xctest'\nout\nExecuted 0 tests, with 0 failures\n",
			},
		},
		{
			name:   "failure",
			stdout: "out\n",
			stderr: "boom",
			exit:   1,
			want:   &harness.Result{Code: harness.Fail, Output: "out\nboomExit Status: 1"},
		},
		{
			name:   "failure with markers",
			stderr: executed,
			exit:   65,
			want:   &harness.Result{Code: harness.Fail, Output: executed + "Exit Status: 65"},
		},
		{
			name:   "killed",
			stderr: "",
			exit:   -1,
			want:   &harness.Result{Code: harness.Fail, Output: "Exit Status: -1"},
		},
		{
			name:   "missing pass marker",
			stderr: executed,
			want: &harness.Result{
				Code:   harness.Unresolved,
				Output: "Unable to find \"Test Suite 'Selected tests' passed\" in XCTest output:\n\n" + executed,
			},
		},
		{
			name:   "pass",
			stdout: "log\n",
			stderr: executed + passed,
			want:   &harness.Result{Code: harness.Pass},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(&genericexec.Result{Argv: argv, Stdout: tc.stdout, Stderr: tc.stderr, ExitCode: tc.exit})
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Classify mismatch (-got +want):\n%s", diff)
			}
		})
	}
}
