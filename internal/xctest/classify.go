// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package xctest

import (
	"fmt"
	"strings"

	"go.chromium.org/xctest/internal/genericexec"
	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/shutil"
)

const (
	// ExecutedMarker appears in xctest's stderr when exactly one test ran.
	ExecutedMarker = "Executed 1 test"

	// PassedMarker appears in xctest's stderr when the selected test passed.
	PassedMarker = "Test Suite 'Selected tests' passed"
)

// Classify turns a finished xctest run into a harness result.
//
// The checks are ordered: a zero exit without ExecutedMarker is Unresolved,
// since xctest also exits 0 when a specifier matched nothing. A non-zero
// exit is Fail. A zero exit without PassedMarker is Unresolved.
func Classify(res *genericexec.Result) *harness.Result {
	switch {
	case res.ExitCode == 0 && !strings.Contains(res.Stderr, ExecutedMarker):
		return &harness.Result{
			Code: harness.Unresolved,
			Output: fmt.Sprintf("unexpected XCTest output (test was not run):\n\n%s\n%s%s",
				shutil.Join(res.Argv), res.Stdout, res.Stderr),
		}
	case res.ExitCode != 0:
		return &harness.Result{
			Code:   harness.Fail,
			Output: fmt.Sprintf("%s%sExit Status: %d", res.Stdout, res.Stderr, res.ExitCode),
		}
	case !strings.Contains(res.Stderr, PassedMarker):
		return &harness.Result{
			Code: harness.Unresolved,
			Output: fmt.Sprintf("Unable to find %q in XCTest output:\n\n%s%s",
				PassedMarker, res.Stdout, res.Stderr),
		}
	default:
		return &harness.Result{Code: harness.Pass}
	}
}
