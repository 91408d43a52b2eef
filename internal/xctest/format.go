// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package xctest

import (
	"context"
	"encoding/json"
	"iter"
	"path/filepath"
	"sort"
	"strings"

	"go.chromium.org/xctest/errors"
	"go.chromium.org/xctest/internal/genericexec"
	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/internal/logging"
	"go.chromium.org/xctest/internal/toolchain"
	"go.chromium.org/xctest/shutil"
)

// DefaultXCTest returns the command that executes XCTest bundles.
func DefaultXCTest() genericexec.Cmd {
	return genericexec.CommandExec("xcrun", "xctest")
}

// Format is a harness.Format for XCTest bundles in one directory.
// It holds no mutable state and is safe for concurrent use.
type Format struct {
	tc       *toolchain.Context
	testsDir string
	finder   genericexec.Cmd
	xctest   genericexec.Cmd
}

var _ harness.Format = &Format{}

// Option customizes a Format.
type Option func(*Format)

// WithXCTest replaces the command used to execute tests, which defaults to
// DefaultXCTest().
func WithXCTest(cmd genericexec.Cmd) Option {
	return func(f *Format) { f.xctest = cmd }
}

// NewFormat returns a Format for the bundles in testsDir. finder is the bundle
// test finder; it is run with the bundle path as its only argument.
func NewFormat(tc *toolchain.Context, testsDir string, finder genericexec.Cmd, opts ...Option) *Format {
	f := &Format{
		tc:       tc,
		testsDir: testsDir,
		finder:   finder,
		xctest:   DefaultXCTest(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TestsInDirectory implements harness.Format.
//
// Discovery always covers the whole tests directory; pathInSuite is only
// used as the prefix of the yielded test paths. Bundles are visited in
// lexicographic order. A bundle's tests are yielded only once its
// specifiers were listed successfully; the first failing bundle ends the
// iteration with an error.
func (f *Format) TestsInDirectory(ctx context.Context, suite *harness.Suite, pathInSuite []string, cfg *harness.SuiteConfig) iter.Seq2[*harness.Test, error] {
	return func(yield func(*harness.Test, error) bool) {
		var bundles []string
		for b, err := range FindTestBundles(f.testsDir, cfg.EnablePerfTests) {
			if err != nil {
				yield(nil, err)
				return
			}
			bundles = append(bundles, b)
		}
		sort.Strings(bundles)

		for _, b := range bundles {
			specs, err := f.listSpecifiers(ctx, b)
			if err != nil {
				yield(nil, err)
				return
			}
			name := filepath.Base(b)
			logging.Debugf(ctx, "Found %d test(s) in %s", len(specs), name)
			for _, s := range specs {
				path := make([]string, 0, len(pathInSuite)+2)
				path = append(path, pathInSuite...)
				path = append(path, name, s)
				if !yield(&harness.Test{Suite: suite, PathInSuite: path, Config: cfg}, nil) {
					return
				}
			}
		}
	}
}

// TestsInExecutable implements harness.Format. XCTest bundles are
// directories, never executables, so it yields nothing.
func (f *Format) TestsInExecutable(ctx context.Context, suite *harness.Suite, pathInSuite []string, execPath string, cfg *harness.SuiteConfig) iter.Seq2[*harness.Test, error] {
	return func(yield func(*harness.Test, error) bool) {}
}

// finderOutput is what the bundle test finder prints.
type finderOutput struct {
	// Null entries do not name runnable tests and are dropped.
	TestSpecifiers *[]*string `json:"testSpecifiers"`
}

// listSpecifiers runs the bundle test finder on bundle. Only the framework
// search path is passed in the environment.
func (f *Format) listSpecifiers(ctx context.Context, bundle string) ([]string, error) {
	res, err := genericexec.Output(ctx, f.finder, []string{bundle}, f.tc.FrameworkEnv())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list tests in %s", bundle)
	}
	if res.ExitCode != 0 {
		return nil, errors.Errorf("failed to list tests in %s: %s exited with status %d:\n%s%s",
			bundle, shutil.EnvLine(f.tc.FrameworkEnv(), res.Argv), res.ExitCode, res.Stdout, res.Stderr)
	}

	var out finderOutput
	if err := json.Unmarshal([]byte(res.Stdout), &out); err != nil {
		return nil, errors.Wrapf(err, "failed to parse tests of %s from %q", bundle, res.Stdout)
	}
	if out.TestSpecifiers == nil {
		return nil, errors.Errorf("failed to parse tests of %s: no testSpecifiers in %q", bundle, res.Stdout)
	}

	var specs []string
	for _, s := range *out.TestSpecifiers {
		if s == nil {
			continue
		}
		specs = append(specs, *s)
	}
	return specs, nil
}

// Execute implements harness.Format. The last two elements of t.PathInSuite
// name the bundle and the specifier.
//
// With rc.NoExecute set, Execute reports Pass without starting xctest.
// Otherwise xctest runs with t.Config.Environment as its environment and
// the outcome is decided by Classify. The error is non-nil only if xctest
// could not be run at all.
func (f *Format) Execute(ctx context.Context, t *harness.Test, rc *harness.RunConfig) (*harness.Result, error) {
	n := len(t.PathInSuite)
	if n < 2 {
		return nil, errors.Errorf("test path %q does not name a bundle and a specifier", strings.Join(t.PathInSuite, "/"))
	}
	bundle, spec := t.PathInSuite[n-2], t.PathInSuite[n-1]
	args := []string{"-XCTest", spec, filepath.Join(f.testsDir, bundle)}

	if rc.NoExecute {
		return &harness.Result{Code: harness.Pass}, nil
	}

	var env []string
	if t.Config != nil {
		env = t.Config.Environment
	}
	res, err := genericexec.Output(ctx, f.xctest, args, env)
	if err != nil {
		return nil, err
	}
	r := Classify(res)
	logging.Debugf(ctx, "%s: exit status %d, %v", spec, res.ExitCode, r.Code)
	return r, nil
}
