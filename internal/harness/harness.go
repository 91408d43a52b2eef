// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package harness defines the protocol between a host test runner and the
// test formats it drives: how tests are named, configured, discovered and
// executed, and the vocabulary results are reported in.
package harness

import (
	"context"
	"iter"
	"strings"

	"go.chromium.org/xctest/errors"
)

// ResultCode is the outcome of executing one test.
type ResultCode int

const (
	// Pass means the test ran and passed.
	Pass ResultCode = iota
	// Fail means the test ran and failed.
	Fail
	// Unresolved means it could not be established whether the test ran
	// and passed. It is distinct from Fail: the tooling, not the test, is
	// in doubt.
	Unresolved
)

var codeNames = map[ResultCode]string{
	Pass:       "PASS",
	Fail:       "FAIL",
	Unresolved: "UNRESOLVED",
}

func (c ResultCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsFailure reports whether c should make the overall run fail.
func (c ResultCode) IsFailure() bool {
	return c != Pass
}

// MarshalText implements encoding.TextMarshaler.
func (c ResultCode) MarshalText() ([]byte, error) {
	if _, ok := codeNames[c]; !ok {
		return nil, errors.Errorf("unknown result code %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ResultCode) UnmarshalText(b []byte) error {
	for code, name := range codeNames {
		if name == string(b) {
			*c = code
			return nil
		}
	}
	return errors.Errorf("unknown result code %q", string(b))
}

// Result is what a Format reports for one test.
type Result struct {
	Code ResultCode
	// Output is free-form diagnostic text. It is empty for passing tests.
	Output string
}

// SuiteConfig is the per-suite configuration supplied by the host.
type SuiteConfig struct {
	// Name is the suite name shown in test names.
	Name string
	// TestsDir is the directory holding the suite's test bundles.
	TestsDir string
	// EnablePerfTests includes performance bundles in discovery.
	EnablePerfTests bool
	// Environment is the complete environment (KEY=VALUE) tests run with.
	Environment []string
}

// RunConfig is the per-invocation configuration of the host.
type RunConfig struct {
	// NoExecute requests discovery only; formats must report Pass without
	// running anything.
	NoExecute bool
	// Jobs is the number of tests the host executes concurrently.
	Jobs int
}

// Suite is a root of test discovery.
type Suite struct {
	Name       string
	SourceRoot string
	ExecRoot   string
	Config     *SuiteConfig
}

// Test is one discovered test, identified by its path within the suite.
type Test struct {
	Suite       *Suite
	PathInSuite []string
	Config      *SuiteConfig
}

// FullName returns a name unique across suites, e.g.
// "xctest :: BasicTests.xctest/BasicTests.FooTests/testBar".
func (t *Test) FullName() string {
	return t.Suite.Name + " :: " + strings.Join(t.PathInSuite, "/")
}

// Format discovers and executes tests of one kind on behalf of the host.
// Implementations must be safe for concurrent use.
type Format interface {
	// TestsInDirectory yields the tests found under pathInSuite of suite.
	// Iteration stops at the first error.
	TestsInDirectory(ctx context.Context, suite *Suite, pathInSuite []string, cfg *SuiteConfig) iter.Seq2[*Test, error]

	// TestsInExecutable yields the tests contained in the executable at
	// execPath.
	TestsInExecutable(ctx context.Context, suite *Suite, pathInSuite []string, execPath string, cfg *SuiteConfig) iter.Seq2[*Test, error]

	// Execute runs t. An error means the test could not be attempted at
	// all; every attempted run is described by the returned Result.
	Execute(ctx context.Context, t *Test, rc *RunConfig) (*Result, error)
}
