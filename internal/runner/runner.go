// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runner is a minimal host test runner: it discovers the tests of a
// suite through a harness.Format and executes them in parallel.
package runner

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/xctest/errors"
	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/internal/logging"
)

// Result is the outcome of one test as recorded by the runner.
type Result struct {
	Test *harness.Test
	harness.Result
	Start time.Time
	End   time.Time
}

// Duration returns how long the test took.
func (r *Result) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Runner executes tests. The zero value is not usable; call New.
type Runner struct {
	clk     clock.Clock
	timeout time.Duration
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock makes the runner time tests with clk.
func WithClock(clk clock.Clock) Option {
	return func(r *Runner) { r.clk = clk }
}

// WithTimeout bounds each Execute call by d. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// New returns a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{clk: clock.NewClock()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Discover returns all tests f finds in suite.
func (r *Runner) Discover(ctx context.Context, f harness.Format, suite *harness.Suite) ([]*harness.Test, error) {
	var tests []*harness.Test
	for t, err := range f.TestsInDirectory(ctx, suite, nil, suite.Config) {
		if err != nil {
			return nil, errors.Wrapf(err, "failed to discover tests of %s", suite.Name)
		}
		tests = append(tests, t)
	}
	logging.Infof(ctx, "Found %d test(s) in %s", len(tests), suite.Name)
	return tests, nil
}

// Run executes tests with at most rc.Jobs running at once and returns their
// results in the order of tests. A test whose Execute call returns an error
// is reported as harness.Unresolved. The error is non-nil only if ctx ended
// before every test finished.
func (r *Runner) Run(ctx context.Context, f harness.Format, tests []*harness.Test, rc *harness.RunConfig) ([]*Result, error) {
	results := make([]*Result, len(tests))

	var g errgroup.Group
	if rc.Jobs > 0 {
		g.SetLimit(rc.Jobs)
	}
	for i, t := range tests {
		g.Go(func() error {
			results[i] = r.runOne(ctx, f, t, rc)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return results, errors.Wrap(err, "run interrupted")
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, f harness.Format, t *harness.Test, rc *harness.RunConfig) *Result {
	res := &Result{Test: t, Start: r.clk.Now()}
	if err := ctx.Err(); err != nil {
		res.Result = harness.Result{Code: harness.Unresolved, Output: "not run: " + err.Error()}
		res.End = res.Start
		return res
	}

	tctx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	hr, err := f.Execute(tctx, t, rc)
	res.End = r.clk.Now()
	if err != nil {
		logging.Warningf(ctx, "%s: %v", t.FullName(), err)
		hr = &harness.Result{Code: harness.Unresolved, Output: "failed to execute test: " + err.Error()}
	}
	res.Result = *hr
	logging.Infof(ctx, "%s: %s (%v)", hr.Code, t.FullName(), res.Duration().Round(time.Millisecond))
	return res
}
