// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"os"

	"go.chromium.org/xctest/errors"
	"go.chromium.org/xctest/internal/config"
	"go.chromium.org/xctest/internal/genericexec"
	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/internal/toolchain"
	"go.chromium.org/xctest/internal/xctest"
)

// suiteSetup is everything needed to discover and run one suite.
type suiteSetup struct {
	cfg    *config.Config
	format *xctest.Format
	suite  *harness.Suite
}

// loadSuite reads the config file at path, applies the flags set on fs and
// locates the toolchain. A toolchain lookup failure is returned as is; no
// test can run without it.
func loadSuite(ctx context.Context, path string, fl *config.Flags, fs *flag.FlagSet) (*suiteSetup, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := fl.Apply(cfg, fs); err != nil {
		return nil, errors.Wrap(err, "bad flags")
	}

	var tc *toolchain.Context
	if cfg.DeveloperDir != "" {
		tc, err = toolchain.New(cfg.DeveloperDir)
	} else {
		tc, err = toolchain.Locate(ctx, toolchain.XcodeSelect())
	}
	if err != nil {
		return nil, err
	}

	finder := genericexec.CommandExec(cfg.BundleTestFinder)
	run := genericexec.CommandExec(cfg.XCTest[0], cfg.XCTest[1:]...)
	sc := cfg.SuiteConfig(os.Environ())
	return &suiteSetup{
		cfg:    cfg,
		format: xctest.NewFormat(tc, cfg.TestsDir, finder, xctest.WithXCTest(run)),
		suite: &harness.Suite{
			Name:       cfg.Name,
			SourceRoot: cfg.TestsDir,
			ExecRoot:   cfg.TestsDir,
			Config:     sc,
		},
	}, nil
}
