// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package toolchain locates the active developer tools installation.
package toolchain

import (
	"context"
	"path/filepath"
	"strings"

	"go.chromium.org/xctest/errors"
	"go.chromium.org/xctest/internal/genericexec"
	"go.chromium.org/xctest/internal/logging"
	"go.chromium.org/xctest/shutil"
)

// FrameworksSubpath is the location of the platform test frameworks relative
// to the developer directory.
const FrameworksSubpath = "Platforms/MacOSX.platform/Developer/Library/Frameworks"

// FrameworkPathEnv names the variable the dynamic loader searches for
// frameworks.
const FrameworkPathEnv = "DYLD_FRAMEWORK_PATH"

// XcodeSelect returns the command printing the active developer directory.
func XcodeSelect() genericexec.Cmd {
	return genericexec.CommandExec("xcode-select", "-p")
}

// Context describes a developer tools installation. It is immutable and safe
// for concurrent use.
type Context struct {
	developerDir  string
	frameworkPath string
}

// New returns a Context rooted at developerDir, which must be absolute.
func New(developerDir string) (*Context, error) {
	if developerDir == "" {
		return nil, errors.New("developer directory is empty")
	}
	if !filepath.IsAbs(developerDir) {
		return nil, errors.Errorf("developer directory %q is not absolute", developerDir)
	}
	developerDir = filepath.Clean(developerDir)
	return &Context{
		developerDir:  developerDir,
		frameworkPath: filepath.Join(developerDir, FrameworksSubpath),
	}, nil
}

// Locate asks query (normally XcodeSelect()) for the developer directory.
// There is no fallback: any failure of the query is returned.
func Locate(ctx context.Context, query genericexec.Cmd) (*Context, error) {
	res, err := genericexec.Output(ctx, query, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to locate developer directory")
	}
	if res.ExitCode != 0 {
		return nil, errors.Errorf("failed to locate developer directory: %s exited with status %d: %s",
			shutil.Join(res.Argv), res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	tc, err := New(strings.TrimSpace(res.Stdout))
	if err != nil {
		return nil, errors.Wrapf(err, "bad output from %s", shutil.Join(res.Argv))
	}
	logging.Debugf(ctx, "Using developer directory %s", tc.developerDir)
	return tc, nil
}

// DeveloperDir returns the developer tools root.
func (c *Context) DeveloperDir() string { return c.developerDir }

// FrameworkPath returns the runtime framework search path.
func (c *Context) FrameworkPath() string { return c.frameworkPath }

// FrameworkEnv returns an environment consisting only of the framework
// search path.
func (c *Context) FrameworkEnv() []string {
	return []string{FrameworkPathEnv + "=" + c.frameworkPath}
}
