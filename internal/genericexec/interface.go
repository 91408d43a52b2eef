// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package genericexec

import (
	"context"
	"io"
)

// Cmd is an external command that can be run many times, possibly
// concurrently.
type Cmd interface {
	// Run runs the command synchronously with extraArgs appended to its base
	// arguments. If env is nil the process inherits the current environment,
	// otherwise env (KEY=VALUE entries) is its complete environment.
	// A non-zero exit is reported as *exec.ExitError.
	Run(ctx context.Context, extraArgs, env []string, stdout, stderr io.Writer) error

	// Argv returns the full argument vector Run would execute for extraArgs.
	Argv(extraArgs []string) []string
}
