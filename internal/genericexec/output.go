// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package genericexec

import (
	"bytes"
	"context"
	"os/exec"

	"go.chromium.org/xctest/errors"
)

// Result holds everything a finished process reported.
type Result struct {
	Argv   []string
	Stdout string
	Stderr string
	// ExitCode is the process exit status, or -1 if it was killed by a
	// signal.
	ExitCode int
}

// Output runs cmd and captures its output. A non-zero exit is not an error;
// the error is non-nil only if the process could not be started or ctx
// ended before it finished.
func Output(ctx context.Context, cmd Cmd, extraArgs, env []string) (*Result, error) {
	var stdout, stderr bytes.Buffer
	err := cmd.Run(ctx, extraArgs, env, &stdout, &stderr)
	res := &Result{
		Argv:   cmd.Argv(extraArgs),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, errors.Wrapf(ctxErr, "%s did not finish", res.Argv[0])
	}
	var xerr *exec.ExitError
	switch {
	case err == nil:
	case errors.Is(err, exec.ErrWaitDelay):
		// Exited with status 0; descendants kept the pipes open until
		// the orphan delay elapsed.
	case errors.As(err, &xerr):
		res.ExitCode = xerr.ExitCode()
	default:
		return res, errors.Wrapf(err, "failed to run %s", res.Argv[0])
	}
	return res, nil
}
