// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package genericexec

import (
	"context"
	"io"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"

	"go.chromium.org/xctest/internal/logging"
	"go.chromium.org/xctest/shutil"
)

// DefaultOrphanDelay bounds how long Run keeps reading output after the
// command exits while descendants still hold its pipes.
const DefaultOrphanDelay = 10 * time.Second

// ExecCmd is a local command run with os/exec.
type ExecCmd struct {
	name        string
	baseArgs    []string
	orphanDelay time.Duration
}

var _ Cmd = &ExecCmd{}

// CommandExec returns an ExecCmd running name with baseArgs.
func CommandExec(name string, baseArgs ...string) *ExecCmd {
	return &ExecCmd{
		name:        name,
		baseArgs:    append([]string(nil), baseArgs...),
		orphanDelay: DefaultOrphanDelay,
	}
}

// WithOrphanDelay returns a copy of c using d instead of DefaultOrphanDelay.
func (c *ExecCmd) WithOrphanDelay(d time.Duration) *ExecCmd {
	cc := *c
	cc.orphanDelay = d
	return &cc
}

// Argv implements Cmd.
func (c *ExecCmd) Argv(extraArgs []string) []string {
	argv := make([]string, 0, 1+len(c.baseArgs)+len(extraArgs))
	argv = append(argv, c.name)
	argv = append(argv, c.baseArgs...)
	return append(argv, extraArgs...)
}

// Run implements Cmd.
func (c *ExecCmd) Run(ctx context.Context, extraArgs, env []string, stdout, stderr io.Writer) error {
	argv := c.Argv(extraArgs)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.SysProcAttr = &unix.SysProcAttr{Setsid: true}
	cmd.WaitDelay = c.orphanDelay

	logging.Debugf(ctx, "Running %s", shutil.EnvLine(env, argv))
	if err := cmd.Start(); err != nil {
		return err
	}
	// The session ID of a session leader equals its PID.
	defer killSession(cmd.Process.Pid, unix.SIGKILL)
	return cmd.Wait()
}
