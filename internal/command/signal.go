// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package command contains helpers shared by command-line entry points.
package command

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"
)

var selfName = filepath.Base(os.Args[0])

// InstallSignalHandler makes SIGINT and SIGTERM terminate the children of
// this process together with everything in their sessions (xctest and bundle
// test finder runs and the helpers they fork), call callback, and exit with
// status 1. Messages are written to out.
func InstallSignalHandler(out io.Writer, callback func(sig os.Signal)) {
	ch := make(chan os.Signal, 1)
	go func() {
		sig := <-ch
		fmt.Fprintf(out, "\n%s: Caught %v signal; exiting\n", selfName, sig)
		if n, err := TerminateChildren(int32(os.Getpid())); err != nil {
			fmt.Fprintf(out, "%s: Failed to terminate subprocesses: %v\n", selfName, err)
		} else if n > 0 {
			fmt.Fprintf(out, "%s: Terminated %d subprocess(es)\n", selfName, n)
		}
		callback(sig)
		os.Exit(1)
	}()
	signal.Notify(ch, unix.SIGINT, unix.SIGTERM)
}

// TerminateChildren sends SIGTERM to every process whose parent is ppid and
// to every process in a session led by such a child. Children started by
// genericexec run in their own sessions, so this reaches the helpers they
// fork. It returns how many processes it signaled.
//
// The process table is rescanned until a pass finds nothing new, up to a few
// passes, to catch processes forked while signaling.
func TerminateChildren(ppid int32) (int, error) {
	const maxPasses = 3
	sids := make(map[int]struct{})
	signaled := make(map[int32]struct{})
	for i := 0; i < maxPasses; i++ {
		procs, err := process.Processes()
		if err != nil {
			return len(signaled), err
		}
		for _, p := range procs {
			if pp, err := p.Ppid(); err == nil && pp == ppid {
				sids[int(p.Pid)] = struct{}{}
			}
		}
		found := 0
		for _, p := range procs {
			if _, ok := signaled[p.Pid]; ok {
				continue
			}
			sid, err := unix.Getsid(int(p.Pid))
			if err != nil {
				continue
			}
			_, inSession := sids[sid]
			_, child := sids[int(p.Pid)]
			if !inSession && !child {
				continue
			}
			if err := unix.Kill(int(p.Pid), unix.SIGTERM); err == nil {
				signaled[p.Pid] = struct{}{}
				found++
			}
		}
		if found == 0 {
			break
		}
	}
	return len(signaled), nil
}
