// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package stack captures and formats call stacks for the errors package.
package stack

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	maxDepth = 8       // frames kept per trace
	ellipsis = "\t..." // appended when frames were dropped
)

// Stack is a snapshot of program counters.
type Stack []uintptr

// New captures the current call stack. skip=0 makes the caller of New the
// innermost frame.
func New(skip int) Stack {
	pc := make([]uintptr, maxDepth+1)
	return Stack(pc[:runtime.Callers(skip+2, pc)])
}

// Frames returns the resolved frames of s, at most maxDepth of them.
func (s Stack) Frames() []runtime.Frame {
	var frames []runtime.Frame
	cf := runtime.CallersFrames(s)
	for {
		f, more := cf.Next()
		frames = append(frames, f)
		if !more || len(frames) >= maxDepth {
			return frames
		}
	}
}

// String renders s one frame per line, as "\tat pkg.Func (file.go:12)".
func (s Stack) String() string {
	if len(s) == 0 {
		return ""
	}
	frames := s.Frames()
	lines := make([]string, 0, len(frames)+1)
	for _, f := range frames {
		lines = append(lines, fmt.Sprintf("\tat %s (%s:%d)", f.Function, filepath.Base(f.File), f.Line))
	}
	if len(s) > maxDepth {
		lines = append(lines, ellipsis)
	}
	return strings.Join(lines, "\n")
}
