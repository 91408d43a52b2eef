// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package loggingtest provides a logging.Logger for unit tests.
package loggingtest

import (
	"strings"
	"sync"
	"testing"

	"go.chromium.org/xctest/internal/logging"
)

// Logger records lines formatted by a logging.SinkLogger without timestamps,
// so tests see exactly what the command-line tool prints, and mirrors them
// to t.Log.
type Logger struct {
	*logging.SinkLogger

	mu    sync.Mutex
	lines []string
}

// NewLogger returns a Logger keeping logs at level or above.
func NewLogger(t *testing.T, level logging.Level) *Logger {
	l := &Logger{}
	l.SinkLogger = logging.NewSinkLogger(level, false, logging.NewFuncSink(func(msg string) {
		t.Log(msg)
		l.mu.Lock()
		defer l.mu.Unlock()
		l.lines = append(l.lines, msg)
	}))
	return l
}

// Logs returns a copy of the recorded lines.
func (l *Logger) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// String returns the recorded lines joined by newlines.
func (l *Logger) String() string {
	return strings.Join(l.Logs(), "\n")
}
