// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package logging routes log messages through context.Context.
//
// A Logger is attached to a context with AttachLogger; code that receives the
// context emits logs with Info, Debug and friends without knowing where they
// end up.
package logging

import (
	"sync"
	"time"
)

// Level is the importance of a log. Larger is more important.
type Level int

const (
	// LevelDebug is for process invocations and other details.
	LevelDebug Level = iota
	// LevelInfo is for progress and results.
	LevelInfo
	// LevelWarning is for problems that do not stop a run.
	LevelWarning
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Logger consumes logs sent via context.Context.
type Logger interface {
	Log(level Level, ts time.Time, msg string)
}

// MultiLogger copies logs to a changing set of loggers.
type MultiLogger struct {
	mu      sync.Mutex
	loggers []Logger
}

// NewMultiLogger returns a MultiLogger initially copying to loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log forwards a log to every current logger.
func (ml *MultiLogger) Log(level Level, ts time.Time, msg string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	for _, l := range ml.loggers {
		l.Log(level, ts, msg)
	}
}

// AddLogger starts copying logs to logger.
func (ml *MultiLogger) AddLogger(logger Logger) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.loggers = append(ml.loggers, logger)
}

// RemoveLogger stops copying logs to logger.
func (ml *MultiLogger) RemoveLogger(logger Logger) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	kept := ml.loggers[:0]
	for _, l := range ml.loggers {
		if l != logger {
			kept = append(kept, l)
		}
	}
	ml.loggers = kept
}
