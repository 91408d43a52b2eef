// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package loggingtest_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/xctest/internal/logging"
	"go.chromium.org/xctest/internal/logging/loggingtest"
)

func TestLoggerFormatsLikeSinkLogger(t *testing.T) {
	logger := loggingtest.NewLogger(t, logging.LevelInfo)
	ctx := logging.AttachLogger(context.Background(), logger)
	logging.Debug(ctx, "hidden")
	logging.Info(ctx, "PASS: xctest :: A.xctest/T/test1")
	logging.Warningf(ctx, "%s: %v", "xctest :: A.xctest/T/test2", "no such file")

	want := []string{
		"PASS: xctest :: A.xctest/T/test1",
		"WARNING: xctest :: A.xctest/T/test2: no such file",
	}
	if diff := cmp.Diff(logger.Logs(), want); diff != "" {
		t.Errorf("Logs mismatch (-got +want):\n%s", diff)
	}
	if got, want := logger.String(), want[0]+"\n"+want[1]; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}
