// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package stack

import (
	"strings"
	"testing"
)

func captureNested(depth int) Stack {
	if depth == 0 {
		return New(0)
	}
	return captureNested(depth - 1)
}

func TestStringInnermostFrame(t *testing.T) {
	s := New(0)
	lines := strings.Split(s.String(), "\n")
	if len(lines) == 0 {
		t.Fatal("String returned no lines")
	}
	if !strings.Contains(lines[0], "TestStringInnermostFrame") || !strings.Contains(lines[0], "stack_test.go") {
		t.Errorf("First frame = %q; want this test function", lines[0])
	}
}

func TestStringTruncates(t *testing.T) {
	s := captureNested(2 * maxDepth)
	lines := strings.Split(s.String(), "\n")
	if len(lines) != maxDepth+1 {
		t.Fatalf("Got %d lines; want %d", len(lines), maxDepth+1)
	}
	if last := lines[len(lines)-1]; last != ellipsis {
		t.Errorf("Last line = %q; want %q", last, ellipsis)
	}
}

func TestStringEmpty(t *testing.T) {
	if s := Stack(nil).String(); s != "" {
		t.Errorf("String() = %q; want empty", s)
	}
}
