// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package harness

import (
	"encoding/json"
	"testing"
)

func TestResultCodeText(t *testing.T) {
	for _, tc := range []struct {
		code    ResultCode
		name    string
		failure bool
	}{
		{Pass, "PASS", false},
		{Fail, "FAIL", true},
		{Unresolved, "UNRESOLVED", true},
	} {
		if s := tc.code.String(); s != tc.name {
			t.Errorf("String() = %q; want %q", s, tc.name)
		}
		if f := tc.code.IsFailure(); f != tc.failure {
			t.Errorf("%v.IsFailure() = %v; want %v", tc.code, f, tc.failure)
		}
		b, err := json.Marshal(tc.code)
		if err != nil {
			t.Fatalf("Marshal(%v) failed: %v", tc.code, err)
		}
		var got ResultCode
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", b, err)
		}
		if got != tc.code {
			t.Errorf("Unmarshal(%s) = %v; want %v", b, got, tc.code)
		}
	}
}

func TestResultCodeUnknown(t *testing.T) {
	if _, err := json.Marshal(ResultCode(42)); err == nil {
		t.Error("Marshal of unknown code unexpectedly succeeded")
	}
	var c ResultCode
	if err := json.Unmarshal([]byte(`"XFAIL"`), &c); err == nil {
		t.Error("Unmarshal of XFAIL unexpectedly succeeded")
	}
}

func TestFullName(t *testing.T) {
	test := &Test{
		Suite:       &Suite{Name: "xctest"},
		PathInSuite: []string{"BasicTests.xctest", "BasicTests.FooTests/testBar"},
	}
	const want = "xctest :: BasicTests.xctest/BasicTests.FooTests/testBar"
	if got := test.FullName(); got != want {
		t.Errorf("FullName() = %q; want %q", got, want)
	}
}
