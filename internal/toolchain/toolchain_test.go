// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package toolchain_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/xctest/internal/genericexec"
	"go.chromium.org/xctest/internal/toolchain"
	"go.chromium.org/xctest/testutil"
)

func TestLocate(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.WriteExecutable(t, dir, "xcode-select", `
[ "$1" = -p ] || exit 2
echo "  /Applications/Xcode.app/Contents/Developer  "
`)

	tc, err := toolchain.Locate(context.Background(), genericexec.CommandExec(path, "-p"))
	if err != nil {
		t.Fatal("Locate failed: ", err)
	}
	if got, want := tc.DeveloperDir(), "/Applications/Xcode.app/Contents/Developer"; got != want {
		t.Errorf("DeveloperDir() = %q; want %q", got, want)
	}
	const fw = "/Applications/Xcode.app/Contents/Developer/Platforms/MacOSX.platform/Developer/Library/Frameworks"
	if got := tc.FrameworkPath(); got != fw {
		t.Errorf("FrameworkPath() = %q; want %q", got, fw)
	}
	if diff := cmp.Diff(tc.FrameworkEnv(), []string{"DYLD_FRAMEWORK_PATH=" + fw}); diff != "" {
		t.Errorf("FrameworkEnv mismatch (-got +want):\n%s", diff)
	}
}

func TestLocateErrors(t *testing.T) {
	dir := testutil.TempDir(t)
	for _, tc := range []struct {
		name    string
		body    string
		wantErr string
	}{
		{"nonzero", "echo 'no developer tools' >&2; exit 2", "exited with status 2: no developer tools"},
		{"empty", "echo", "developer directory is empty"},
		{"relative", "echo Developer", "is not absolute"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteExecutable(t, dir, tc.name, tc.body)
			_, err := toolchain.Locate(context.Background(), genericexec.CommandExec(path))
			if err == nil {
				t.Fatal("Locate unexpectedly succeeded")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Locate error = %q; want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLocateMissingCommand(t *testing.T) {
	dir := testutil.TempDir(t)
	if _, err := toolchain.Locate(context.Background(), genericexec.CommandExec(dir+"/xcode-select")); err == nil {
		t.Error("Locate unexpectedly succeeded with a missing command")
	}
}

func TestNew(t *testing.T) {
	tc, err := toolchain.New("/Library/Developer/CommandLineTools/")
	if err != nil {
		t.Fatal("New failed: ", err)
	}
	if got, want := tc.DeveloperDir(), "/Library/Developer/CommandLineTools"; got != want {
		t.Errorf("DeveloperDir() = %q; want %q", got, want)
	}
	if _, err := toolchain.New("relative/dir"); err == nil {
		t.Error("New unexpectedly accepted a relative directory")
	}
}
