// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package xctest

import (
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.chromium.org/xctest/errors"
)

const (
	// BundleSuffix is the name suffix of test bundles.
	BundleSuffix = ".xctest"

	// PerfMarker marks bundles holding performance tests.
	PerfMarker = "PerfTests"

	readDirBatch = 64
)

// IsPerfBundle reports whether the bundle named name holds performance
// tests.
func IsPerfBundle(name string) bool {
	return strings.Contains(name, PerfMarker)
}

// FindTestBundles yields paths of the test bundles directly under dir.
// Performance bundles are skipped unless includePerf is true.
//
// Entries are read lazily and in no particular order; callers needing a
// stable order must sort. Each iteration lists dir again. A listing error is
// yielded once and ends the iteration.
func FindTestBundles(dir string, includePerf bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(dir)
		if err != nil {
			yield("", errors.Wrap(err, "failed to list test bundles"))
			return
		}
		defer f.Close()

		for {
			ents, err := f.ReadDir(readDirBatch)
			for _, ent := range ents {
				name := ent.Name()
				if !strings.HasSuffix(name, BundleSuffix) {
					continue
				}
				if IsPerfBundle(name) && !includePerf {
					continue
				}
				if !yield(filepath.Join(dir, name), nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield("", errors.Wrapf(err, "failed to list test bundles in %s", dir))
				return
			}
		}
	}
}
