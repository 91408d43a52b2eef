// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"fmt"
	"io"

	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/internal/runner"
)

// Summary counts results per code.
type Summary struct {
	Counts map[harness.ResultCode]int
	// Failing lists the names of non-passing tests in result order.
	Failing map[harness.ResultCode][]string
}

// Summarize tallies results.
func Summarize(results []*runner.Result) *Summary {
	s := &Summary{
		Counts:  make(map[harness.ResultCode]int),
		Failing: make(map[harness.ResultCode][]string),
	}
	for _, r := range results {
		s.Counts[r.Code]++
		if r.Code.IsFailure() {
			s.Failing[r.Code] = append(s.Failing[r.Code], r.Test.FullName())
		}
	}
	return s
}

// OK reports whether every test passed.
func (s *Summary) OK() bool {
	return len(s.Failing) == 0
}

var summaryOrder = []struct {
	code  harness.ResultCode
	label string
}{
	{harness.Fail, "Failed Tests"},
	{harness.Unresolved, "Unresolved Tests"},
}

// WriteSummary prints the non-passing tests followed by counts per code.
func WriteSummary(w io.Writer, s *Summary) error {
	for _, o := range summaryOrder {
		names := s.Failing[o.code]
		if len(names) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%d):\n", o.label, len(names)); err != nil {
			return err
		}
		for _, n := range names {
			if _, err := fmt.Fprintf(w, "  %s\n", n); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, c := range []struct {
		code  harness.ResultCode
		label string
	}{
		{harness.Pass, "Passed"},
		{harness.Fail, "Failed"},
		{harness.Unresolved, "Unresolved"},
	} {
		if n := s.Counts[c.code]; n > 0 {
			if _, err := fmt.Fprintf(w, "  %-11s: %d\n", c.label, n); err != nil {
				return err
			}
		}
	}
	return nil
}
