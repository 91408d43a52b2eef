// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package reporting writes test results in machine- and human-readable
// forms.
package reporting

import (
	"encoding/json"
	"os"
	"time"

	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/internal/runner"
)

// ResultsJSONFilename is the file name used with WriteResultsJSON.
const ResultsJSONFilename = "results.json"

// jsonResult is one entry of results.json.
type jsonResult struct {
	Name   string             `json:"name"`
	Path   []string           `json:"path"`
	Code   harness.ResultCode `json:"code"`
	Output string             `json:"output,omitempty"`
	Start  time.Time          `json:"start"`
	End    time.Time          `json:"end"`
}

// WriteResultsJSON saves results to path as a JSON array.
func WriteResultsJSON(path string, results []*runner.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		out = append(out, jsonResult{
			Name:   r.Test.FullName(),
			Path:   r.Test.PathInSuite,
			Code:   r.Code,
			Output: r.Output,
			Start:  r.Start.UTC(),
			End:    r.End.UTC(),
		})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}
