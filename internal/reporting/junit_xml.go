// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"go.chromium.org/xctest/internal/harness"
	"go.chromium.org/xctest/internal/runner"
)

// JUnitXMLFilename is the file name used with WriteJUnitXML.
const JUnitXMLFilename = "results.xml"

type testSuites struct {
	XMLName   xml.Name
	TestSuite testSuite `xml:"testsuite"`
}

// testSuite holds one suite. FAIL is reported as a failure, UNRESOLVED as an
// error, since the latter does not establish that the test itself failed.
type testSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Errors   int         `xml:"errors,attr"`
	TestCase []*testCase `xml:"testcase"`
}

type testCase struct {
	// ClassName is the bundle, Name the specifier.
	ClassName string `xml:"classname,attr"`
	Name      string `xml:"name,attr"`
	Timestamp string `xml:"timestamp,attr"`
	// Seconds with a decimal point, e.g. "1.0".
	Time string `xml:"time,attr"`

	Failure *problem `xml:"failure,omitempty"`
	Error   *problem `xml:"error,omitempty"`
}

type problem struct {
	Message string `xml:"message,attr,omitempty"`
	Details string `xml:",cdata"`
}

// WriteJUnitXML saves results of the suite named suiteName to path in the
// JUnit XML format.
func WriteJUnitXML(path, suiteName string, results []*runner.Result) error {
	suites := testSuites{
		XMLName:   xml.Name{Local: "testsuites"},
		TestSuite: testSuite{Name: suiteName, Tests: len(results)},
	}
	suite := &suites.TestSuite
	for _, r := range results {
		tc := &testCase{
			Timestamp: r.Start.UTC().Format(time.RFC3339),
			Time:      fmt.Sprintf("%.1f", r.Duration().Seconds()),
		}
		tc.ClassName, tc.Name = splitPath(r.Test.PathInSuite)
		switch r.Code {
		case harness.Fail:
			tc.Failure = &problem{Message: "test failed", Details: r.Output}
			suite.Failures++
		case harness.Unresolved:
			tc.Error = &problem{Message: "test unresolved", Details: r.Output}
			suite.Errors++
		}
		suite.TestCase = append(suite.TestCase, tc)
	}

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0644)
}

// splitPath splits a test path into everything but the last element and the
// last element.
func splitPath(path []string) (class, name string) {
	if len(path) == 0 {
		return "", ""
	}
	return strings.Join(path[:len(path)-1], "/"), path[len(path)-1]
}
