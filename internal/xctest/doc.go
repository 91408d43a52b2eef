// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package xctest adapts XCTest bundles to the harness protocol.
//
// Bundles are directories named *.xctest found directly under a tests
// directory. A bundle test finder lists the test specifiers of each bundle as
// JSON, and each specifier is executed on its own with "xcrun xctest -XCTest".
// The exit status of xctest alone does not prove a test ran: results are
// classified from markers xctest writes to stderr.
package xctest
