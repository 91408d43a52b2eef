// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package genericexec runs external tools with an explicit environment and
// captures their standard output, standard error and exit code.
//
// Every process is started in a new session, and the whole session is killed
// once the call returns, whether the tool exited normally, failed, or the
// context was canceled. Helpers forked by a tool therefore never outlive the
// call that started it.
package genericexec
