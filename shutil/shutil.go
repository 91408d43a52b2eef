// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil renders command lines the way a POSIX shell would accept
// them, so that diagnostics can be pasted into a terminal verbatim.
package shutil

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// \w is [0-9A-Za-z_]. A leading '=' triggers expansion in zsh.
	leadingSafeChars  = `-\w@%+:,./`
	trailingSafeChars = leadingSafeChars + "="
)

var safeRE = regexp.MustCompile(fmt.Sprintf("^[%s][%s]*$", leadingSafeChars, trailingSafeChars))

// Quote returns s unchanged if the shell would read it as a single literal
// word, and single-quotes it otherwise.
func Quote(s string) string {
	if safeRE.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// Join quotes each element of argv and joins them with spaces.
func Join(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}

// EnvLine renders env (KEY=VALUE entries) followed by argv, e.g.
// "DYLD_FRAMEWORK_PATH=/x tool arg". Values are quoted, keys are not.
func EnvLine(env, argv []string) string {
	parts := make([]string, 0, len(env)+1)
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			parts = append(parts, Quote(kv))
			continue
		}
		parts = append(parts, k+"="+Quote(v))
	}
	if len(argv) > 0 {
		parts = append(parts, Join(argv))
	}
	return strings.Join(parts, " ")
}
