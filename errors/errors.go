// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package errors constructs errors that remember where they were created.
//
// Use this package instead of the standard errors.New and fmt.Errorf so that
// failures of external tools (xcode-select, the bundle test finder, xctest)
// can be traced back to the call that observed them.
//
//	errors.New("no test bundles found")
//	errors.Errorf("bundle %s: missing testSpecifiers", path)
//	errors.Wrap(err, "failed to locate developer directory")
//	errors.Wrapf(err, "failed to list tests in %s", bundle)
//
// Formatting an error with "%+v" prints the whole chain with stack traces.
// Is, As and Unwrap behave like their standard library counterparts.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"go.chromium.org/xctest/errors/stack"
)

// impl is the error type created by this package.
type impl struct {
	msg   string
	stk   stack.Stack
	cause error
}

func (e *impl) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap returns the wrapped error, if any.
func (e *impl) Unwrap() error { return e.cause }

// Format implements fmt.Formatter. "%+v" prints the chain with stacks.
func (e *impl) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		io.WriteString(s, formatChain(e))
		return
	}
	io.WriteString(s, e.Error())
}

func formatChain(err error) string {
	var chain []string
	for err != nil {
		e, ok := err.(*impl)
		if !ok {
			chain = append(chain, err.Error()+"\n\tat ???")
			break
		}
		chain = append(chain, e.msg+"\n"+e.stk.String())
		err = e.cause
	}
	return strings.Join(chain, "\n")
}

// New returns an error with msg, recording the caller's location.
func New(msg string) error {
	return &impl{msg: msg, stk: stack.New(1)}
}

// Errorf is like New but formats its message with fmt.Sprintf.
func Errorf(format string, args ...interface{}) error {
	return &impl{msg: fmt.Sprintf(format, args...), stk: stack.New(1)}
}

// Wrap returns an error that prefixes cause with msg.
// If cause is nil, Wrap behaves like New.
func Wrap(cause error, msg string) error {
	return &impl{msg: msg, stk: stack.New(1), cause: cause}
}

// Wrapf is like Wrap but formats its message with fmt.Sprintf.
func Wrapf(cause error, format string, args ...interface{}) error {
	return &impl{msg: fmt.Sprintf(format, args...), stk: stack.New(1), cause: cause}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Unwrap returns the error wrapped by err, or nil.
func Unwrap(err error) error { return stderrors.Unwrap(err) }
