/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package status implements the uniform (ok, message, code) result
// triple that every fallible operation in this module returns.
//
// Success is represented by a Status with Ok()==true and no message.
// Failure carries a human-readable message and a symbolic Code drawn
// from a closed, platform-independent set (see the Code type). Status
// also implements the error interface so it composes with errors.Is.
package status

import "fmt"

// Status is the (success_bit, human_message, symbolic_code) triple
// every fallible operation returns. The zero Status is not a success
// (IsOk reports false); Ok builds the success value.
type Status struct {
	ok   bool
	msg  string
	code Code
}

// Ok returns a successful Status.
func Ok() Status {
	return Status{ok: true}
}

// New returns a failing Status with the given message and code.
func New(code Code, msg string) Status {
	return Status{ok: false, msg: msg, code: code}
}

// Newf is New with fmt.Sprintf-style message formatting.
func Newf(code Code, format string, args ...interface{}) Status {
	return New(code, fmt.Sprintf(format, args...))
}

// IsOk reports whether the operation succeeded.
func (s Status) IsOk() bool {
	return s.ok
}

// Message returns the human-readable failure message, empty on success.
func (s Status) Message() string {
	return s.msg
}

// Code returns the symbolic failure code, Success on success.
func (s Status) Code() Code {
	return s.code
}

// Error implements the error interface so Status can flow through
// ordinary Go error handling and errors.Is/errors.As.
func (s Status) Error() string {
	if s.ok {
		return ""
	}
	if s.msg == "" {
		return s.code.String()
	}
	return fmt.Sprintf("%s: %s", s.code.String(), s.msg)
}

// Is allows errors.Is(err, status.New(status.ENOENT, "")) to match any
// Status sharing the same Code, regardless of message.
func (s Status) Is(target error) bool {
	t, ok := target.(Status)
	if !ok {
		return false
	}
	return s.code == t.code
}

// AsError returns nil on success and the Status itself (as error)
// otherwise. Convenience for bridging to idiomatic Go call sites that
// expect a plain error return.
func (s Status) AsError() error {
	if s.ok {
		return nil
	}
	return s
}
