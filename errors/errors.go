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

// Package errors is the internal, non-protocol error wrapping used
// around module-level plumbing (config file reads/decodes, ...).
// status.Status remains the only error shape a script ever observes;
// this package exists so those internal failures still carry a
// package-scoped numeric code and a registered message, the way the
// teacher's own errors package does it, without dragging in the parts
// of that package (hierarchy, gin rendering, a collection pool) that
// nothing here exercises.
package errors

import "fmt"

// CodeError is a package-scoped numeric error code, registered with a
// Message function via RegisterIdFctMessage.
type CodeError uint16

// MinAvailable is the first CodeError value free for packages outside
// the teacher's own tree to register into, mirroring the teacher's
// errors/modules.go MinPkgXxx reservation block.
const MinAvailable CodeError = 4000

// Message produces the text associated with a CodeError.
type Message func(code CodeError) string

var registry = make(map[CodeError]Message)

// RegisterIdFctMessage associates fct with code. Called from package
// init() so CodeError.Message has something to look up.
func RegisterIdFctMessage(code CodeError, fct Message) {
	registry[code] = fct
}

// Message returns the registered text for c, or a generic fallback if
// none was registered or the registered function returned "".
func (c CodeError) Message() string {
	if f, ok := registry[c]; ok {
		if m := f(c); m != "" {
			return m
		}
	}
	return "unknown error"
}

// Error wraps c (and an optional parent error) into an error value.
func (c CodeError) Error(parent ...error) error {
	var p error
	if len(parent) > 0 {
		p = parent[0]
	}
	return &codeError{code: c, msg: c.Message(), parent: p}
}

type codeError struct {
	code   CodeError
	msg    string
	parent error
}

func (e *codeError) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
	}
	return e.msg
}

func (e *codeError) Unwrap() error {
	return e.parent
}

// Code returns the CodeError this error was built from.
func (e *codeError) Code() CodeError {
	return e.code
}
