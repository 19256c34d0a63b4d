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

// Package logger wraps logrus with the component-scoped convention used
// throughout this module: every subsystem (pool, iobuf, vsocket, ...)
// logs through a Logger tagged with its own "component" field instead
// of calling logrus directly. The core itself never logs on the
// success path of a script-visible operation — per spec.md §7 the
// caller decides what to do with a Status — this wrapper exists for
// the handful of places that have no caller to report to: garbage
// collection finalizers and pool cleanup callbacks.
package logger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal structured-logging surface used across the
// module. It is satisfied by a wrapped *logrus.Entry.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithError(err error) Logger
	Debug(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}

type entry struct {
	e *logrus.Entry
}

func (l entry) WithField(key string, value interface{}) Logger {
	return entry{e: l.e.WithField(key, value)}
}

func (l entry) WithError(err error) Logger {
	return entry{e: l.e.WithError(err)}
}

func (l entry) Debug(args ...interface{}) { l.e.Debug(args...) }
func (l entry) Warn(args ...interface{})  { l.e.Warn(args...) }
func (l entry) Error(args ...interface{}) { l.e.Error(args...) }

var (
	mu   sync.RWMutex
	base = logrus.New()
)

// writer is the subset of io.Writer needed by SetOutput, kept narrow so
// callers do not need to import "io" just to redirect logs in tests.
type writer interface {
	Write([]byte) (int, error)
}

// SetLevel adjusts the minimal level every Component logger emits at.
func SetLevel(lvl logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	base.SetLevel(lvl)
}

// SetOutput redirects every Component logger's output, e.g. to discard
// logs in tests or point them at a rotated file in production.
func SetOutput(w writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// Component returns a Logger tagged with component=name. Every
// package in this module obtains its Logger this way so log lines can
// be filtered per subsystem.
func Component(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return entry{e: base.WithField("component", name)}
}
