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

// Package vthread implements spec.md §4.7: native-OS-thread creation
// (one goroutine per thread, each owning its own rtctx.Ctx), a bounded
// blocking Queue for inter-thread value transport, and the Tuple codec
// (codec.go) used to move heterogeneous value lists, including
// resource handles, across that Queue.
package vthread

import (
	"sync"

	uuid "github.com/hashicorp/go-uuid"

	"github.com/sabouaram/osrt/logger"
	"github.com/sabouaram/osrt/rtctx"
	"github.com/sabouaram/osrt/status"
)

var log = logger.Component("vthread")

// Body is the Go rendering of spec.md §4.7's "script chunk": the
// callable a thread runs, given its own fresh Ctx and the unpacked
// argument Values, returning the Values it wishes to hand back.
type Body func(ctx *rtctx.Ctx, args []Value) []Value

// Thread is the handle returned by Create. Its zero value is not
// useful; construct with Create.
type Thread struct {
	id   string
	done chan struct{}

	mu     sync.Mutex
	result []Value
	panicV interface{}
}

// ID returns a unique identifier for this thread, generated once at
// Create time, useful for correlating log lines across goroutines.
func (t *Thread) ID() string { return t.id }

// Create spawns body in a new goroutine bound to a fresh rtctx.Ctx
// (rtctx.Ctx.Child of parent, or a freestanding rtctx.New(nil) if
// parent is nil), per spec.md §4.7's thread_create(body, args...).
// args are packed through Pack/Unpack exactly as they would be for a
// Queue send, so a thread's arguments observe the same copy/refcount
// semantics as any other inter-thread value transport.
func Create(parent *rtctx.Ctx, body Body, args ...Value) (*Thread, status.Status) {
	tuple, st := Pack(args...)
	if !st.IsOk() {
		return nil, st
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		return nil, status.Newf(status.EPROC_UNKNOWN, "vthread: %s", err)
	}
	t := &Thread{id: id, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.mu.Lock()
				t.panicV = r
				t.mu.Unlock()
				log.WithField("thread_id", t.id).WithField("panic", r).Error("thread body panicked")
			}
		}()

		var ctx *rtctx.Ctx
		if parent != nil {
			ctx = parent.Child()
		} else {
			ctx = rtctx.New(nil)
		}

		unpacked, ust := Unpack(tuple)
		if !ust.IsOk() {
			log.WithError(ust.AsError()).Error("thread argument unpack failed")
			return
		}

		out := body(ctx, unpacked)
		t.mu.Lock()
		t.result = out
		t.mu.Unlock()
	}()

	return t, status.Ok()
}

// Join blocks until the thread's body returns, then reports its
// result values. ok is false if the body panicked instead of
// returning normally.
func (t *Thread) Join() (values []Value, ok bool) {
	<-t.done
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.panicV != nil {
		return nil, false
	}
	return t.result, true
}

// Done reports whether the thread has finished, without blocking.
func (t *Thread) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
