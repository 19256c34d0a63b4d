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

// Package rtctx carries the per-thread runtime context every core
// operation in this module takes explicitly.
//
// lua-apr keyed its scratch pool off an implicit registry slot in the
// single Lua state reachable from the calling C function; spec.md §9
// flags that as a pattern to re-architect for a language with native
// concurrent runtimes. Here, each goroutine-bound script runtime
// (spec.md §5: "each thread owns an independent script runtime
// instance") constructs its own Ctx and threads it through every
// operation it calls — there is no global or goroutine-local lookup.
package rtctx

import (
	"context"

	"github.com/sabouaram/osrt/pool"
)

// Ctx is the explicit per-thread handle passed to every component
// operation that needs transient allocation or cancellation.
type Ctx struct {
	base    context.Context
	scratch *pool.Pool
}

// New constructs a Ctx bound to base (or context.Background if base is
// nil) with a fresh scratch Pool.
func New(base context.Context) *Ctx {
	if base == nil {
		base = context.Background()
	}
	return &Ctx{base: base, scratch: pool.New()}
}

// Context returns the underlying cancellation/deadline context.
func (c *Ctx) Context() context.Context {
	return c.base
}

// Scratch returns the Pool backing this thread's stateless, transient
// allocations. Per spec.md §3, "the scratch Pool holds no pointers
// observed by script values past the current call boundary" — callers
// register cleanups on it for allocations that must not outlive the
// current entry from the script runtime, then call Clear at the entry
// boundary.
func (c *Ctx) Scratch() *pool.Pool {
	return c.scratch
}

// Clear invalidates every allocation made against the scratch Pool
// since the last Clear, by destroying the current scratch Pool and
// replacing it with a fresh one. Per spec.md §3 this runs "at each
// entry from the script runtime"; it is the Go rendering of APR's
// apr_pool_clear.
func (c *Ctx) Clear() {
	c.scratch.Release()
	c.scratch = pool.New()
}

// Child returns a new Ctx sharing base's cancellation/deadline but with
// its own independent scratch Pool — the rendering of "each thread owns
// an independent script runtime instance" (spec.md §5) for a thread
// spawned via vthread.Create.
func (c *Ctx) Child() *Ctx {
	return New(c.base)
}
