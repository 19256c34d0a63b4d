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

// Package pool implements the hierarchical, reference-counted lifetime
// arena that every native resource in this module allocates out of.
//
// A Pool is not a memory allocator in the C sense — Go's garbage
// collector already reclaims memory — it is a cleanup ledger: a Pool
// tracks cleanup callbacks (closing an OS handle, releasing a native
// buffer) and guarantees they run exactly once, in reverse registration
// order, when the Pool is destroyed. Pools share lifetime through an
// atomic refcount: a Pool used by more than one resource (for example
// the Pool backing a Process, shared by its cached stdio Files) is not
// destroyed until every holder has released it.
package pool

import (
	"sync"
	"sync/atomic"

	"github.com/sabouaram/osrt/logger"
)

// Pool is a reference-counted, hierarchical cleanup domain.
type Pool struct {
	mu        sync.Mutex
	refcount  int64
	parent    *Pool
	cleanups  []func()
	destroyed bool
	log       logger.Logger
}

// New allocates a fresh, childless Pool with an initial refcount of 1.
func New() *Pool {
	return &Pool{refcount: 1, log: logger.Component("pool")}
}

// NewChild allocates a Pool whose destruction is tied to parent: the
// child holds one reference on parent for as long as the child itself
// is alive, so destroying the child always decrefs the parent exactly
// once. Destroying the parent first is the caller's bug to avoid: per
// the invariant in spec.md §3, a Pool must not be destroyed while
// contained resources (here, the child Pool) still hold it.
func NewChild(parent *Pool) *Pool {
	parent.Incref()
	return &Pool{refcount: 1, parent: parent, log: logger.Component("pool")}
}

// Incref adds a holder to the Pool and returns the new refcount.
func (p *Pool) Incref() int64 {
	return atomic.AddInt64(&p.refcount, 1)
}

// Decref removes a holder from the Pool. Reference counting itself
// cannot fail (spec.md §4.1): Decref never returns an error, only
// whether this call observed the last holder leave.
func (p *Pool) Decref() (wasLast bool) {
	return atomic.AddInt64(&p.refcount, -1) == 0
}

// OnCleanup registers fn to run when the Pool is destroyed. Cleanups
// run in LIFO order, mirroring the hierarchical-arena convention that
// the most recently allocated resource is released first. Registering
// on an already-destroyed Pool runs fn immediately instead of silently
// dropping it.
func (p *Pool) OnCleanup(fn func()) {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		fn()
		return
	}
	p.cleanups = append(p.cleanups, fn)
	p.mu.Unlock()
}

// Release decrefs the Pool and destroys it exactly once when this call
// observed the last holder. Double-release (destroy already happened)
// is a safe no-op, matching spec.md §4.1's "double-close is safe."
func (p *Pool) Release() {
	if !p.Decref() {
		return
	}
	p.destroy()
}

// destroy runs every registered cleanup, in reverse registration
// order, then releases the hold on the parent Pool (if any). Guarded
// so it can only ever run once even if called concurrently from two
// goroutines racing Release.
func (p *Pool) destroy() {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.destroyed = true
	cleanups := p.cleanups
	p.cleanups = nil
	p.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.log.WithField("panic", r).Warn("pool cleanup panicked")
				}
			}()
			cleanups[i]()
		}()
	}

	if p.parent != nil {
		p.parent.Release()
	}
}

// Destroyed reports whether this Pool has already run its cleanups.
func (p *Pool) Destroyed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

// Count returns the current refcount, for diagnostics only.
func (p *Pool) Count() int64 {
	return atomic.LoadInt64(&p.refcount)
}
