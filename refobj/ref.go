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

// Package refobj implements the reference-counted header every native
// resource in this module embeds (File, Socket, Process, SharedMem,
// Queue, Pollset).
//
// A Ref tracks how many strong holders (script-side wrappers, or a
// container such as a Queue in transit) currently point at one native
// resource. The count is atomic so concurrent Incref/Decref from
// multiple goroutines never race. A Ref may also be a proxy: its
// Reference() points at a canonical Ref, and every lifetime operation
// forwards to that canonical target instead of acting locally. Proxies
// let the same OS handle be reachable from two independent script-side
// values (for example, a Socket registered in a Pollset and the same
// Socket still held by the script that created it) while keeping a
// single point of truth for when the underlying OS resource is
// actually released.
package refobj

import (
	"sync"
	"sync/atomic"
)

// Destroyer releases the OS-level resource behind a Ref. It runs at
// most once, on the release that drops the count to zero, and never
// for an unmanaged Ref (a borrowed handle such as stdin) or a proxy
// (whose canonical Ref owns the Destroyer instead).
type Destroyer func()

// Ref is the header embedded by every native resource wrapper.
// The zero Ref is not usable; construct with New or NewProxy.
type Ref struct {
	count     int64
	unmanaged bool
	canonical *Ref
	destroy   Destroyer
	once      sync.Once
}

// New returns a canonical Ref with an initial refcount of 1.
// unmanaged marks a borrowed handle: Release will never invoke destroy
// for it, no matter how the count reaches zero. destroy may be nil.
func New(unmanaged bool, destroy Destroyer) *Ref {
	return &Ref{count: 1, unmanaged: unmanaged, destroy: destroy}
}

// NewProxy returns a Ref that forwards every lifetime operation to
// canonical. A proxy never owns OS resources directly: Incref/Decref/
// Release on a proxy are equivalent to calling them on canonical.
// canonical must not be nil.
func NewProxy(canonical *Ref) *Ref {
	canonical.Incref()
	return &Ref{canonical: canonical}
}

// target returns the Ref that actually carries the refcount: itself
// for a canonical Ref, or the canonical target for a proxy.
func (r *Ref) target() *Ref {
	if r.canonical != nil {
		return r.canonical
	}
	return r
}

// IsProxy reports whether this Ref forwards to another canonical Ref.
func (r *Ref) IsProxy() bool {
	return r.canonical != nil
}

// Canonical returns the canonical Ref this proxy forwards to, or r
// itself if r is already canonical.
func (r *Ref) Canonical() *Ref {
	return r.target()
}

// Unmanaged reports whether this Ref's underlying resource must never
// be destroyed on last release (a borrowed handle). For a proxy this
// is the canonical target's flag, since that is where the flag lives.
func (r *Ref) Unmanaged() bool {
	return r.target().unmanaged
}

// Count returns the current refcount of the canonical target. Intended
// for diagnostics and tests, not for lifetime decisions (it can be
// stale the instant it is read under concurrent access).
func (r *Ref) Count() int64 {
	return atomic.LoadInt64(&r.target().count)
}

// Incref atomically increments the refcount and returns the new value.
// A proxy forwards to its canonical target.
func (r *Ref) Incref() int64 {
	return atomic.AddInt64(&r.target().count, 1)
}

// Decref atomically decrements the refcount and reports whether this
// call observed the count drop to zero (i.e. this was the last
// reference). It never destroys anything by itself; callers that want
// destruction-on-zero should use Release. A proxy forwards to its
// canonical target.
func (r *Ref) Decref() (wasLast bool) {
	return atomic.AddInt64(&r.target().count, -1) == 0
}

// Release decrements the refcount and, only when this was the last
// reference and the target is not unmanaged, invokes the target's
// Destroyer exactly once. Safe to call on an already-released Ref:
// the second release observes a negative count, is not the "last"
// transition, and is a no-op. A proxy forwards to its canonical
// target, so releasing a proxy never runs the proxy's own destroy
// (it has none) but may trigger the canonical target's.
func (r *Ref) Release() {
	t := r.target()
	if !t.Decref() {
		return
	}
	if t.unmanaged {
		return
	}
	t.once.Do(func() {
		if t.destroy != nil {
			t.destroy()
		}
	})
}
