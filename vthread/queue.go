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

package vthread

import (
	"sync"

	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

// Queue is the bounded blocking FIFO spec.md §4.7 describes: capacity
// fixed at creation, push/pop block until space/an item is available,
// interrupt() wakes every blocked waiter once with EINTR, terminate()
// is a permanent EOF state. Modeled on the mutex+sync.Cond pattern the
// pack itself uses for pool-of-warm-workers waiting (see DESIGN.md).
type Queue struct {
	ref  *refobj.Ref
	pool *pool.Pool

	mu   sync.Mutex
	cond *sync.Cond

	capacity int
	buf      []*Tuple

	terminated   bool
	interruptGen uint64
}

// NewQueue creates a Queue of the given fixed capacity (must be ≥ 1).
func NewQueue(capacity int) (*Queue, status.Status) {
	if capacity < 1 {
		return nil, status.New(status.EINVAL, "queue capacity must be at least 1")
	}
	p := pool.New()
	q := &Queue{pool: p, capacity: capacity}
	q.cond = sync.NewCond(&q.mu)
	q.ref = refobj.New(false, func() {})
	p.OnCleanup(q.ref.Release)
	return q, status.Ok()
}

// Push enqueues t, blocking while the queue is full unless block is
// false (spec.md §4.7's push/trypush). Returns EAGAIN immediately on a
// full non-blocking push, EINTR if woken by Interrupt, EOF if the
// queue is or becomes terminated.
func (q *Queue) Push(block bool, t *Tuple) status.Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	myGen := q.interruptGen
	for len(q.buf) >= q.capacity && !q.terminated {
		if !block {
			return status.New(status.EAGAIN, "queue is full")
		}
		q.cond.Wait()
		if q.interruptGen != myGen {
			return status.New(status.EINTR, "queue push interrupted")
		}
	}
	if q.terminated {
		return status.New(status.EOF, "queue is terminated")
	}

	q.buf = append(q.buf, t)
	q.cond.Broadcast()
	return status.Ok()
}

// TryPop pops without blocking (spec.md §4.7's trypop).
func (q *Queue) TryPop() (*Tuple, status.Status) {
	return q.Pop(false)
}

// TryPush pushes without blocking (spec.md §4.7's trypush).
func (q *Queue) TryPush(t *Tuple) status.Status {
	return q.Push(false, t)
}

// Pop dequeues the oldest Tuple, blocking while the queue is empty
// unless block is false. Returns EAGAIN on a non-blocking pop of an
// empty queue, EINTR if woken by Interrupt, EOF once terminated (even
// if items remain unread — termination is permanent per spec.md §4.7).
func (q *Queue) Pop(block bool) (*Tuple, status.Status) {
	q.mu.Lock()
	defer q.mu.Unlock()

	myGen := q.interruptGen
	for len(q.buf) == 0 && !q.terminated {
		if !block {
			return nil, status.New(status.EAGAIN, "queue is empty")
		}
		q.cond.Wait()
		if q.interruptGen != myGen {
			return nil, status.New(status.EINTR, "queue pop interrupted")
		}
	}
	if q.terminated {
		return nil, status.New(status.EOF, "queue is terminated")
	}

	t := q.buf[0]
	q.buf = q.buf[1:]
	return t, status.Ok()
}

// Interrupt wakes every waiter currently blocked in Push/Pop with
// EINTR, without altering the queue's contents or terminated state
// (spec.md §4.7's interrupt()).
func (q *Queue) Interrupt() status.Status {
	q.mu.Lock()
	q.interruptGen++
	q.cond.Broadcast()
	q.mu.Unlock()
	return status.Ok()
}

// Terminate puts the queue into its permanent EOF state: every
// currently-blocked and future Push/Pop call returns EOF (spec.md
// §4.7's terminate()).
func (q *Queue) Terminate() status.Status {
	q.mu.Lock()
	q.terminated = true
	q.cond.Broadcast()
	q.mu.Unlock()
	return status.Ok()
}

// Terminated reports whether Terminate has been called.
func (q *Queue) Terminated() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.terminated
}

// Len reports the number of Tuples currently buffered.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Close releases the Queue's pool.
func (q *Queue) Close() status.Status {
	q.pool.Release()
	return status.Ok()
}
