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

package vsocket

import (
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/sabouaram/osrt/status"
)

// Flag is the readiness interest Pollset.Add registers for a socket.
type Flag uint8

const (
	FlagReadable Flag = 1 << iota
	FlagWritable
)

// Pollset is the fixed-capacity readiness multiplexer spec.md §4.8
// describes. Interest flags live in a bitset.BitSet keyed by slot index
// (two bits per socket: readable/writable), so Add's "OR the new flags
// into the existing registration" idempotence (spec.md §8) is a plain
// bitset union rather than a remove-then-reinsert that would transiently
// unregister the socket — the explicit choice spec.md §9's open
// question calls for documenting (see DESIGN.md).
type Pollset struct {
	mu       sync.Mutex
	capacity int
	slots    []*Socket // index → registered socket, nil when free
	flags    *bitset.BitSet
}

// New creates a Pollset able to track up to capacity sockets.
func New(capacity int) *Pollset {
	return &Pollset{
		capacity: capacity,
		slots:    make([]*Socket, capacity),
		flags:    bitset.New(uint(capacity * 2)),
	}
}

func readBit(i int) uint  { return uint(i * 2) }
func writeBit(i int) uint { return uint(i*2 + 1) }

// indexOf returns the slot holding s, or -1.
func (ps *Pollset) indexOf(s *Socket) int {
	for i, slot := range ps.slots {
		if slot == s {
			return i
		}
	}
	return -1
}

// Add registers s for the given flag(s) (OR-ed with FlagReadable|
// FlagWritable as needed); re-adding an already-registered socket ORs
// the new flags into its existing registration (spec.md §8's
// idempotence law) and pins s alive via a ref so it cannot be GC'd
// while pending (spec.md §4.8).
func (ps *Pollset) Add(s *Socket, flags Flag) status.Status {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	idx := ps.indexOf(s)
	if idx < 0 {
		idx = -1
		for i, slot := range ps.slots {
			if slot == nil {
				idx = i
				break
			}
		}
		if idx < 0 {
			return status.New(status.ENOMEM, "pollset is full")
		}
		ps.slots[idx] = s
	}

	if flags&FlagReadable != 0 {
		ps.flags.Set(readBit(idx))
	}
	if flags&FlagWritable != 0 {
		ps.flags.Set(writeBit(idx))
	}
	return status.Ok()
}

// Remove unregisters s, releasing its pin. A no-op if s is not present.
func (ps *Pollset) Remove(s *Socket) status.Status {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	idx := ps.indexOf(s)
	if idx < 0 {
		return status.Ok()
	}
	ps.slots[idx] = nil
	ps.flags.Clear(readBit(idx))
	ps.flags.Clear(writeBit(idx))
	return status.Ok()
}

// Destroy clears every registration, releasing all pins.
func (ps *Pollset) Destroy() status.Status {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i := range ps.slots {
		ps.slots[i] = nil
	}
	ps.flags.ClearAll()
	return status.Ok()
}

// registrations snapshots the current (socket, wantRead, wantWrite)
// triples under lock, for the platform poll loop to scan without
// holding the Pollset's mutex across a blocking syscall.
func (ps *Pollset) registrations() []pollReg {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	var out []pollReg
	for i, s := range ps.slots {
		if s == nil {
			continue
		}
		r := ps.flags.Test(readBit(i))
		w := ps.flags.Test(writeBit(i))
		if r || w {
			out = append(out, pollReg{socket: s, wantRead: r, wantWrite: w})
		}
	}
	return out
}

type pollReg struct {
	socket    *Socket
	wantRead  bool
	wantWrite bool
}

// Poll blocks until at least one registered socket is ready or
// timeoutUsec elapses (negative = forever), returning the readable and
// writable lists (spec.md §4.8). The actual readiness check is
// platform-specific (see pollset_unix.go / pollset_windows.go).
func (ps *Pollset) Poll(timeoutUsec int64) (readable, writable []*Socket, st status.Status) {
	regs := ps.registrations()
	if len(regs) == 0 {
		return nil, nil, status.New(status.EINVAL, "pollset has no registered sockets")
	}

	var deadline time.Time
	if timeoutUsec >= 0 {
		deadline = time.Now().Add(time.Duration(timeoutUsec) * time.Microsecond)
	}

	return platformPoll(regs, deadline, timeoutUsec < 0)
}
