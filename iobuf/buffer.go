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

// Package iobuf implements the dual-direction buffered I/O machinery
// shared by every byte-stream backend in this module: files, pipes,
// sockets and shared-memory segments. It unifies the canonical
// "read by format" and "write with translation" semantics described in
// spec.md §4.2 behind one Reader/Writer pair parameterized over a
// small Backend trait (spec.md §9's prescribed redesign away from
// void-pointer callbacks).
package iobuf

const (
	// initialSize is the capacity a managed Buffer allocates lazily on
	// first use.
	initialSize = 1024

	// growthNumerator/growthDenominator implement the 3/2 growth factor
	// spec.md §4.2 prescribes.
	growthNumerator   = 3
	growthDenominator = 2
)

// Buffer is a byte buffer with the invariant 0 <= index <= limit <= size
// at rest (spec.md §3, §8). A managed Buffer owns growable storage; an
// unmanaged Buffer is a fixed-size view over foreign memory (used by
// vshm for shared-memory segments) that never grows and is never freed
// by this package.
type Buffer struct {
	data      []byte
	size      int
	limit     int
	index     int
	unmanaged bool
}

// NewManaged returns an empty managed Buffer. Storage is allocated
// lazily by Grow on first use, per spec.md §4.2's "lazily-allocated
// managed storage."
func NewManaged() *Buffer {
	return &Buffer{}
}

// NewUnmanaged installs data as the fixed storage for a Buffer that can
// never grow and is never freed on close — the Go rendering of
// spec.md §4.2's init_unmanaged_buffers, used to alias a shared-memory
// mapping directly instead of copying through a managed buffer.
func NewUnmanaged(data []byte) *Buffer {
	return &Buffer{data: data, size: len(data), unmanaged: true}
}

// Unmanaged reports whether this Buffer aliases foreign, fixed-size
// memory rather than owning growable storage of its own.
func (b *Buffer) Unmanaged() bool {
	return b.unmanaged
}

// Len returns the number of unread/unwritten bytes currently buffered,
// i.e. limit - index.
func (b *Buffer) Len() int {
	return b.limit - b.index
}

// Cap returns the total allocated capacity of the buffer's storage.
func (b *Buffer) Cap() int {
	return b.size
}

// Bytes returns the unread/unwritten region data[index:limit]. The
// returned slice aliases the Buffer's storage; callers must not retain
// it across a call that may grow or shift the Buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[b.index:b.limit]
}

// Index returns the current read/write cursor.
func (b *Buffer) Index() int {
	return b.index
}

// Limit returns the end of the valid data region.
func (b *Buffer) Limit() int {
	return b.limit
}

// SetIndex repositions the cursor within [0, limit]. Used by Seek to
// reuse buffered data that still covers the requested offset instead
// of discarding it.
func (b *Buffer) SetIndex(i int) {
	if i < 0 {
		i = 0
	}
	if i > b.limit {
		i = b.limit
	}
	b.index = i
}

// Reset discards all buffered data without releasing storage: both
// index and limit return to zero.
func (b *Buffer) Reset() {
	b.index = 0
	b.limit = 0
}

// Grow ensures at least n more bytes are available past limit,
// reallocating storage by the 3/2 growth factor (spec.md §4.2) as
// needed. It panics if called on an unmanaged Buffer with insufficient
// room: unmanaged buffers can never grow (spec.md §4.2, §8).
func (b *Buffer) Grow(n int) {
	need := b.limit + n
	if need <= b.size {
		return
	}
	if b.unmanaged {
		panic("iobuf: unmanaged buffer cannot grow")
	}
	newSize := b.size
	if newSize == 0 {
		newSize = initialSize
	}
	for newSize < need {
		newSize = newSize * growthNumerator / growthDenominator
		if newSize <= b.size {
			newSize = need
		}
	}
	nd := make([]byte, newSize)
	copy(nd, b.data[:b.limit])
	b.data = nd
	b.size = newSize
}

// Compact shifts the unread region data[index:limit] to the start of
// storage, resetting index to 0. Preserves the relative scan position
// callers have already established (e.g. "no \n found yet") so a
// subsequent scan after a refill only re-examines newly appended bytes
// rather than the whole buffer (spec.md §4.2).
func (b *Buffer) Compact() {
	if b.index == 0 {
		return
	}
	n := copy(b.data, b.data[b.index:b.limit])
	b.limit = n
	b.index = 0
}

// Append copies p onto the end of the buffered region, growing storage
// first if needed. Used by Writer to stage output and by Reader to
// land backend.Read results.
func (b *Buffer) Append(p []byte) int {
	room := b.size - b.limit
	if room < len(p) {
		if b.unmanaged {
			p = p[:room]
		} else {
			b.Grow(len(p) - room)
		}
	}
	n := copy(b.data[b.limit:], p)
	b.limit += n
	return n
}

// Data exposes the full backing storage, primarily for the number
// parser's sentinel-termination trick (spec.md §4.2: "terminate the
// buffer with a sentinel byte at position limit").
func (b *Buffer) Data() []byte {
	return b.data
}
