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

// Package vshm implements spec.md §4.6: a named or anonymous shared
// memory segment exposing File-like read/write/seek over an unmanaged
// iobuf buffer.
//
// Unlike the source's two-cursor (read vs. write) "last_op"
// discriminator for seek, this implementation gives SharedMem a
// single unified cursor (spec.md §9's suggested simplification): the
// backing store is memory, not a stream, so there is no reason to
// track the two positions separately.
package vshm

import (
	"sync"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/logger"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

var log = logger.Component("vshm")

// slack mirrors spec.md §4.6's "at least size bytes plus a small slack
// for the I/O layer".
const slack = 64

// segment is the mmap'd (or emulated) backing store plus the name it
// was created/attached under, tracked in a process-wide registry so
// Attach/Remove can find segments created by another SharedMem handle
// in the same process.
type segment struct {
	name  string
	data  []byte
	close func() error
	refs  int
}

var (
	regMu sync.Mutex
	reg   = map[string]*segment{}
)

// memBackend adapts a plain byte slice to iobuf.Backend/Seeker with a
// single unified read/write cursor.
type memBackend struct {
	data []byte
	pos  int64
}

func (b *memBackend) BackendRead(dst []byte) (int, status.Status) {
	if b.pos >= int64(len(b.data)) {
		return 0, status.New(status.EOF, "")
	}
	n := copy(dst, b.data[b.pos:])
	b.pos += int64(n)
	return n, status.Ok()
}

func (b *memBackend) BackendWrite(src []byte) (int, status.Status) {
	if b.pos >= int64(len(b.data)) {
		return 0, status.New(status.ENOSPC, "shared memory segment is full")
	}
	n := copy(b.data[b.pos:], src)
	b.pos += int64(n)
	if n < len(src) {
		return n, status.New(status.ENOSPC, "shared memory segment is full")
	}
	return n, status.Ok()
}

func (b *memBackend) BackendFlush() status.Status { return status.Ok() }

func (b *memBackend) BackendSeek(offset int64, whence int) (int64, status.Status) {
	var base int64
	switch whence {
	case 0:
		base = 0
	case 1:
		base = b.pos
	case 2:
		base = int64(len(b.data))
	default:
		return b.pos, status.New(status.EINVAL, "invalid whence")
	}
	next := base + offset
	if next < 0 || next > int64(len(b.data)) {
		return b.pos, status.New(status.EINVAL, "seek out of range")
	}
	b.pos = next
	return b.pos, status.Ok()
}

// SharedMem is the script-visible handle over a shared segment.
type SharedMem struct {
	ref  *refobj.Ref
	pool *pool.Pool
	seg  *segment
	stm  *iobuf.Stream
}

func attachSegment(name string, size int64, create bool) (*segment, status.Status) {
	regMu.Lock()
	defer regMu.Unlock()

	if seg, ok := reg[name]; ok {
		seg.refs++
		return seg, status.Ok()
	}
	if !create {
		return nil, status.New(status.ENOENT, "no shared segment named "+name)
	}

	data, closer, st := newBacking(name, size+slack)
	if !st.IsOk() {
		return nil, st
	}
	seg := &segment{name: name, data: data, close: closer, refs: 1}
	if name != "" {
		reg[name] = seg
	}
	return seg, status.Ok()
}

// Create opens a new segment of at least size bytes, named or
// anonymous if filename=="" (spec.md §4.6: nil selects anonymous).
func Create(filename string, size int64) (*SharedMem, status.Status) {
	seg, st := attachSegment(filename, size, true)
	if !st.IsOk() {
		return nil, st
	}
	return wrap(seg), status.Ok()
}

// Attach opens an existing named segment.
func Attach(filename string) (*SharedMem, status.Status) {
	if filename == "" {
		return nil, status.New(status.EINVAL, "attach requires a name")
	}
	seg, st := attachSegment(filename, 0, false)
	if !st.IsOk() {
		return nil, st
	}
	return wrap(seg), status.Ok()
}

// Remove unlinks the name so no further Attach can find it; existing
// attachments (this SharedMem included) stay valid (spec.md §4.6).
func Remove(filename string) status.Status {
	if filename == "" {
		return status.New(status.EINVAL, "remove requires a name")
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[filename]; !ok {
		return status.New(status.ENOENT, "no shared segment named "+filename)
	}
	delete(reg, filename)
	return removeBacking(filename)
}

func wrap(seg *segment) *SharedMem {
	p := pool.New()
	backend := &memBackend{data: seg.data}
	sm := &SharedMem{
		pool: p,
		seg:  seg,
		stm:  iobuf.NewStream(backend, backend, false, 0),
	}
	sm.ref = refobj.New(false, func() { sm.releaseSegment() })
	p.OnCleanup(sm.ref.Release)
	return sm
}

func (sm *SharedMem) releaseSegment() {
	regMu.Lock()
	seg := sm.seg
	seg.refs--
	last := seg.refs <= 0
	if last && seg.name != "" {
		if s, ok := reg[seg.name]; ok && s == seg {
			delete(reg, seg.name)
		}
	}
	regMu.Unlock()

	if last && seg.close != nil {
		if err := seg.close(); err != nil {
			log.WithError(err).Warn("failed to release shared memory backing")
		}
	}
}

// Read evaluates formats against the segment's current cursor.
func (sm *SharedMem) Read(formats ...iobuf.Format) ([]iobuf.Value, status.Status) {
	return sm.stm.Read(formats...)
}

// Write appends strs at the current cursor.
func (sm *SharedMem) Write(strs ...string) (int, status.Status) {
	return sm.stm.Write(strs...)
}

// Flush pushes any buffered writes into the backing segment, making
// them visible to other attachments of the same named segment.
func (sm *SharedMem) Flush() status.Status {
	return sm.stm.Flush()
}

// Seek repositions the unified cursor (spec.md §4.6, simplified per
// spec.md §9 to a single cursor rather than last_op-selected pair).
func (sm *SharedMem) Seek(offset int64, whence int) (int64, status.Status) {
	return sm.stm.Seek(offset, whence)
}

// Detach releases this handle's hold on the segment without removing
// its name.
func (sm *SharedMem) Detach() status.Status {
	sm.ref.Release()
	return status.Ok()
}

// Destroy is Detach plus unlinking the name, if any (spec.md §4.6's
// destroy convenience over detach+remove).
func (sm *SharedMem) Destroy() status.Status {
	name := sm.seg.name
	sm.ref.Release()
	if name == "" {
		return status.Ok()
	}
	if st := Remove(name); !st.IsOk() && st.Code() != status.ENOENT {
		return st
	}
	return status.Ok()
}

// Size reports the usable segment size (excluding the I/O slack).
func (sm *SharedMem) Size() int64 {
	return int64(len(sm.seg.data)) - slack
}
