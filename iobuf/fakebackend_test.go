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

package iobuf_test

import (
	"github.com/sabouaram/osrt/status"
)

// memBackend is an in-memory iobuf.Backend/Seeker fake standing in for
// a real File, so the Reader/Writer/Stream protocol can be exercised
// without touching the filesystem. Reads are served one chunk at a
// time (chunkSize bytes, or whatever remains) so tests can force the
// Reader to refill across several backend calls, which is what
// exercises the buffer-boundary behavior spec.md §8/§9 describe.
type memBackend struct {
	data      []byte
	pos       int
	chunkSize int
}

func newMemBackend(data string, chunkSize int) *memBackend {
	if chunkSize <= 0 {
		chunkSize = len(data) + 1
	}
	return &memBackend{data: []byte(data), chunkSize: chunkSize}
}

func (m *memBackend) BackendRead(dst []byte) (int, status.Status) {
	if m.pos >= len(m.data) {
		return 0, status.New(status.EOF, "")
	}
	n := m.chunkSize
	if n > len(dst) {
		n = len(dst)
	}
	if m.pos+n > len(m.data) {
		n = len(m.data) - m.pos
	}
	copy(dst, m.data[m.pos:m.pos+n])
	m.pos += n
	return n, status.Ok()
}

func (m *memBackend) BackendWrite(src []byte) (int, status.Status) {
	m.data = append(m.data, src...)
	return len(src), status.Ok()
}

func (m *memBackend) BackendFlush() status.Status {
	return status.Ok()
}

func (m *memBackend) BackendSeek(offset int64, whence int) (int64, status.Status) {
	var base int
	switch whence {
	case 0:
		base = 0
	case 1:
		base = m.pos
	case 2:
		base = len(m.data)
	}
	np := base + int(offset)
	if np < 0 || np > len(m.data) {
		return 0, status.New(status.EINVAL, "seek out of range")
	}
	m.pos = np
	return int64(np), status.Ok()
}
