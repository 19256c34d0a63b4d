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

package iobuf

import (
	"strings"

	"github.com/sabouaram/osrt/status"
)

// Writer is the spec's WriteBuf: a Buffer plus a Backend and a
// text-mode flag, implementing spec.md §4.2's write protocol.
type Writer struct {
	buf      *Buffer
	backend  Backend
	textMode bool
}

// NewWriter wraps backend in a managed Writer. Storage is allocated
// lazily on first Write.
func NewWriter(backend Backend, textMode bool) *Writer {
	return &Writer{buf: NewManaged(), backend: backend, textMode: textMode && TextModeSupported()}
}

// NewUnmanagedWriter wraps backend around a fixed-size foreign buffer.
// data is typically the same slice passed to NewUnmanagedReader for the
// same resource (spec.md §4.2: "same memory, independent indices");
// text mode is always off since translation may require growth.
func NewUnmanagedWriter(backend Backend, data []byte) *Writer {
	return &Writer{buf: NewUnmanaged(data), backend: backend}
}

// Buffer exposes the underlying Buffer, primarily for Seek support.
func (w *Writer) Buffer() *Buffer { return w.buf }

// Write appends each string argument to the Writer, flushing to the
// backend whenever the staging buffer would overflow and resuming
// afterward (spec.md §4.2). In text mode every '\n' in the input is
// expanded to "\r\n" before staging.
func (w *Writer) Write(strs ...string) (int, status.Status) {
	total := 0
	for _, s := range strs {
		if w.textMode {
			s = strings.ReplaceAll(s, "\n", "\r\n")
		}
		p := []byte(s)
		for len(p) > 0 {
			if w.buf.size == 0 && !w.buf.unmanaged {
				w.buf.Grow(initialSize)
			}
			room := w.buf.size - w.buf.limit
			if room == 0 {
				if st := w.Flush(); !st.IsOk() {
					return total, st
				}
				room = w.buf.size - w.buf.limit
				if room == 0 {
					return total, status.New(status.ENOSPC, "write buffer full")
				}
			}
			n := len(p)
			if n > room {
				n = room
			}
			w.buf.Append(p[:n])
			p = p[n:]
			total += n
		}
	}
	return total, status.Ok()
}

// Flush drains every staged byte to the backend (calling BackendWrite
// repeatedly until the staging buffer is empty) and then calls
// BackendFlush.
func (w *Writer) Flush() status.Status {
	for w.buf.Len() > 0 {
		n, st := w.backend.BackendWrite(w.buf.Bytes())
		if n > 0 {
			w.buf.index += n
		}
		if !st.IsOk() {
			return st
		}
		if n == 0 {
			return status.New(status.EINVAL, "backend write made no progress")
		}
	}
	w.buf.Reset()
	return w.backend.BackendFlush()
}

// Pending returns the number of bytes currently staged but not yet
// flushed to the backend.
func (w *Writer) Pending() int {
	return w.buf.Len()
}
