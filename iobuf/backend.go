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

import "github.com/sabouaram/osrt/status"

// Backend is the trait a byte-stream source/sink implements to be
// wrapped by Reader/Writer. This replaces lua-apr's generic
// callback-based buffered I/O over void-pointer contexts (spec.md §9):
// File, Pipe, Socket and SharedMem each supply one small Backend
// instead of a bundle of untyped callbacks plus an opaque ctx.
type Backend interface {
	// BackendRead fills dst from the underlying resource and returns
	// the number of bytes actually read. Returning status.New(status.EOF, "")
	// with n==0 signals end of stream; it is not an error (spec.md §4.2,
	// §7: "filling a read-buffer treats EOF as a normal boundary").
	BackendRead(dst []byte) (n int, st status.Status)

	// BackendWrite drains src to the underlying resource and returns the
	// number of bytes actually written.
	BackendWrite(src []byte) (n int, st status.Status)

	// BackendFlush pushes any OS-level buffering the backend itself
	// performs (e.g. a socket's Nagle-disabled write, a file's fsync
	// equivalent). Backends with no such buffering return status.Ok().
	BackendFlush() status.Status
}

// Seeker is implemented by backends that support positioning (File,
// SharedMem) but not by stream backends (Socket, Pipe) — spec.md §4.2:
// "Seek applies only to backends that support positioning."
type Seeker interface {
	BackendSeek(offset int64, whence int) (pos int64, st status.Status)
}
