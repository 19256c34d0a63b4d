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

package vfile

import (
	"os"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

// Pipe is a unidirectional, unbuffered-at-the-OS-level byte stream —
// spec.md §4.3's anonymous pipe, wrapped in the same Reader/Writer
// machinery as File but without Seek support (Pipe has no Seeker).
type Pipe struct {
	ref    *refobj.Ref
	r      *iobuf.Reader
	w      *iobuf.Writer
}

// NewAnonymousPipe creates an in-process OS pipe (spec.md §4.3's
// pipe_create_anonymous), returning the read end and write end as two
// independent Pipe values, each tied to p's lifetime.
func NewAnonymousPipe(p *pool.Pool) (readEnd, writeEnd *Pipe, st status.Status) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, statusFromOSError(err, "pipe")
	}

	readEnd = &Pipe{r: iobuf.NewReader(osBackend{pr}, false)}
	readEnd.ref = refobj.New(false, func() { _ = pr.Close() })
	p.OnCleanup(readEnd.ref.Release)

	writeEnd = &Pipe{w: iobuf.NewWriter(osBackend{pw}, false)}
	writeEnd.ref = refobj.New(false, func() { _ = pw.Close() })
	p.OnCleanup(writeEnd.ref.Release)

	return readEnd, writeEnd, status.Ok()
}

// Read evaluates formats against the pipe's read end. Valid only on a
// Pipe returned as readEnd.
func (pp *Pipe) Read(formats ...iobuf.Format) ([]iobuf.Value, status.Status) {
	if pp.r == nil {
		return nil, status.New(status.EINVAL, "pipe is write-only")
	}
	return pp.r.Read(formats...)
}

// Write stages strs for output on the pipe's write end. Valid only on
// a Pipe returned as writeEnd.
func (pp *Pipe) Write(strs ...string) (int, status.Status) {
	if pp.w == nil {
		return 0, status.New(status.EINVAL, "pipe is read-only")
	}
	return pp.w.Write(strs...)
}

// Flush drains staged output on the write end.
func (pp *Pipe) Flush() status.Status {
	if pp.w == nil {
		return status.Ok()
	}
	return pp.w.Flush()
}

// Close releases this end of the pipe. Safe to call more than once.
func (pp *Pipe) Close() status.Status {
	pp.ref.Release()
	return status.Ok()
}
