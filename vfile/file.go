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
	"io"
	"os"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/permstring"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

// File is the buffered handle spec.md §4.3 describes: an *os.File
// wrapped by an iobuf.Stream, with a refobj.Ref header so it can be
// shared between a script value and, e.g., a vproc.Process's cached
// stdio slot without double-closing the descriptor.
type File struct {
	ref    *refobj.Ref
	pool   *pool.Pool
	path   string
	mode   OpenMode
	os     *os.File
	stream *iobuf.Stream
	closed bool
}

// osBackend adapts *os.File to iobuf.Backend/Seeker.
type osBackend struct{ f *os.File }

func (b osBackend) BackendRead(dst []byte) (int, status.Status) {
	n, err := b.f.Read(dst)
	if err == io.EOF {
		return n, status.New(status.EOF, "")
	}
	return n, statusFromOSError(err, "read")
}

func (b osBackend) BackendWrite(src []byte) (int, status.Status) {
	n, err := b.f.Write(src)
	return n, statusFromOSError(err, "write")
}

func (b osBackend) BackendFlush() status.Status {
	// Pipes and other special files reject fsync, so only regular
	// files are synced.
	if info, err := b.f.Stat(); err == nil && !info.Mode().IsRegular() {
		return status.Ok()
	}
	return statusFromOSError(b.f.Sync(), "fsync")
}

func (b osBackend) BackendSeek(offset int64, whence int) (int64, status.Status) {
	pos, err := b.f.Seek(offset, whence)
	return pos, statusFromOSError(err, "seek")
}

// Open opens path under p's lifetime per the mode string spec.md §4.3
// defines ("r"/"w"/"a"/"r+"/"w+"/"a+", optional trailing "b"), creating
// it at perm if the mode implies creation. The returned File registers
// its close with p, so releasing the Pool also flushes staged output and
// closes the descriptor.
func Open(p *pool.Pool, path string, modeStr string, perm permstring.Perm) (*File, status.Status) {
	m, st := ParseMode(modeStr)
	if !st.IsOk() {
		return nil, st
	}

	f, err := os.OpenFile(path, m.Flags(), os.FileMode(perm))
	if err != nil {
		return nil, statusFromOSError(err, "open "+path)
	}

	var startPos int64
	if m.Append {
		if info, serr := f.Stat(); serr == nil {
			startPos = info.Size()
		}
	}

	vf := &File{
		pool: p,
		path: path,
		mode: m,
		os:   f,
	}
	vf.stream = iobuf.NewStream(osBackend{f}, osBackend{f}, !m.Binary, startPos)
	vf.ref = refobj.New(false, func() { _ = vf.stream.Flush(); _ = f.Close() })
	p.OnCleanup(vf.ref.Release)

	return vf, status.Ok()
}

// WrapHandle adopts an already-open *os.File (e.g. one end of a pipe
// created by vproc's io_set) as a buffered File, instead of going
// through Open's path+mode parsing. label is stored as Path() for
// diagnostics; it need not name a real filesystem entry. The returned
// File registers its close with p like Open does, but releasing the Pool
// closes the handle without flushing staged output.
func WrapHandle(p *pool.Pool, label string, f *os.File, mode OpenMode) *File {
	vf := &File{
		pool: p,
		path: label,
		mode: mode,
		os:   f,
	}
	vf.stream = iobuf.NewStream(osBackend{f}, osBackend{f}, !mode.Binary, 0)
	vf.ref = refobj.New(false, func() { _ = f.Close() })
	p.OnCleanup(vf.ref.Release)
	return vf
}

// Path returns the path File was opened with.
func (f *File) Path() string { return f.path }

// Mode returns the OpenMode File was opened with.
func (f *File) Mode() OpenMode { return f.mode }

// Read evaluates formats against the File's buffered input, per
// spec.md §4.2's read-format table.
func (f *File) Read(formats ...iobuf.Format) ([]iobuf.Value, status.Status) {
	return f.stream.Read(formats...)
}

// Write stages strs for output, flushing as needed (spec.md §4.2).
func (f *File) Write(strs ...string) (int, status.Status) {
	return f.stream.Write(strs...)
}

// Flush drains any staged output to the OS file.
func (f *File) Flush() status.Status {
	return f.stream.Flush()
}

// Seek repositions the File's logical cursor (spec.md §4.2/§4.3).
func (f *File) Seek(offset int64, whence int) (int64, status.Status) {
	return f.stream.Seek(offset, whence)
}

// Tell returns the File's current logical offset.
func (f *File) Tell() int64 {
	return f.stream.Tell()
}

// Lock applies an advisory lock on the File's descriptor (spec.md
// §4.3: "shared or exclusive, blocking or non-blocking"). Archive-
// transparent Files have no underlying descriptor of their own to lock.
func (f *File) Lock(exclusive, nonBlocking bool) status.Status {
	if f.os == nil {
		return status.New(status.ENOTIMPL, "file has no lockable descriptor")
	}
	return lockFile(int(f.os.Fd()), exclusive, nonBlocking)
}

// Unlock releases a previously taken advisory lock.
func (f *File) Unlock() status.Status {
	if f.os == nil {
		return status.New(status.ENOTIMPL, "file has no lockable descriptor")
	}
	return unlockFile(int(f.os.Fd()))
}

// Stat returns the File's current metadata (spec.md §4.3's full field
// set, via the shared statOf helper also used by Dir entries).
func (f *File) Stat() (Stat, status.Status) {
	var info os.FileInfo
	var err error
	if f.os != nil {
		info, err = f.os.Stat()
	} else {
		info, err = os.Stat(f.path)
	}
	if err != nil {
		return Stat{}, statusFromOSError(err, "stat")
	}
	return statOf(f.path, info), status.Ok()
}

// Close flushes pending output and releases the File's hold on its
// descriptor. Safe to call more than once (spec.md §4.1: "double-close
// is safe").
func (f *File) Close() status.Status {
	if f.closed {
		return status.Ok()
	}
	f.closed = true
	if st := f.Flush(); !st.IsOk() {
		f.ref.Release()
		return st
	}
	f.ref.Release()
	return status.Ok()
}
