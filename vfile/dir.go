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

	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

// Dir is a handle over an open directory, supporting forward-only
// enumeration plus Rewind (spec.md §4.3: "dir_open/read/rewind").
type Dir struct {
	ref     *refobj.Ref
	path    string
	os      *os.File
	entries []os.DirEntry
	pos     int
}

// DirOpen opens path for enumeration under p's lifetime.
func DirOpen(p *pool.Pool, path string) (*Dir, status.Status) {
	f, err := os.Open(path)
	if err != nil {
		return nil, statusFromOSError(err, "opendir "+path)
	}
	d := &Dir{path: path, os: f}
	d.ref = refobj.New(false, func() { _ = f.Close() })
	p.OnCleanup(d.ref.Release)
	if st := d.loadEntries(); !st.IsOk() {
		return nil, st
	}
	return d, status.Ok()
}

func (d *Dir) loadEntries() status.Status {
	entries, err := d.os.ReadDir(-1)
	if err != nil {
		return statusFromOSError(err, "readdir "+d.path)
	}
	d.entries = entries
	d.pos = 0
	return status.Ok()
}

// Read returns the next entry's Stat, or (Stat{}, EOF) once every
// entry has been returned (spec.md §4.3: "dir_read returns nil/EOF at
// the end of the stream, not an error").
func (d *Dir) Read() (Stat, status.Status) {
	if d.pos >= len(d.entries) {
		return Stat{}, status.New(status.EOF, "")
	}
	e := d.entries[d.pos]
	d.pos++
	info, err := e.Info()
	if err != nil {
		return Stat{}, statusFromOSError(err, "stat "+e.Name())
	}
	return statOf(join(d.path, e.Name()), info), status.Ok()
}

// Rewind resets enumeration back to the first entry, re-reading the
// directory to reflect any changes made since Open (spec.md §4.3).
func (d *Dir) Rewind() status.Status {
	if _, err := d.os.Seek(0, 0); err != nil {
		return statusFromOSError(err, "rewind")
	}
	return d.loadEntries()
}

// Close releases the Dir's descriptor. Safe to call more than once.
func (d *Dir) Close() status.Status {
	d.ref.Release()
	return status.Ok()
}

// Make creates path as a directory (spec.md §4.3's dir_make).
func Make(path string, perm os.FileMode) status.Status {
	return statusFromOSError(os.Mkdir(path, perm), "mkdir "+path)
}

// MakeAll creates path and any missing parents.
func MakeAll(path string, perm os.FileMode) status.Status {
	return statusFromOSError(os.MkdirAll(path, perm), "mkdirall "+path)
}

// Remove removes the single, empty entry at path (spec.md §4.3's
// dir_remove with no recursion).
func Remove(path string) status.Status {
	return statusFromOSError(os.Remove(path), "remove "+path)
}
