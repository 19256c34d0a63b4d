//go:build !windows

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

package vshm

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/osrt/status"
)

func backingPath(name string) string {
	return filepath.Join(os.TempDir(), "osrt-shm-"+name)
}

// errnoOf extracts the underlying syscall.Errno from err, defaulting to
// EINVAL's platform errno when err doesn't wrap one.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EINVAL
}

// newBacking maps size bytes of MAP_SHARED memory: a mapping of the
// file backingPath(name) under os.TempDir for a named segment (so a second process attaching by name
// would see the same pages, matching spec.md §4.6's named-segment
// semantics) or anonymous MAP_ANON memory when name=="".
func newBacking(name string, size int64) ([]byte, func() error, status.Status) {
	if name == "" {
		data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
		if err != nil {
			return nil, nil, status.New(status.FromErrno(errnoOf(err)), "anonymous mmap failed")
		}
		return data, func() error { return unix.Munmap(data) }, status.Ok()
	}

	path := backingPath(name)
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT, 0600)
	if err != nil {
		return nil, nil, status.New(status.FromErrno(errnoOf(err)), "open shared memory backing failed")
	}
	if err := unix.Ftruncate(fd, size); err != nil {
		_ = unix.Close(fd)
		return nil, nil, status.New(status.FromErrno(errnoOf(err)), "truncate shared memory backing failed")
	}
	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	_ = unix.Close(fd)
	if err != nil {
		return nil, nil, status.New(status.FromErrno(errnoOf(err)), "mmap shared memory backing failed")
	}
	return data, func() error { return unix.Munmap(data) }, status.Ok()
}

func removeBacking(name string) status.Status {
	if err := unix.Unlink(backingPath(name)); err != nil && errnoOf(err) != unix.ENOENT {
		return status.New(status.FromErrno(errnoOf(err)), "unlink shared memory backing failed")
	}
	return status.Ok()
}
