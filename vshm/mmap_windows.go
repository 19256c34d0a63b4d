//go:build windows

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
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/sabouaram/osrt/status"
)

func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EINVAL
}

// newBacking maps size bytes via CreateFileMapping/MapViewOfFile against
// the page file (INVALID_HANDLE_VALUE), the Windows counterpart of a
// POSIX MAP_ANON|MAP_SHARED mapping: a named mapping object is visible
// to any process that opens the same name, giving named segments the
// cross-process semantics spec.md §4.6 describes; an anonymous one
// (name=="") uses a nil name so only attachments sharing this *segment
// value (same process) ever see it.
func newBacking(name string, size int64) ([]byte, func() error, status.Status) {
	var namePtr *uint16
	if name != "" {
		p, err := windows.UTF16PtrFromString("osrt-shm-" + name)
		if err != nil {
			return nil, nil, status.New(status.EINVAL, "invalid shared memory name")
		}
		namePtr = p
	}

	h, err := windows.CreateFileMapping(
		windows.InvalidHandle, nil, windows.PAGE_READWRITE,
		uint32(size>>32), uint32(size&0xffffffff), namePtr)
	if err != nil {
		return nil, nil, status.New(status.FromErrno(errnoOf(err)), "CreateFileMapping failed")
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, nil, status.New(status.FromErrno(errnoOf(err)), "MapViewOfFile failed")
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
	closer := func() error {
		err1 := windows.UnmapViewOfFile(addr)
		err2 := windows.CloseHandle(h)
		if err1 != nil {
			return err1
		}
		return err2
	}
	return data, closer, status.Ok()
}

// removeBacking is a no-op on Windows: a named file mapping object is
// reference-counted by the kernel and disappears automatically once
// its last handle closes: there is no separate "unlink the name" step
// the way POSIX shm_unlink provides.
func removeBacking(name string) status.Status {
	return status.Ok()
}
