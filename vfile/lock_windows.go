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

package vfile

import (
	"golang.org/x/sys/windows"

	"github.com/sabouaram/osrt/status"
)

// lockFile applies an advisory range lock via LockFileEx,
// the Windows counterpart to flock(2) (spec.md §4.3).
func lockFile(fd int, exclusive, nonBlocking bool) status.Status {
	h := windows.Handle(fd)
	var flags uint32
	if exclusive {
		flags |= windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	if nonBlocking {
		flags |= windows.LOCKFILE_FAIL_IMMEDIATELY
	}
	ov := new(windows.Overlapped)
	if err := windows.LockFileEx(h, flags, 0, ^uint32(0), ^uint32(0), ov); err != nil {
		return status.New(status.FromErrno(errnoOf(err)), "LockFileEx failed")
	}
	return status.Ok()
}

func unlockFile(fd int) status.Status {
	h := windows.Handle(fd)
	ov := new(windows.Overlapped)
	if err := windows.UnlockFileEx(h, 0, ^uint32(0), ^uint32(0), ov); err != nil {
		return status.New(status.FromErrno(errnoOf(err)), "UnlockFileEx failed")
	}
	return status.Ok()
}
