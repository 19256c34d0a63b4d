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

package vfile

import (
	"golang.org/x/sys/unix"

	"github.com/sabouaram/osrt/status"
)

// lockFile applies an advisory BSD lock (flock(2)) on fd,
// per spec.md §4.3's lock/unlock operation. nonBlocking maps to
// LOCK_NB; exclusive selects LOCK_EX over LOCK_SH.
func lockFile(fd int, exclusive, nonBlocking bool) status.Status {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	if nonBlocking {
		how |= unix.LOCK_NB
	}
	if err := unix.Flock(fd, how); err != nil {
		return status.New(status.FromErrno(errnoOf(err)), "flock failed")
	}
	return status.Ok()
}

func unlockFile(fd int) status.Status {
	if err := unix.Flock(fd, unix.LOCK_UN); err != nil {
		return status.New(status.FromErrno(errnoOf(err)), "flock unlock failed")
	}
	return status.Ok()
}
