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

package vsocket

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/osrt/status"
)

// platformPoll uses poll(2) via golang.org/x/sys/unix: each registered
// socket contributes one pollfd, polled in a loop so a timeout that
// spans multiple poll(2) calls (interrupted by EINTR) still respects
// the caller's overall deadline.
func platformPoll(regs []pollReg, deadline time.Time, forever bool) ([]*Socket, []*Socket, status.Status) {
	type entry struct {
		reg pollReg
		fd  int
	}
	var entries []entry

	for _, r := range regs {
		rc, ok := r.socket.syscallConn()
		if !ok {
			continue
		}
		var fd int
		_ = rc.Control(func(f uintptr) { fd = int(f) })
		entries = append(entries, entry{reg: r, fd: fd})
	}
	if len(entries) == 0 {
		return nil, nil, status.New(status.EINVAL, "no pollable file descriptors")
	}

	for {
		fds := make([]unix.PollFd, len(entries))
		for i, e := range entries {
			var events int16
			if e.reg.wantRead {
				events |= unix.POLLIN
			}
			if e.reg.wantWrite {
				events |= unix.POLLOUT
			}
			fds[i] = unix.PollFd{Fd: int32(e.fd), Events: events}
		}

		waitMs := -1
		if !forever {
			waitMs = int(time.Until(deadline) / time.Millisecond)
			if waitMs < 0 {
				waitMs = 0
			}
		}

		n, err := unix.Poll(fds, waitMs)
		if err == unix.EINTR {
			if !forever && time.Now().After(deadline) {
				return nil, nil, status.Ok()
			}
			continue
		}
		if err != nil {
			return nil, nil, status.New(status.EINVAL, err.Error())
		}
		if n == 0 {
			return nil, nil, status.Ok()
		}

		var readable, writable []*Socket
		for i, pfd := range fds {
			if pfd.Revents&unix.POLLIN != 0 {
				readable = append(readable, entries[i].reg.socket)
			}
			if pfd.Revents&unix.POLLOUT != 0 {
				writable = append(writable, entries[i].reg.socket)
			}
		}
		return readable, writable, status.Ok()
	}
}
