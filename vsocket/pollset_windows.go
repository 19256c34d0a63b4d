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

package vsocket

import (
	"time"

	"golang.org/x/sys/windows"

	"github.com/sabouaram/osrt/status"
)

// platformPoll uses WSAPoll, Winsock's equivalent of poll(2), so the
// readiness semantics match the unix build exactly: a loop of bounded
// WSAPoll calls against the overall deadline rather than one call with
// a massive timeout.
func platformPoll(regs []pollReg, deadline time.Time, forever bool) ([]*Socket, []*Socket, status.Status) {
	type entry struct {
		reg    pollReg
		handle windows.Handle
	}
	var entries []entry

	for _, r := range regs {
		rc, ok := r.socket.syscallConn()
		if !ok {
			continue
		}
		var h windows.Handle
		_ = rc.Control(func(fd uintptr) { h = windows.Handle(fd) })
		entries = append(entries, entry{reg: r, handle: h})
	}
	if len(entries) == 0 {
		return nil, nil, status.New(status.EINVAL, "no pollable sockets")
	}

	for {
		fds := make([]windows.WSAPollFd, len(entries))
		for i, e := range entries {
			var events int16
			if e.reg.wantRead {
				events |= windows.POLLRDNORM
			}
			if e.reg.wantWrite {
				events |= windows.POLLWRNORM
			}
			fds[i] = windows.WSAPollFd{Fd: e.handle, Events: events}
		}

		waitMs := int32(-1)
		if !forever {
			remaining := int32(time.Until(deadline) / time.Millisecond)
			if remaining < 0 {
				remaining = 0
			}
			waitMs = remaining
		}

		n, err := windows.WSAPoll(fds, waitMs)
		if err != nil {
			return nil, nil, status.New(status.EINVAL, err.Error())
		}
		if n == 0 {
			return nil, nil, status.Ok()
		}

		var readable, writable []*Socket
		for i, pfd := range fds {
			if pfd.REvents&windows.POLLRDNORM != 0 {
				readable = append(readable, entries[i].reg.socket)
			}
			if pfd.REvents&windows.POLLWRNORM != 0 {
				writable = append(writable, entries[i].reg.socket)
			}
		}
		return readable, writable, status.Ok()
	}
}
