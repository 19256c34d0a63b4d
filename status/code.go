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

package status

import "syscall"

// Code is the symbolic status code carried by every Status value.
// The zero Code is Success.
type Code uint16

// Closed set of symbolic codes surfaced to scripts. Platform-dependent
// errno values are folded onto this set by FromErrno; codes with no
// direct errno equivalent on the current platform still exist as named
// constants so callers can compare against them portably.
const (
	Success Code = iota
	EOF
	TIMEUP
	INCOMPLETE
	ENOTIMPL
	EACCES
	EEXIST
	ENOENT
	ENOTDIR
	ENOSPC
	ENOMEM
	EMFILE
	ENFILE
	EBADF
	EINVAL
	ESPIPE
	EAGAIN
	EINTR
	ENOTSOCK
	ECONNREFUSED
	EINPROGRESS
	ECONNABORTED
	ECONNRESET
	ETIMEDOUT
	EHOSTUNREACH
	ENETUNREACH
	EPIPE
	EXDEV
	ENOTEMPTY
	EAFNOSUPPORT
	ENAMETOOLONG
	EMISMATCH
	EBADPATH
	EABSOLUTE
	ERELATIVE
	EABOVEROOT
	ESYMNOTFOUND
	EDSOOPEN
	ENOTENOUGHENTROPY
	EPROC_UNKNOWN
)

// names holds the symbolic spelling for every Code in declaration order.
var names = [...]string{
	"SUCCESS",
	"EOF",
	"TIMEUP",
	"INCOMPLETE",
	"ENOTIMPL",
	"EACCES",
	"EEXIST",
	"ENOENT",
	"ENOTDIR",
	"ENOSPC",
	"ENOMEM",
	"EMFILE",
	"ENFILE",
	"EBADF",
	"EINVAL",
	"ESPIPE",
	"EAGAIN",
	"EINTR",
	"ENOTSOCK",
	"ECONNREFUSED",
	"EINPROGRESS",
	"ECONNABORTED",
	"ECONNRESET",
	"ETIMEDOUT",
	"EHOSTUNREACH",
	"ENETUNREACH",
	"EPIPE",
	"EXDEV",
	"ENOTEMPTY",
	"EAFNOSUPPORT",
	"ENAMETOOLONG",
	"EMISMATCH",
	"EBADPATH",
	"EABSOLUTE",
	"ERELATIVE",
	"EABOVEROOT",
	"ESYMNOTFOUND",
	"EDSOOPEN",
	"ENOTENOUGHENTROPY",
	"EPROC_UNKNOWN",
}

// String returns the symbolic spelling of the code, e.g. "ENOENT".
// Unknown codes (out of the declared range) render as "EUNKNOWN".
func (c Code) String() string {
	if int(c) < len(names) {
		return names[c]
	}
	return "EUNKNOWN"
}

// errnoTable maps syscall.Errno values to the closed Code set on the
// current platform. It is intentionally small: only the errnos that
// File/Socket/Process/SharedMem operations can actually surface are
// mapped, everything else falls back to EINVAL.
var errnoTable = map[syscall.Errno]Code{
	syscall.EACCES:       EACCES,
	syscall.EEXIST:       EEXIST,
	syscall.ENOENT:       ENOENT,
	syscall.ENOTDIR:      ENOTDIR,
	syscall.ENOSPC:       ENOSPC,
	syscall.ENOMEM:       ENOMEM,
	syscall.EMFILE:       EMFILE,
	syscall.ENFILE:       ENFILE,
	syscall.EBADF:        EBADF,
	syscall.EINVAL:       EINVAL,
	syscall.ESPIPE:       ESPIPE,
	syscall.EAGAIN:       EAGAIN,
	syscall.EINTR:        EINTR,
	syscall.ENOTSOCK:     ENOTSOCK,
	syscall.ECONNREFUSED: ECONNREFUSED,
	syscall.EINPROGRESS:  EINPROGRESS,
	syscall.ECONNABORTED: ECONNABORTED,
	syscall.ECONNRESET:   ECONNRESET,
	syscall.ETIMEDOUT:    ETIMEDOUT,
	syscall.EHOSTUNREACH: EHOSTUNREACH,
	syscall.ENETUNREACH:  ENETUNREACH,
	syscall.EPIPE:        EPIPE,
	syscall.EXDEV:        EXDEV,
	syscall.ENOTEMPTY:    ENOTEMPTY,
	syscall.EAFNOSUPPORT: EAFNOSUPPORT,
	syscall.ENAMETOOLONG: ENAMETOOLONG,
}

// FromErrno maps a syscall.Errno to the closed symbolic Code set.
// Errnos with no entry in the table return EINVAL, never EUNKNOWN,
// since EINVAL is always a safe catch-all for "the OS rejected this".
func FromErrno(errno syscall.Errno) Code {
	if c, ok := errnoTable[errno]; ok {
		return c
	}
	return EINVAL
}
