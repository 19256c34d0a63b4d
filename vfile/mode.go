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

// Package vfile implements spec.md §4.3: buffered File/Pipe/Dir handles
// built on iobuf, advisory locking, and recursive directory removal.
package vfile

import (
	"os"

	"github.com/sabouaram/osrt/status"
)

// OpenMode is the parsed form of the fopen-style mode string spec.md
// §4.3 accepts: "r", "w", "a", "r+", "w+", "a+", each optionally
// suffixed with "b" for binary mode.
type OpenMode struct {
	Read   bool
	Write  bool
	Append bool
	Create bool
	Trunc  bool
	Binary bool
}

// ParseMode decodes s into an OpenMode, or fails with EINVAL if s isn't
// one of the eight accepted spellings.
func ParseMode(s string) (OpenMode, status.Status) {
	binary := false
	if len(s) > 0 && s[len(s)-1] == 'b' {
		binary = true
		s = s[:len(s)-1]
	}

	m := OpenMode{Binary: binary}
	switch s {
	case "r":
		m.Read = true
	case "r+":
		m.Read, m.Write = true, true
	case "w":
		m.Write, m.Create, m.Trunc = true, true, true
	case "w+":
		m.Read, m.Write, m.Create, m.Trunc = true, true, true, true
	case "a":
		m.Write, m.Append, m.Create = true, true, true
	case "a+":
		m.Read, m.Write, m.Append, m.Create = true, true, true, true
	default:
		return OpenMode{}, status.Newf(status.EINVAL, "invalid open mode %q", s)
	}
	return m, status.Ok()
}

// Flags renders m as the os.OpenFile flag bits it corresponds to.
func (m OpenMode) Flags() int {
	var f int
	switch {
	case m.Read && m.Write:
		f = os.O_RDWR
	case m.Write:
		f = os.O_WRONLY
	default:
		f = os.O_RDONLY
	}
	if m.Create {
		f |= os.O_CREATE
	}
	if m.Trunc {
		f |= os.O_TRUNC
	}
	if m.Append {
		f |= os.O_APPEND
	}
	return f
}
