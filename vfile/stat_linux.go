//go:build linux

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
	"syscall"
	"time"
)

// statPlatform fills the POSIX-only fields of s (inode, device,
// hardlink count, access/change time) from the syscall.Stat_t the
// standard library's os.FileInfo.Sys() exposes on Linux. Darwin/BSD
// expose the same information under differently-named Stat_t fields
// (Atimespec vs Atim) so they get their own zero-value stub in
// stat_other.go rather than a build that silently mismatches field
// names.
func statPlatform(s *Stat, info os.FileInfo) {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	s.Inode = sys.Ino
	s.Dev = uint64(sys.Dev)
	s.NLink = uint64(sys.Nlink)
	s.ATime = time.Unix(sys.Atim.Sec, sys.Atim.Nsec)
	s.CTime = time.Unix(sys.Ctim.Sec, sys.Ctim.Nsec)
	s.CSize = sys.Blocks * 512
}
