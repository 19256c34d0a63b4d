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
	"github.com/sabouaram/osrt/permstring"
	"github.com/sabouaram/osrt/status"
)

// NewNamedPipe has no POSIX-FIFO equivalent on Windows (named pipes
// there are a distinct kernel object reached through \\.\pipe\, not a
// filesystem special file an arbitrary process can os.OpenFile); spec.md
// §4.3 marks named-pipe support as platform-limited, so this reports
// ENOTIMPL rather than emulating semantics Windows doesn't have.
func NewNamedPipe(path string, perm permstring.Perm) status.Status {
	return status.New(status.ENOTIMPL, "named pipes are not supported on windows")
}
