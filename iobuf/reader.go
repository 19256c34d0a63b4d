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

package iobuf

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/sabouaram/osrt/status"
)

// numberRe matches the longest numeric prefix this package accepts:
// an optional sign, a hex literal, or a decimal/float literal with an
// optional exponent.
var numberRe = regexp.MustCompile(`^[+-]?(0[xX][0-9a-fA-F]+|[0-9]+\.?[0-9]*([eE][+-]?[0-9]+)?|\.[0-9]+([eE][+-]?[0-9]+)?)`)

// Reader is the spec's ReadBuf: a Buffer plus a Backend and a text-mode
// flag, implementing the "*l"/"*n"/"*a"/count read formats of
// spec.md §4.2.
type Reader struct {
	buf      *Buffer
	backend  Backend
	textMode bool
	eof      bool
	scanned  int // bytes already scanned for '\n' since the last Compact/refill, relative to index
}

// NewReader wraps backend in a managed Reader. textMode is honored only
// on platforms whose line separator is CRLF (spec.md §4.2); see
// TextModeSupported.
func NewReader(backend Backend, textMode bool) *Reader {
	return &Reader{buf: NewManaged(), backend: backend, textMode: textMode && TextModeSupported()}
}

// NewUnmanagedReader wraps backend around a fixed-size foreign buffer
// (spec.md §4.2's init_unmanaged_buffers), used by vshm. Text mode is
// always disallowed on unmanaged buffers because translation may need
// to grow the buffer, which an unmanaged buffer can never do.
func NewUnmanagedReader(backend Backend, data []byte) *Reader {
	return &Reader{buf: NewUnmanaged(data), backend: backend}
}

// Buffer exposes the underlying Buffer, primarily for Seek support.
func (r *Reader) Buffer() *Buffer { return r.buf }

// fill attempts a single backend read into free space, growing managed
// storage first if the buffer is momentarily full. It is a no-op once
// EOF has been observed. backend.BackendRead returning EOF is folded
// into r.eof, never treated as a failing Status (spec.md §4.2, §7).
func (r *Reader) fill() status.Status {
	if r.eof {
		return status.Ok()
	}
	if r.buf.limit == r.buf.size {
		if r.buf.unmanaged {
			r.eof = true
			return status.Ok()
		}
		r.buf.Grow(initialSize)
	}
	n, st := r.backend.BackendRead(r.buf.data[r.buf.limit:r.buf.size])
	if n > 0 {
		r.buf.limit += n
	}
	if st.Code() == status.EOF {
		r.eof = true
		return status.Ok()
	}
	if !st.IsOk() {
		return st
	}
	if n == 0 {
		r.eof = true
	}
	return status.Ok()
}

// Read evaluates each format in order and returns one Value per
// format, in the same order. Evaluation stops at the first failing
// backend call (a non-EOF, non-ok Status), which is returned alongside
// whatever Values were already produced.
func (r *Reader) Read(formats ...Format) ([]Value, status.Status) {
	if len(formats) == 0 {
		formats = []Format{Line()}
	}
	out := make([]Value, 0, len(formats))
	for _, f := range formats {
		var (
			v  Value
			st status.Status
		)
		switch f.Kind {
		case KindLine:
			v, st = r.readLine()
		case KindNumber:
			v, st = r.readNumber()
		case KindAll:
			v, st = r.readAll()
		case KindCount:
			v, st = r.readCount(f.Count)
		default:
			v, st = r.readLine()
		}
		if !st.IsOk() {
			return out, st
		}
		out = append(out, v)
	}
	return out, status.Ok()
}

// readLine implements the '*l' format (spec.md §4.2 table). The scan
// offset (scanned) is preserved across refills so re-scanning after a
// Compact+fill only re-examines newly appended bytes, giving O(bytes
// appended) behavior instead of O(bytes buffered) as required by
// spec.md §4.2's line-scanning paragraph. Because a trailing '\r' is
// only stripped once '\n' has actually been found, a '\r' sitting at
// the exact end of the buffered region when more input is still
// pending is never stripped prematurely — this is the "CR at buffer
// boundary" corner case spec.md §9 calls out.
func (r *Reader) readLine() (Value, status.Status) {
	for {
		window := r.buf.data[r.buf.index+r.scanned : r.buf.limit]
		if i := bytes.IndexByte(window, '\n'); i >= 0 {
			end := r.buf.index + r.scanned + i
			line := string(r.buf.data[r.buf.index:end])
			if r.textMode && len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			r.buf.index = end + 1
			r.scanned = 0
			return strValue(line), status.Ok()
		}
		r.scanned = r.buf.limit - r.buf.index
		if r.eof {
			if r.buf.Len() == 0 {
				return nilValue(), status.Ok()
			}
			line := string(r.buf.Bytes())
			r.buf.index = r.buf.limit
			r.scanned = 0
			return strValue(line), status.Ok()
		}
		r.buf.Compact()
		r.scanned = r.buf.limit
		if st := r.fill(); !st.IsOk() {
			return nilValue(), st
		}
	}
}

// readAll implements the '*a' format: drain the backend to EOF and
// return everything buffered, translating CRLF to LF in text mode.
func (r *Reader) readAll() (Value, status.Status) {
	for !r.eof {
		if st := r.fill(); !st.IsOk() {
			return nilValue(), st
		}
	}
	s := string(r.buf.Bytes())
	r.buf.index = r.buf.limit
	if r.textMode {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	return strValue(s), status.Ok()
}

// readCount implements the integer format: at most n bytes.
func (r *Reader) readCount(n int) (Value, status.Status) {
	if n <= 0 {
		return strValue(""), status.Ok()
	}
	for r.buf.Len() < n && !r.eof {
		r.buf.Compact()
		if st := r.fill(); !st.IsOk() {
			return nilValue(), st
		}
	}
	avail := r.buf.Len()
	if avail > n {
		avail = n
	}
	if avail == 0 {
		return nilValue(), status.Ok()
	}
	s := string(r.buf.data[r.buf.index : r.buf.index+avail])
	r.buf.index += avail
	if r.textMode {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	return strValue(s), status.Ok()
}

// readNumber implements the '*n' format. Go's slice bounds already
// prevent scanning past limit, which is the behavioral intent behind
// spec.md §4.2's sentinel-byte trick for the C numeric parser; no
// extra termination byte is needed here.
func (r *Reader) readNumber() (Value, status.Status) {
	for {
		for r.buf.index < r.buf.limit && isSpace(r.buf.data[r.buf.index]) {
			r.buf.index++
		}
		if r.buf.index == r.buf.limit {
			if r.eof {
				return nilValue(), status.Ok()
			}
			r.buf.Compact()
			if st := r.fill(); !st.IsOk() {
				return nilValue(), st
			}
			continue
		}
		window := r.buf.data[r.buf.index:r.buf.limit]
		loc := numberRe.FindIndex(window)
		if loc == nil {
			return nilValue(), status.Ok()
		}
		if loc[1] == len(window) && !r.eof {
			r.scanned = 0
			r.buf.Compact()
			if st := r.fill(); !st.IsOk() {
				return nilValue(), st
			}
			continue
		}
		numStr := string(window[loc[0]:loc[1]])
		n, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			if iv, ierr := strconv.ParseInt(numStr, 0, 64); ierr == nil {
				n = float64(iv)
			} else {
				return nilValue(), status.Ok()
			}
		}
		r.buf.index += loc[1]
		return numValue(n), status.Ok()
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
