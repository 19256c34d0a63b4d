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
	"io"

	"github.com/sabouaram/osrt/status"
)

// Stream pairs a Reader and a Writer over one Seeker-capable Backend,
// the combination File and SharedMem need (Socket and Pipe use Reader
// and Writer directly, without a Stream, since they are not seekable).
type Stream struct {
	R       *Reader
	W       *Writer
	seeker  Seeker
	headPos int64 // absolute backend offset of the next unread byte
}

// NewStream builds a Stream over backend, which must also implement
// Seeker. initialPos is the backend's starting offset (normally 0 for
// a freshly opened file).
func NewStream(backend Backend, seeker Seeker, textMode bool, initialPos int64) *Stream {
	return &Stream{
		R:       NewReader(backend, textMode),
		W:       NewWriter(backend, textMode),
		seeker:  seeker,
		headPos: initialPos,
	}
}

// Tell returns the logical stream position: the absolute offset of the
// next byte Read will return.
func (s *Stream) Tell() int64 {
	return s.headPos
}

// trackRead advances headPos to account for n bytes moving from
// buffered-but-unread to consumed. Call after every Reader operation
// that advances the read cursor.
func (s *Stream) trackRead(n int) {
	s.headPos += int64(n)
}

// Read delegates to the wrapped Reader and keeps headPos in sync so
// Seek can later decide whether a target offset still falls inside the
// buffered window.
func (s *Stream) Read(formats ...Format) ([]Value, status.Status) {
	before := s.R.buf.index
	vals, st := s.R.Read(formats...)
	s.trackRead(s.R.buf.index - before)
	return vals, st
}

// Write delegates to the wrapped Writer.
func (s *Stream) Write(strs ...string) (int, status.Status) {
	return s.W.Write(strs...)
}

// Flush delegates to the wrapped Writer.
func (s *Stream) Flush() status.Status {
	return s.W.Flush()
}

// Seek repositions the stream. whence follows io.Seek* conventions
// (SeekStart=0, SeekCurrent=1, SeekEnd=2), matching spec.md §4.2's
// {set, cur, end} modes. Per spec.md §4.2's seek invariants: the
// Writer is always flushed first; the Reader's buffered window is
// invalidated unless the target offset falls inside it, in which case
// only the cursor moves and no backend seek call is made at all.
func (s *Stream) Seek(offset int64, whence int) (int64, status.Status) {
	if st := s.W.Flush(); !st.IsOk() {
		return 0, st
	}

	if whence == io.SeekCurrent {
		offset = s.headPos + offset
		whence = io.SeekStart
	}

	if whence == io.SeekStart {
		tail := s.headPos + int64(s.R.buf.Len())
		if offset >= s.headPos && offset < tail {
			delta := int(offset - s.headPos)
			s.R.buf.SetIndex(s.R.buf.index + delta)
			s.headPos = offset
			return offset, status.Ok()
		}
	}

	abs, st := s.seeker.BackendSeek(offset, whence)
	if !st.IsOk() {
		return 0, st
	}
	s.R.buf.Reset()
	s.R.eof = false
	s.headPos = abs
	return abs, status.Ok()
}
