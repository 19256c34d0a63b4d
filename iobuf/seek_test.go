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

package iobuf_test

import (
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/iobuf"
)

var _ = Describe("Stream.Seek", func() {

	Context("seeking inside the already-buffered window", func() {
		It("repositions the cursor without calling BackendSeek", func() {
			backend := newMemBackend("0123456789", 20)
			s := iobuf.NewStream(backend, backend, false, 0)

			vals, st := s.Read(iobuf.Count(5))
			Expect(st.IsOk()).To(BeTrue())
			Expect(vals[0].String()).To(Equal("01234"))

			posBefore := backend.pos
			pos, st := s.Seek(1, io.SeekStart)
			Expect(st.IsOk()).To(BeTrue())
			Expect(pos).To(Equal(int64(1)))
			Expect(backend.pos).To(Equal(posBefore), "buffered seek must not touch the backend cursor")

			vals, st = s.Read(iobuf.Count(3))
			Expect(st.IsOk()).To(BeTrue())
			Expect(vals[0].String()).To(Equal("123"))
		})
	})

	Context("seeking outside the buffered window", func() {
		It("falls through to BackendSeek and invalidates the buffer", func() {
			backend := newMemBackend("0123456789", 3)
			s := iobuf.NewStream(backend, backend, false, 0)

			_, st := s.Read(iobuf.Count(2))
			Expect(st.IsOk()).To(BeTrue())

			pos, st := s.Seek(8, io.SeekStart)
			Expect(st.IsOk()).To(BeTrue())
			Expect(pos).To(Equal(int64(8)))

			vals, st := s.Read(iobuf.Count(2))
			Expect(st.IsOk()).To(BeTrue())
			Expect(vals[0].String()).To(Equal("89"))
		})
	})

	Context("SeekCurrent and SeekEnd", func() {
		It("computes offsets relative to the current and end positions", func() {
			backend := newMemBackend("abcdefghij", 20)
			s := iobuf.NewStream(backend, backend, false, 0)

			_, _ = s.Read(iobuf.Count(3))
			pos, st := s.Seek(2, io.SeekCurrent)
			Expect(st.IsOk()).To(BeTrue())
			Expect(pos).To(Equal(int64(5)))

			pos, st = s.Seek(-2, io.SeekEnd)
			Expect(st.IsOk()).To(BeTrue())
			Expect(pos).To(Equal(int64(8)))
		})
	})

	Context("flushing pending writes before a seek", func() {
		It("drains the Writer so the backend reflects staged bytes first", func() {
			backend := newMemBackend("0000000000", 20)
			s := iobuf.NewStream(backend, backend, false, 0)

			_, st := s.Write("AB")
			Expect(st.IsOk()).To(BeTrue())
			Expect(s.W.Pending()).To(Equal(2))

			_, st = s.Seek(5, io.SeekStart)
			Expect(st.IsOk()).To(BeTrue())
			Expect(s.W.Pending()).To(Equal(0))
			Expect(len(backend.data) >= 2).To(BeTrue())
		})
	})
})
