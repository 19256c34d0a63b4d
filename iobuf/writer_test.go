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

// writer_test.go covers spec.md §8 scenario 2: writing "hello\nworld"
// through a text-mode Writer and reading it back in binary mode observes
// the CRLF expansion where TextModeSupported reports true, and the
// unchanged bytes elsewhere.
package iobuf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/iobuf"
)

var _ = Describe("Writer", func() {

	Context("scenario 2: text-mode CRLF expansion", func() {
		It("expands \\n to \\r\\n on flush where supported and leaves it untouched on binary reread", func() {
			want := "hello\nworld"
			if iobuf.TextModeSupported() {
				want = "hello\r\nworld"
			}
			backend := newMemBackend("", 4096)
			w := iobuf.NewWriter(backend, true)

			n, st := w.Write("hello\nworld")
			Expect(st.IsOk()).To(BeTrue())
			Expect(n).To(Equal(len("hello\nworld")))

			Expect(w.Flush().IsOk()).To(BeTrue())

			binaryReader := iobuf.NewReader(backend, false)
			backend.pos = 0
			vals, st := binaryReader.Read(iobuf.All())
			Expect(st.IsOk()).To(BeTrue())
			Expect(vals[0].String()).To(Equal(want))
		})
	})

	Context("on a platform without CRLF line endings", func() {
		It("never expands \\n regardless of the textMode argument", func() {
			if iobuf.TextModeSupported() {
				Skip("host platform uses CRLF; this case only applies on POSIX")
			}
			backend := newMemBackend("", 4096)
			w := iobuf.NewWriter(backend, true)
			_, _ = w.Write("a\nb")
			Expect(w.Flush().IsOk()).To(BeTrue())
			Expect(string(backend.data)).To(Equal("a\nb"))
		})
	})

	Context("flushing across a full staging buffer", func() {
		It("writes everything even when input exceeds one fill cycle", func() {
			backend := newMemBackend("", 16)
			w := iobuf.NewWriter(backend, false)

			big := make([]byte, 5000)
			for i := range big {
				big[i] = 'x'
			}
			n, st := w.Write(string(big))
			Expect(st.IsOk()).To(BeTrue())
			Expect(n).To(Equal(5000))
			Expect(w.Flush().IsOk()).To(BeTrue())
			Expect(len(backend.data)).To(Equal(5000))
		})
	})

	Context("Pending", func() {
		It("reports staged-but-unflushed byte count", func() {
			backend := newMemBackend("", 4096)
			w := iobuf.NewWriter(backend, false)
			_, _ = w.Write("abc")
			Expect(w.Pending()).To(Equal(3))
			Expect(w.Flush().IsOk()).To(BeTrue())
			Expect(w.Pending()).To(Equal(0))
		})
	})
})
