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

package vfile_test

import (
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/permstring"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/vfile"
)

var _ = Describe("File", func() {
	var dir string
	var p *pool.Pool

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "vfile-test-*")
		Expect(err).NotTo(HaveOccurred())
		p = pool.New()
	})

	AfterEach(func() {
		p.Release()
		_ = os.RemoveAll(dir)
	})

	It("creates, writes, flushes and rereads a file", func() {
		path := filepath.Join(dir, "hello.txt")

		w, st := vfile.Open(p, path, "w", permstring.Perm(0o644))
		Expect(st.IsOk()).To(BeTrue())
		_, st = w.Write("hello\nworld")
		Expect(st.IsOk()).To(BeTrue())
		Expect(w.Flush().IsOk()).To(BeTrue())
		Expect(w.Close().IsOk()).To(BeTrue())

		r, st := vfile.Open(p, path, "r", 0)
		Expect(st.IsOk()).To(BeTrue())
		vals, st := r.Read(iobuf.All())
		Expect(st.IsOk()).To(BeTrue())
		Expect(vals[0].String()).To(Equal("hello\nworld"))
		Expect(r.Close().IsOk()).To(BeTrue())
	})

	It("appends at the current end of file", func() {
		path := filepath.Join(dir, "append.txt")
		w, _ := vfile.Open(p, path, "w", permstring.Perm(0o644))
		_, _ = w.Write("one")
		Expect(w.Close().IsOk()).To(BeTrue())

		a, st := vfile.Open(p, path, "a", permstring.Perm(0o644))
		Expect(st.IsOk()).To(BeTrue())
		Expect(a.Tell()).To(Equal(int64(3)))
		_, _ = a.Write("two")
		Expect(a.Close().IsOk()).To(BeTrue())

		r, _ := vfile.Open(p, path, "r", 0)
		vals, _ := r.Read(iobuf.All())
		Expect(vals[0].String()).To(Equal("onetwo"))
		_ = r.Close()
	})

	It("reports EOF, not an error, once content is exhausted", func() {
		path := filepath.Join(dir, "empty.txt")
		w, _ := vfile.Open(p, path, "w", permstring.Perm(0o644))
		Expect(w.Close().IsOk()).To(BeTrue())

		r, _ := vfile.Open(p, path, "r", 0)
		vals, st := r.Read(iobuf.Line())
		Expect(st.IsOk()).To(BeTrue())
		Expect(vals[0].IsNil()).To(BeTrue())
		_ = r.Close()
	})

	It("reopens with \"r+\" for independent read/write cursors", func() {
		path := filepath.Join(dir, "rw.txt")
		w, _ := vfile.Open(p, path, "w", permstring.Perm(0o644))
		_, _ = w.Write("abcdef")
		_ = w.Close()

		rw, st := vfile.Open(p, path, "r+", 0)
		Expect(st.IsOk()).To(BeTrue())
		vals, _ := rw.Read(iobuf.Count(3))
		Expect(vals[0].String()).To(Equal("abc"))
		pos, st := rw.Seek(0, io.SeekStart)
		Expect(st.IsOk()).To(BeTrue())
		Expect(pos).To(Equal(int64(0)))
		_, st = rw.Write("XYZ")
		Expect(st.IsOk()).To(BeTrue())
		Expect(rw.Close().IsOk()).To(BeTrue())

		r, _ := vfile.Open(p, path, "r", 0)
		vals, _ = r.Read(iobuf.All())
		Expect(vals[0].String()).To(Equal("XYZdef"))
		_ = r.Close()
	})

	It("allows a double Close without error", func() {
		path := filepath.Join(dir, "double-close.txt")
		f, _ := vfile.Open(p, path, "w", permstring.Perm(0o644))
		Expect(f.Close().IsOk()).To(BeTrue())
		Expect(f.Close().IsOk()).To(BeTrue())
	})

	It("closes the descriptor when the owning Pool is released", func() {
		path := filepath.Join(dir, "pool-close.txt")
		f, _ := vfile.Open(p, path, "w", permstring.Perm(0o644))
		_, _ = f.Write("x")
		p.Release()

		// a fresh handle on the same path must see the flushed byte
		p2 := pool.New()
		defer p2.Release()
		r, st := vfile.Open(p2, path, "r", 0)
		Expect(st.IsOk()).To(BeTrue())
		vals, _ := r.Read(iobuf.All())
		Expect(vals[0].String()).To(Equal("x"))
	})

	It("reports Stat with the expected size and regular-file type", func() {
		path := filepath.Join(dir, "stat.txt")
		f, _ := vfile.Open(p, path, "w", permstring.Perm(0o644))
		_, _ = f.Write("12345")
		_ = f.Flush()

		st, sst := f.Stat()
		Expect(sst.IsOk()).To(BeTrue())
		Expect(st.Size).To(Equal(int64(5)))
		Expect(st.Type).To(Equal(vfile.TypeRegular))
		_ = f.Close()
	})

	It("takes and releases an exclusive advisory lock", func() {
		path := filepath.Join(dir, "lock.txt")
		f, _ := vfile.Open(p, path, "w", permstring.Perm(0o644))
		Expect(f.Lock(true, false).IsOk()).To(BeTrue())
		Expect(f.Unlock().IsOk()).To(BeTrue())
		_ = f.Close()
	})

	It("fails to open a missing file for reading", func() {
		_, st := vfile.Open(p, filepath.Join(dir, "nope.txt"), "r", 0)
		Expect(st.IsOk()).To(BeFalse())
	})
})
