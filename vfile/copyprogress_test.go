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
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/permstring"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/vfile"
)

var _ = Describe("CopyProgress", func() {
	var dir string
	var p *pool.Pool

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "vfile-copy-test-*")
		Expect(err).NotTo(HaveOccurred())
		p = pool.New()
	})

	AfterEach(func() {
		p.Release()
		_ = os.RemoveAll(dir)
	})

	It("copies the full content and reports final progress", func() {
		src := filepath.Join(dir, "src.bin")
		content := strings.Repeat("abcdefgh", 8*1024) // exceeds the copy chunk size
		Expect(os.WriteFile(src, []byte(content), 0o644)).To(Succeed())

		dst := filepath.Join(dir, "dst.bin")
		var lastCopied, lastTotal int64
		n, st := vfile.CopyProgress(p, dst, src, permstring.Perm(0o644), false, func(copied, total int64) {
			lastCopied, lastTotal = copied, total
		})
		Expect(st.IsOk()).To(BeTrue())
		Expect(n).To(Equal(int64(len(content))))
		Expect(lastCopied).To(Equal(int64(len(content))))
		Expect(lastTotal).To(Equal(int64(len(content))))

		got, err := os.ReadFile(dst)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(got)).To(Equal(content))
	})

	It("fails when the source does not exist", func() {
		_, st := vfile.CopyProgress(p, filepath.Join(dir, "dst.bin"), filepath.Join(dir, "missing.bin"), permstring.Perm(0o644), false, nil)
		Expect(st.IsOk()).To(BeFalse())
	})
})
