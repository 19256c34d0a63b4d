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
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/vfile"
)

var _ = Describe("RemoveRecursive", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "vfile-rm-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(root)
	})

	It("removes a nested tree of files and directories", func() {
		Expect(os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "top.txt"), []byte("x"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "a", "mid.txt"), []byte("x"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "a", "b", "c", "leaf.txt"), []byte("x"), 0o644)).To(Succeed())

		Expect(vfile.RemoveRecursive(root).IsOk()).To(BeTrue())
		_, err := os.Stat(root)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("removes a single plain file passed directly as root", func() {
		f := filepath.Join(root, "solo.txt")
		Expect(os.WriteFile(f, []byte("x"), 0o644)).To(Succeed())
		Expect(vfile.RemoveRecursive(f).IsOk()).To(BeTrue())
		_, err := os.Stat(f)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("removes an empty directory", func() {
		empty := filepath.Join(root, "empty")
		Expect(os.Mkdir(empty, 0o755)).To(Succeed())
		Expect(vfile.RemoveRecursive(empty).IsOk()).To(BeTrue())
		_, err := os.Stat(empty)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("copes with a directory wide enough to cross the inner pool recycle budget", func() {
		wide := filepath.Join(root, "wide")
		Expect(os.Mkdir(wide, 0o755)).To(Succeed())
		for i := 0; i < 4100; i++ {
			name := filepath.Join(wide, fmt.Sprintf("f%d.txt", i))
			Expect(os.WriteFile(name, []byte("x"), 0o644)).To(Succeed())
		}
		Expect(vfile.RemoveRecursive(wide).IsOk()).To(BeTrue())
		_, err := os.Stat(wide)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("fails when root does not exist", func() {
		Expect(vfile.RemoveRecursive(filepath.Join(root, "missing")).IsOk()).To(BeFalse())
	})
})
