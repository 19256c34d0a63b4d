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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/vfile"
)

var _ = Describe("ParseMode", func() {
	DescribeTable("accepted mode strings",
		func(s string, read, write, appnd, create, trunc, binary bool) {
			m, st := vfile.ParseMode(s)
			Expect(st.IsOk()).To(BeTrue())
			Expect(m.Read).To(Equal(read))
			Expect(m.Write).To(Equal(write))
			Expect(m.Append).To(Equal(appnd))
			Expect(m.Create).To(Equal(create))
			Expect(m.Trunc).To(Equal(trunc))
			Expect(m.Binary).To(Equal(binary))
		},
		Entry("r", "r", true, false, false, false, false, false),
		Entry("rb", "rb", true, false, false, false, false, true),
		Entry("w", "w", false, true, false, true, true, false),
		Entry("w+", "w+", true, true, false, true, true, false),
		Entry("a", "a", false, true, true, true, false, false),
		Entry("a+b", "a+b", true, true, true, true, false, true),
		Entry("r+", "r+", true, true, false, false, false, false),
	)

	It("rejects an unrecognized mode string", func() {
		_, st := vfile.ParseMode("x")
		Expect(st.IsOk()).To(BeFalse())
	})

	It("renders O_RDWR|O_CREATE|O_TRUNC for w+", func() {
		m, _ := vfile.ParseMode("w+")
		Expect(m.Flags() & os.O_RDWR).NotTo(BeZero())
		Expect(m.Flags() & os.O_CREATE).NotTo(BeZero())
		Expect(m.Flags() & os.O_TRUNC).NotTo(BeZero())
	})

	It("renders O_WRONLY|O_CREATE|O_APPEND for a", func() {
		m, _ := vfile.ParseMode("a")
		Expect(m.Flags() & os.O_WRONLY).NotTo(BeZero())
		Expect(m.Flags() & os.O_APPEND).NotTo(BeZero())
	})
})
