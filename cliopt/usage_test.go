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

package cliopt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("parseUsage", func() {
	It("extracts short and long forms plus whether an option takes a value", func() {
		specs := parseUsage(`usage: demo [options]

  -v, --verbose          enable verbose logging
  -o, --output=FILE      write output to FILE
  -h, --help             show this help message`)

		Expect(specs).To(HaveLen(3))

		Expect(specs[0].short).To(Equal(byte('v')))
		Expect(specs[0].long).To(Equal("verbose"))
		Expect(specs[0].hasArg).To(BeFalse())

		Expect(specs[1].short).To(Equal(byte('o')))
		Expect(specs[1].long).To(Equal("output"))
		Expect(specs[1].hasArg).To(BeTrue())

		Expect(specs[2].short).To(Equal(byte('h')))
		Expect(specs[2].long).To(Equal("help"))
	})

	It("ignores prose lines that do not open with an option", func() {
		specs := parseUsage("usage: demo [options] <file>\n\nrun the demo program.")
		Expect(specs).To(BeEmpty())
	})

	It("accepts a short-only option with no long form", func() {
		specs := parseUsage("  -x               enable x mode")
		Expect(specs).To(HaveLen(1))
		Expect(specs[0].short).To(Equal(byte('x')))
		Expect(specs[0].long).To(Equal(""))
		Expect(specs[0].name()).To(Equal("x"))
	})
})
