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

package cliopt_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/cliopt"
)

const demoUsage = `usage: demo [options] <file>

  -v, --verbose          enable verbose logging
  -o, --output=FILE      write output to FILE
  -h, --help             show this help message`

const noHelpUsage = `usage: plain [options] <file>

  -v, --verbose          enable verbose logging`

var _ = Describe("Parse", func() {
	It("collects declared options and leftover positionals", func() {
		res, st := cliopt.Parse(demoUsage, []string{"-v", "--output=out.txt", "pos1", "pos2"}, true)
		Expect(st.IsOk()).To(BeTrue())
		Expect(res.HelpShown).To(BeFalse())
		Expect(res.Options).To(HaveKeyWithValue("verbose", "true"))
		Expect(res.Options).To(HaveKeyWithValue("output", "out.txt"))
		Expect(res.Args).To(Equal([]string{"pos1", "pos2"}))
	})

	It("reports HelpShown on --help without exiting when noExit is set", func() {
		res, st := cliopt.Parse(demoUsage, []string{"--help"}, true)
		Expect(st.IsOk()).To(BeTrue())
		Expect(res.HelpShown).To(BeTrue())
	})

	It("synthesizes -h/--help when the usage string never declares it", func() {
		res, st := cliopt.Parse(noHelpUsage, []string{"-h"}, true)
		Expect(st.IsOk()).To(BeTrue())
		Expect(res.HelpShown).To(BeTrue())
	})

	It("returns a non-ok Status on an unknown flag when noExit is set", func() {
		res, st := cliopt.Parse(demoUsage, []string{"--bogus"}, true)
		Expect(st.IsOk()).To(BeFalse())
		Expect(res).To(BeNil())
	})

	It("leaves options absent from the command line out of the map", func() {
		res, st := cliopt.Parse(demoUsage, []string{"pos1"}, true)
		Expect(st.IsOk()).To(BeTrue())
		Expect(res.Options).To(BeEmpty())
		Expect(res.Args).To(Equal([]string{"pos1"}))
	})
})
