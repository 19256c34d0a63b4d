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

package vshm_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/vshm"
)

func uniqueName() string {
	return fmt.Sprintf("test-%d", time.Now().UnixNano())
}

var _ = Describe("SharedMem", func() {
	It("round-trips a write then a seek-to-0 read on an anonymous segment", func() {
		sm, st := vshm.Create("", 4096)
		Expect(st.IsOk()).To(BeTrue())
		defer sm.Destroy()

		_, st = sm.Write("hello shared world")
		Expect(st.IsOk()).To(BeTrue())

		_, st = sm.Seek(0, 0)
		Expect(st.IsOk()).To(BeTrue())

		vals, st := sm.Read(iobuf.Count(len("hello shared world")))
		Expect(st.IsOk()).To(BeTrue())
		Expect(vals[0].String()).To(Equal("hello shared world"))
	})

	It("shares bytes between a named segment's Create and a second Attach", func() {
		name := uniqueName()
		a, st := vshm.Create(name, 4096)
		Expect(st.IsOk()).To(BeTrue())
		defer a.Destroy()

		_, st = a.Write("shared via name")
		Expect(st.IsOk()).To(BeTrue())
		Expect(a.Flush().IsOk()).To(BeTrue())

		b, st := vshm.Attach(name)
		Expect(st.IsOk()).To(BeTrue())
		defer b.Detach()

		_, st = b.Seek(0, 0)
		Expect(st.IsOk()).To(BeTrue())
		vals, st := b.Read(iobuf.Count(len("shared via name")))
		Expect(st.IsOk()).To(BeTrue())
		Expect(vals[0].String()).To(Equal("shared via name"))
	})

	It("keeps an existing attachment valid after Remove unlinks the name", func() {
		name := uniqueName()
		a, st := vshm.Create(name, 4096)
		Expect(st.IsOk()).To(BeTrue())
		defer a.Destroy()

		Expect(vshm.Remove(name).IsOk()).To(BeTrue())

		_, st = a.Write("still here")
		Expect(st.IsOk()).To(BeTrue())

		_, st = vshm.Attach(name)
		Expect(st.IsOk()).To(BeFalse())
	})

	It("fails to attach a segment that was never created", func() {
		_, st := vshm.Attach(uniqueName())
		Expect(st.IsOk()).To(BeFalse())
	})

	It("rejects a seek past the end of the backing store", func() {
		sm, st := vshm.Create("", 8)
		Expect(st.IsOk()).To(BeTrue())
		defer sm.Destroy()

		_, st = sm.Seek(1<<30, 0)
		Expect(st.IsOk()).To(BeFalse())
	})
})
