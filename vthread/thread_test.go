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

package vthread_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/rtctx"
	"github.com/sabouaram/osrt/vthread"
)

var _ = Describe("Thread", func() {
	It("runs the body in a goroutine with its own Ctx and returns its result", func() {
		parent := rtctx.New(nil)

		th, st := vthread.Create(parent, func(ctx *rtctx.Ctx, args []vthread.Value) []vthread.Value {
			Expect(ctx).NotTo(BeNil())
			Expect(ctx).NotTo(BeIdenticalTo(parent))
			Expect(args).To(HaveLen(1))
			return []vthread.Value{vthread.Number(args[0].Num * 2)}
		}, vthread.Number(21))
		Expect(st.IsOk()).To(BeTrue())
		Expect(th.ID()).NotTo(BeEmpty())

		vals, ok := th.Join()
		Expect(ok).To(BeTrue())
		Expect(vals[0].Num).To(Equal(42.0))
	})

	It("reports Done without blocking before the body finishes", func() {
		gate := make(chan struct{})
		th, st := vthread.Create(nil, func(ctx *rtctx.Ctx, args []vthread.Value) []vthread.Value {
			<-gate
			return nil
		})
		Expect(st.IsOk()).To(BeTrue())

		Expect(th.Done()).To(BeFalse())
		close(gate)

		Eventually(th.Done, time.Second, 5*time.Millisecond).Should(BeTrue())
		_, ok := th.Join()
		Expect(ok).To(BeTrue())
	})

	It("reports Join ok=false when the body panics", func() {
		th, st := vthread.Create(nil, func(ctx *rtctx.Ctx, args []vthread.Value) []vthread.Value {
			panic("boom")
		})
		Expect(st.IsOk()).To(BeTrue())

		_, ok := th.Join()
		Expect(ok).To(BeFalse())
	})
})
