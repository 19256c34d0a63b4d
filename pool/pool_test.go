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

package pool_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/pool"
)

var _ = Describe("Pool", func() {

	Context("OnCleanup", func() {
		It("runs registered cleanups in LIFO order exactly once", func() {
			p := pool.New()
			var order []int
			p.OnCleanup(func() { order = append(order, 1) })
			p.OnCleanup(func() { order = append(order, 2) })
			p.OnCleanup(func() { order = append(order, 3) })

			p.Release()
			Expect(order).To(Equal([]int{3, 2, 1}))
			Expect(p.Destroyed()).To(BeTrue())
		})

		It("runs fn immediately when registered after destruction", func() {
			p := pool.New()
			p.Release()

			ran := false
			p.OnCleanup(func() { ran = true })
			Expect(ran).To(BeTrue())
		})

		It("survives a cleanup that panics, still running the rest", func() {
			p := pool.New()
			second := false
			p.OnCleanup(func() { second = true })
			p.OnCleanup(func() { panic("boom") })

			Expect(func() { p.Release() }).NotTo(Panic())
			Expect(second).To(BeTrue())
		})
	})

	Context("Release", func() {
		It("is a safe no-op when called more than once", func() {
			p := pool.New()
			calls := 0
			p.OnCleanup(func() { calls++ })
			p.Release()
			p.Release()
			Expect(calls).To(Equal(1))
		})

		It("does not destroy while more than one holder remains", func() {
			p := pool.New()
			p.Incref()
			destroyed := false
			p.OnCleanup(func() { destroyed = true })

			p.Release()
			Expect(destroyed).To(BeFalse())
			Expect(p.Destroyed()).To(BeFalse())

			p.Release()
			Expect(destroyed).To(BeTrue())
		})
	})

	Context("NewChild", func() {
		It("holds one reference on the parent for its own lifetime", func() {
			parent := pool.New()
			Expect(parent.Count()).To(Equal(int64(1)))

			child := pool.NewChild(parent)
			Expect(parent.Count()).To(Equal(int64(2)))

			parentDestroyed := false
			parent.OnCleanup(func() { parentDestroyed = true })

			child.Release()
			Expect(parentDestroyed).To(BeFalse(), "parent still held by its own creator")

			parent.Release()
			Expect(parentDestroyed).To(BeTrue())
		})

		It("destroys the child's own cleanups independently of the parent's", func() {
			parent := pool.New()
			child := pool.NewChild(parent)

			childDestroyed := false
			child.OnCleanup(func() { childDestroyed = true })

			child.Release()
			Expect(childDestroyed).To(BeTrue())
			Expect(child.Destroyed()).To(BeTrue())
			Expect(parent.Destroyed()).To(BeFalse())

			parent.Release()
		})
	})
})
