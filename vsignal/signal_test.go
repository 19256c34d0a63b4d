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

package vsignal_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/vsignal"
)

var _ = Describe("Signal", func() {
	AfterEach(func() {
		Expect(vsignal.Signal("SIGUSR1", nil).IsOk()).To(BeTrue())
		Expect(vsignal.Unblock("SIGUSR1").IsOk()).To(BeTrue())
	})

	It("rejects an unknown signal name", func() {
		Expect(vsignal.Signal("SIGNOTREAL", func(string) {}).IsOk()).To(BeFalse())
	})

	It("lists platform-supported signal names with numeric codes", func() {
		names := vsignal.Names()
		Expect(names).To(HaveKey("SIGTERM"))
		Expect(names["SIGTERM"]).To(BeNumerically(">", 0))
	})

	It("defers handler execution to Pump rather than running inline on Raise", func() {
		var fired bool
		Expect(vsignal.Signal("SIGUSR1", func(name string) {
			fired = true
			Expect(name).To(Equal("SIGUSR1"))
		}).IsOk()).To(BeTrue())

		Expect(vsignal.Raise("SIGUSR1").IsOk()).To(BeTrue())

		// Raise only queues delivery; pump is what actually runs the
		// handler, simulating the VM's bytecode-boundary safe point.
		Eventually(func() bool {
			vsignal.Pump()
			return fired
		}, 2*time.Second, 10*time.Millisecond).Should(BeTrue())
	})

	It("suppresses delivery while blocked", func() {
		var fired bool
		Expect(vsignal.Signal("SIGUSR1", func(string) { fired = true }).IsOk()).To(BeTrue())
		Expect(vsignal.Block("SIGUSR1").IsOk()).To(BeTrue())

		Expect(vsignal.Raise("SIGUSR1").IsOk()).To(BeTrue())
		time.Sleep(50 * time.Millisecond)
		vsignal.Pump()
		Expect(fired).To(BeFalse())
	})
})
