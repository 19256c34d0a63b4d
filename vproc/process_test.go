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

package vproc_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/vproc"
)

var _ = Describe("Process", func() {
	It("runs a shell command and captures its stdout", func() {
		p := vproc.Create("echo hello-from-child").CmdTypeSet(vproc.CmdShell)
		Expect(p.OutSet(vproc.IOFullBlock).IsOk()).To(BeTrue())
		Expect(p.Exec().IsOk()).To(BeTrue())

		out, st := p.OutGet()
		Expect(st.IsOk()).To(BeTrue())

		vals, rst := out.Read(iobuf.Line())
		Expect(rst.IsOk()).To(BeTrue())
		Expect(vals[0].String()).To(Equal("hello-from-child"))

		done, why, code, wst := p.Wait(true)
		Expect(done).To(BeTrue())
		Expect(why).To(Equal(vproc.WhyExit))
		Expect(code).To(Equal(0))
		Expect(wst.IsOk()).To(BeTrue())

		Expect(p.Close().IsOk()).To(BeTrue())
	})

	It("reports a non-zero exit code without error_check", func() {
		p := vproc.Create("exit 7").CmdTypeSet(vproc.CmdShell)
		Expect(p.Exec().IsOk()).To(BeTrue())

		done, why, code, st := p.Wait(true)
		Expect(done).To(BeTrue())
		Expect(why).To(Equal(vproc.WhyExit))
		Expect(code).To(Equal(7))
		Expect(st.IsOk()).To(BeTrue())

		Expect(p.Close().IsOk()).To(BeTrue())
	})

	It("surfaces a non-zero exit as a failing status when error_check is set", func() {
		p := vproc.Create("exit 3").CmdTypeSet(vproc.CmdShell).ErrorCheckSet(true)
		Expect(p.Exec().IsOk()).To(BeTrue())

		_, _, code, st := p.Wait(true)
		Expect(code).To(Equal(3))
		Expect(st.IsOk()).To(BeFalse())

		Expect(p.Close().IsOk()).To(BeTrue())
	})

	It("pipes data from the parent into the child's stdin", func() {
		p := vproc.Create("cat").CmdTypeSet(vproc.CmdShell)
		Expect(p.InSet(vproc.IOFullBlock).IsOk()).To(BeTrue())
		Expect(p.OutSet(vproc.IOFullBlock).IsOk()).To(BeTrue())
		Expect(p.Exec().IsOk()).To(BeTrue())

		in, st := p.InGet()
		Expect(st.IsOk()).To(BeTrue())
		_, wst := in.Write("piped-through\n")
		Expect(wst.IsOk()).To(BeTrue())
		Expect(in.Flush().IsOk()).To(BeTrue())
		Expect(in.Close().IsOk()).To(BeTrue())

		out, _ := p.OutGet()
		vals, rst := out.Read(iobuf.Line())
		Expect(rst.IsOk()).To(BeTrue())
		Expect(vals[0].String()).To(Equal("piped-through"))

		p.Wait(true)
		Expect(p.Close().IsOk()).To(BeTrue())
	})

	It("kills a long-running child before it exits on its own", func() {
		p := vproc.Create("sleep 30").CmdTypeSet(vproc.CmdShell)
		Expect(p.Exec().IsOk()).To(BeTrue())

		Expect(p.Kill(vproc.KillAlways).IsOk()).To(BeTrue())

		done, why, _, _ := p.Wait(true)
		Expect(done).To(BeTrue())
		Expect(why).To(Equal(vproc.WhySignal))

		Expect(p.Close().IsOk()).To(BeTrue())
	})

	It("does not poll done until the non-blocking child actually exits", func() {
		p := vproc.Create("sleep 0.2").CmdTypeSet(vproc.CmdShell)
		Expect(p.Exec().IsOk()).To(BeTrue())

		done, _, _, _ := p.Wait(false)
		Expect(done).To(BeFalse())

		Eventually(func() bool {
			done, _, _, _ := p.Wait(false)
			return done
		}, 2*time.Second, 20*time.Millisecond).Should(BeTrue())

		Expect(p.Close().IsOk()).To(BeTrue())
	})

	It("snapshots resource usage while the child is running", func() {
		p := vproc.Create("sleep 1").CmdTypeSet(vproc.CmdShell)
		Expect(p.Exec().IsOk()).To(BeTrue())

		snap, st := p.Stat()
		Expect(st.IsOk()).To(BeTrue())
		Expect(snap.Pid).To(BeNumerically(">", 0))

		Expect(p.Kill(vproc.KillAlways).IsOk()).To(BeTrue())
		p.Wait(true)
		Expect(p.Close().IsOk()).To(BeTrue())
	})

	It("rejects fork as unsupported", func() {
		_, st := vproc.Fork()
		Expect(st.IsOk()).To(BeFalse())
	})
})
