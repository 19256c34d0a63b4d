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

package vsocket_test

import (
	"net"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/status"
	"github.com/sabouaram/osrt/vsocket"
)

func listenTCP() (*vsocket.Socket, int) {
	srv := vsocket.Create(vsocket.TCP, vsocket.Unspec)
	Expect(srv.Bind("127.0.0.1", 0).IsOk()).To(BeTrue())
	Expect(srv.Listen(128).IsOk()).To(BeTrue())
	addr, st := srv.AddrGet(vsocket.AddrLocal)
	Expect(st.IsOk()).To(BeTrue())
	_, portStr, err := net.SplitHostPort(addr)
	Expect(err).NotTo(HaveOccurred())
	port, err := strconv.Atoi(portStr)
	Expect(err).NotTo(HaveOccurred())
	return srv, port
}

var _ = Describe("Socket (TCP)", func() {
	It("accepts a client connection and exchanges data", func() {
		srv, port := listenTCP()
		defer srv.Close()

		accepted := make(chan *vsocket.Socket, 1)
		go func() {
			c, st := srv.Accept()
			Expect(st.IsOk()).To(BeTrue())
			accepted <- c
		}()

		cli := vsocket.Create(vsocket.TCP, vsocket.Unspec)
		Expect(cli.Connect("127.0.0.1", port).IsOk()).To(BeTrue())
		defer cli.Close()

		srvConn := <-accepted
		defer srvConn.Close()

		_, st := cli.Write("hello\n")
		Expect(st.IsOk()).To(BeTrue())

		vals, rst := srvConn.Read(iobuf.Line())
		Expect(rst.IsOk()).To(BeTrue())
		Expect(vals[0].String()).To(Equal("hello"))
	})

	It("surfaces the peer closing its write side as a nil line, not a failure", func() {
		srv, port := listenTCP()
		defer srv.Close()

		accepted := make(chan *vsocket.Socket, 1)
		go func() {
			c, _ := srv.Accept()
			accepted <- c
		}()

		cli := vsocket.Create(vsocket.TCP, vsocket.Unspec)
		Expect(cli.Connect("127.0.0.1", port).IsOk()).To(BeTrue())
		srvConn := <-accepted

		Expect(cli.Close().IsOk()).To(BeTrue())

		vals, rst := srvConn.Read(iobuf.Line())
		Expect(rst.IsOk()).To(BeTrue())
		Expect(vals[0].IsNil()).To(BeTrue())
		_ = srvConn.Close()
	})

	It("fails to connect to a closed port", func() {
		_, port := func() (*vsocket.Socket, int) {
			srv, p := listenTCP()
			srv.Close()
			return srv, p
		}()

		cli := vsocket.Create(vsocket.TCP, vsocket.Unspec)
		st := cli.Connect("127.0.0.1", port)
		Expect(st.IsOk()).To(BeFalse())
	})

	It("times out a read with no data within the configured deadline", func() {
		srv, port := listenTCP()
		defer srv.Close()

		accepted := make(chan *vsocket.Socket, 1)
		go func() {
			c, _ := srv.Accept()
			accepted <- c
		}()

		cli := vsocket.Create(vsocket.TCP, vsocket.Unspec)
		Expect(cli.Connect("127.0.0.1", port).IsOk()).To(BeTrue())
		defer cli.Close()
		srvConn := <-accepted
		defer srvConn.Close()

		Expect(cli.TimeoutSet(50 * time.Millisecond).IsOk()).To(BeTrue())
		_, rst := cli.Read(iobuf.Count(1))
		Expect(rst.IsOk()).To(BeFalse())
		Expect(rst.Code()).To(Equal(status.TIMEUP))
	})
})
