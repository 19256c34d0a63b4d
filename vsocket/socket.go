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

// Package vsocket implements spec.md §4.4/§4.8: a buffered Socket handle
// over net.Conn/net.Listener, plus the Pollset readiness multiplexer.
package vsocket

import (
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

// Protocol selects the transport spec.md §4.4 names.
type Protocol int

const (
	TCP Protocol = iota
	UDP
)

// Family selects the address family spec.md §4.4 names; Unspec lets the
// standard resolver pick.
type Family int

const (
	Unspec Family = iota
	Inet
	Inet6
)

func (f Family) network(proto Protocol) string {
	base := "tcp"
	if proto == UDP {
		base = "udp"
	}
	switch f {
	case Inet:
		return base + "4"
	case Inet6:
		return base + "6"
	default:
		return base
	}
}

// ShutdownMode selects which half of a connection Shutdown closes.
type ShutdownMode int

const (
	ShutdownRead ShutdownMode = iota
	ShutdownWrite
	ShutdownBoth
)

// Options holds the boolean/integer knobs spec.md §4.4 lists. sndbuf and
// rcvbuf are best-effort: Go's net package exposes them only for TCP via
// *net.TCPConn, so they are silently ignored for other socket kinds.
type Options struct {
	Debug        bool
	KeepAlive    bool
	Linger       bool
	NonBlock     bool
	ReuseAddr    bool
	SndBuf       int
	RcvBuf       int
	Disconnected bool
}

// Socket is the buffered network handle spec.md §4.4 describes: a
// net.Conn (post connect/accept) or net.Listener (post bind+listen)
// wrapped the same way vfile.File wraps an *os.File — a refobj.Ref
// header registered with a standalone Pool, and an iobuf.Reader/Writer
// pair once a connection exists.
type Socket struct {
	ref      *refobj.Ref
	pool     *pool.Pool
	proto    Protocol
	family   Family
	mu       sync.Mutex
	opts     Options
	timeout  time.Duration
	listener net.Listener
	pconn    net.PacketConn
	conn     net.Conn
	r        *iobuf.Reader
	w        *iobuf.Writer
	closed   bool
}

// connBackend adapts a net.Conn to iobuf.Backend, honoring the socket's
// configured read/write deadline on every call (spec.md §5: "blocking
// calls respect per-object timeouts").
type connBackend struct {
	s *Socket
}

func (b connBackend) BackendRead(dst []byte) (int, status.Status) {
	b.s.applyDeadline()
	n, err := b.s.conn.Read(dst)
	return n, statusFromNetError(err)
}

func (b connBackend) BackendWrite(src []byte) (int, status.Status) {
	b.s.applyDeadline()
	n, err := b.s.conn.Write(src)
	return n, statusFromNetError(err)
}

func (b connBackend) BackendFlush() status.Status {
	return status.Ok()
}

func (s *Socket) applyDeadline() {
	if s.timeout <= 0 {
		_ = s.conn.SetDeadline(time.Time{})
		return
	}
	_ = s.conn.SetDeadline(time.Now().Add(s.timeout))
}

// statusFromNetError folds net.Error timeouts and the common dial/accept
// failures onto spec.md §7's closed code set.
func statusFromNetError(err error) status.Status {
	if err == nil {
		return status.Ok()
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return status.New(status.TIMEUP, err.Error())
	}
	if errors.Is(err, net.ErrClosed) {
		return status.New(status.EBADF, err.Error())
	}
	var se *net.OpError
	if errors.As(err, &se) {
		switch {
		case strings.Contains(se.Err.Error(), "connection refused"):
			return status.New(status.ECONNREFUSED, err.Error())
		case strings.Contains(se.Err.Error(), "connection reset"):
			return status.New(status.ECONNRESET, err.Error())
		case strings.Contains(se.Err.Error(), "network is unreachable"):
			return status.New(status.ENETUNREACH, err.Error())
		case strings.Contains(se.Err.Error(), "no route to host"):
			return status.New(status.EHOSTUNREACH, err.Error())
		}
	}
	if errors.Is(err, io.EOF) {
		return status.New(status.EOF, "")
	}
	return status.New(status.EINVAL, err.Error())
}

// Create allocates a Socket bound to a new standalone Pool (spec.md
// §4.4's socket_create), not yet bound/connected.
func Create(proto Protocol, family Family) *Socket {
	p := pool.New()
	s := &Socket{pool: p, proto: proto, family: family}
	s.ref = refobj.New(false, func() { _ = s.closeLocked() })
	p.OnCleanup(s.ref.Release)
	return s
}

func joinHostPort(host string, port int) string {
	if host == "*" {
		host = ""
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Bind prepares the socket to listen at host:port ('*' for the any
// address). For UDP this opens the PacketConn directly since datagram
// sockets have no separate listen step.
func (s *Socket) Bind(host string, port int) status.Status {
	addr := joinHostPort(host, port)
	if s.proto == UDP {
		pc, err := net.ListenPacket(s.family.network(UDP), addr)
		if err != nil {
			return statusFromNetError(err)
		}
		s.pconn = pc
		return status.Ok()
	}
	l, err := net.Listen(s.family.network(TCP), addr)
	if err != nil {
		return statusFromNetError(err)
	}
	s.listener = l
	return status.Ok()
}

// Listen is a no-op for TCP (net.Listen already puts the socket in the
// listening state); backlog is accepted for API fidelity with spec.md
// §4.4 but Go's runtime picks its own backlog.
func (s *Socket) Listen(backlog int) status.Status {
	if s.listener == nil {
		return status.New(status.EINVAL, "socket is not bound")
	}
	return status.Ok()
}

// Accept blocks until a client connects, returning a new Socket that
// inherits this socket's protocol/family (spec.md §4.4).
func (s *Socket) Accept() (*Socket, status.Status) {
	if s.listener == nil {
		return nil, status.New(status.EINVAL, "socket is not listening")
	}
	c, err := s.listener.Accept()
	if err != nil {
		return nil, statusFromNetError(err)
	}
	child := Create(s.proto, s.family)
	child.attach(c)
	return child, status.Ok()
}

func (s *Socket) attach(c net.Conn) {
	s.conn = c
	s.r = iobuf.NewReader(connBackend{s}, false)
	s.w = iobuf.NewWriter(connBackend{s}, false)
}

// Connect dials host:port (spec.md §4.4).
func (s *Socket) Connect(host string, port int) status.Status {
	network := s.family.network(s.proto)
	d := net.Dialer{Timeout: s.timeout}
	c, err := d.Dial(network, joinHostPort(host, port))
	if err != nil {
		return statusFromNetError(err)
	}
	s.attach(c)
	return status.Ok()
}

// Read evaluates formats against the socket's buffered input (spec.md
// §4.2's format table, shared with File).
func (s *Socket) Read(formats ...iobuf.Format) ([]iobuf.Value, status.Status) {
	if s.r == nil {
		return nil, status.New(status.ENOTSOCK, "socket is not connected")
	}
	return s.r.Read(formats...)
}

// Lines reads successive '*l' records until EOF, returning each as a
// string — a convenience spec.md §4.4 names directly ("lines()").
func (s *Socket) Lines() ([]string, status.Status) {
	var out []string
	for {
		vals, st := s.Read(iobuf.Line())
		if !st.IsOk() {
			return out, st
		}
		if vals[0].IsNil() {
			return out, status.Ok()
		}
		out = append(out, vals[0].String())
	}
}

// Write stages strs and flushes immediately: spec.md §4.4's "soft
// flush" — Socket has no useful backend buffering of its own, so every
// Write drains to the network before returning.
func (s *Socket) Write(strs ...string) (int, status.Status) {
	if s.w == nil {
		return 0, status.New(status.ENOTSOCK, "socket is not connected")
	}
	n, st := s.w.Write(strs...)
	if !st.IsOk() {
		return n, st
	}
	return n, s.w.Flush()
}

// TimeoutGet returns the socket's current read/write timeout, or 0 if
// none is set (blocking indefinitely).
func (s *Socket) TimeoutGet() time.Duration { return s.timeout }

// TimeoutSet sets the socket's read/write timeout.
func (s *Socket) TimeoutSet(d time.Duration) status.Status {
	s.timeout = d
	return status.Ok()
}

// OptGet returns the socket's current Options snapshot.
func (s *Socket) OptGet() Options { return s.opts }

// OptSet applies opts to the socket, pushing the ones Go's net package
// can actually express (keep-alive, linger, buffer sizes on TCP) down
// to the underlying connection.
func (s *Socket) OptSet(opts Options) status.Status {
	s.opts = opts
	tc, ok := s.conn.(*net.TCPConn)
	if !ok {
		return status.Ok()
	}
	if err := tc.SetKeepAlive(opts.KeepAlive); err != nil {
		return statusFromNetError(err)
	}
	if opts.Linger {
		if err := tc.SetLinger(0); err != nil {
			return statusFromNetError(err)
		}
	}
	if opts.SndBuf > 0 {
		_ = tc.SetWriteBuffer(opts.SndBuf)
	}
	if opts.RcvBuf > 0 {
		_ = tc.SetReadBuffer(opts.RcvBuf)
	}
	return status.Ok()
}

// AddrWhich selects which endpoint AddrGet reports.
type AddrWhich int

const (
	AddrLocal AddrWhich = iota
	AddrRemote
)

// AddrGet returns the local or remote address string of a connected or
// listening socket.
func (s *Socket) AddrGet(which AddrWhich) (string, status.Status) {
	switch {
	case s.conn != nil:
		if which == AddrLocal {
			return s.conn.LocalAddr().String(), status.Ok()
		}
		return s.conn.RemoteAddr().String(), status.Ok()
	case s.listener != nil && which == AddrLocal:
		return s.listener.Addr().String(), status.Ok()
	case s.pconn != nil && which == AddrLocal:
		return s.pconn.LocalAddr().String(), status.Ok()
	default:
		return "", status.New(status.EINVAL, "no address available")
	}
}

// Shutdown closes one or both halves of a connected TCP socket.
func (s *Socket) Shutdown(mode ShutdownMode) status.Status {
	tc, ok := s.conn.(*net.TCPConn)
	if !ok {
		return status.New(status.ENOTIMPL, "shutdown requires a connected TCP socket")
	}
	var err error
	switch mode {
	case ShutdownRead:
		err = tc.CloseRead()
	case ShutdownWrite:
		err = tc.CloseWrite()
	default:
		err = tc.Close()
	}
	return statusFromNetError(err)
}

// Close releases the socket's OS resources. Safe to call more than once.
func (s *Socket) Close() status.Status {
	s.ref.Release()
	return status.Ok()
}

func (s *Socket) closeLocked() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if s.conn != nil {
		err = s.conn.Close()
	}
	if s.listener != nil {
		if e := s.listener.Close(); e != nil {
			err = e
		}
	}
	if s.pconn != nil {
		if e := s.pconn.Close(); e != nil {
			err = e
		}
	}
	return err
}

// rawConn exposes the underlying net.Conn for Pollset's readiness
// checks; unexported since it escapes the Backend abstraction on purpose.
func (s *Socket) rawConn() net.Conn { return s.conn }

// syscallConn exposes whichever of conn/listener/pconn supports raw fd
// access, for Pollset's OS-level readiness poll.
func (s *Socket) syscallConn() (syscall.RawConn, bool) {
	switch {
	case s.conn != nil:
		if sc, ok := s.conn.(syscall.Conn); ok {
			if rc, err := sc.SyscallConn(); err == nil {
				return rc, true
			}
		}
	case s.listener != nil:
		if sc, ok := s.listener.(syscall.Conn); ok {
			if rc, err := sc.SyscallConn(); err == nil {
				return rc, true
			}
		}
	case s.pconn != nil:
		if sc, ok := s.pconn.(syscall.Conn); ok {
			if rc, err := sc.SyscallConn(); err == nil {
				return rc, true
			}
		}
	}
	return nil, false
}
