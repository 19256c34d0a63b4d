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

package vsocket

import (
	"context"
	"net"

	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/status"
)

// HostToAddr resolves host to its address strings under the given
// family (spec.md §4.4's "forward ... DNS lookups over the scratch
// Pool"); p only bounds the call's lifetime context, matching the rest
// of this package's Pool-scoped operations.
func HostToAddr(p *pool.Pool, host string, family Family) ([]string, status.Status) {
	ctx, cancel := context.WithCancel(context.Background())
	p.OnCleanup(cancel)
	defer cancel()

	network := "ip"
	switch family {
	case Inet:
		network = "ip4"
	case Inet6:
		network = "ip6"
	}

	ips, err := net.DefaultResolver.LookupIP(ctx, network, host)
	if err != nil {
		return nil, statusFromNetError(err)
	}
	out := make([]string, len(ips))
	for i, ip := range ips {
		out[i] = ip.String()
	}
	return out, status.Ok()
}

// AddrToHost performs the reverse lookup for ip (spec.md §4.4).
func AddrToHost(p *pool.Pool, ip string) ([]string, status.Status) {
	ctx, cancel := context.WithCancel(context.Background())
	p.OnCleanup(cancel)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(ctx, ip)
	if err != nil {
		return nil, statusFromNetError(err)
	}
	return names, status.Ok()
}
