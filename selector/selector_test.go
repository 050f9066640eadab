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

package selector_test

import (
	"time"

	"github.com/bibhas2/velar/buffer"
	"github.com/bibhas2/velar/selector"
	"github.com/bibhas2/velar/socket"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// pumpUntil repeatedly calls Select, at most attempts times, until pred
// reports true. Mirrors the retry loops an event-driven application
// would run around a non-blocking readiness cycle.
func pumpUntil(sel *selector.Selector, attempts int, pred func() bool) {
	for i := 0; i < attempts; i++ {
		if pred() {
			return
		}
		_, _ = sel.Select(1)
		time.Sleep(2 * time.Millisecond)
	}
}

var _ = Describe("Deferred cancellation", func() {
	It("keeps a cancelled socket live until the next Select call", func() {
		sel := selector.New(nil)
		sock, err := sel.StartUDPServer(47601, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(sel.Len()).To(Equal(1))

		sel.CancelSocket(sock)
		Expect(sel.Len()).To(Equal(1), "cancellation is deferred, not immediate")

		_, err = sel.Select(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(sel.Len()).To(Equal(0), "the socket is purged on the next Select call")
	})

	It("empties the cancellation set after every Select call", func() {
		sel := selector.New(nil)
		a, err := sel.StartUDPServer(47602, nil)
		Expect(err).NotTo(HaveOccurred())
		b, err := sel.StartUDPServer(47603, nil)
		Expect(err).NotTo(HaveOccurred())

		sel.CancelSocket(a)
		_, err = sel.Select(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(sel.Len()).To(Equal(1))

		sel.CancelSocket(b)
		_, err = sel.Select(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(sel.Len()).To(Equal(0))
	})
})

var _ = Describe("Readiness state invariants", func() {
	It("never reports IS_READABLE on a server socket waiting for IS_ACCEPTABLE", func() {
		sel := selector.New(nil)
		srv, err := sel.StartServer(47610, nil)
		Expect(err).NotTo(HaveOccurred())

		_, _ = sel.Select(1)

		Expect(srv.IsReadable()).To(BeFalse())
	})
})

var _ = Describe("Loopback TCP echo", func() {
	It("carries a client-to-server message over a selector-driven accept", func() {
		const port = 47620

		sel := selector.New(nil)
		srv, err := sel.StartServer(port, "listener")
		Expect(err).NotTo(HaveOccurred())

		cli, err := sel.StartClient("127.0.0.1", port, "client")
		Expect(err).NotTo(HaveOccurred())
		Expect(cli.IsConnPending() || cli.IsConnSuccess()).To(BeTrue())

		var accepted *socket.Socket
		pumpUntil(sel, 200, func() bool {
			if srv.IsAcceptable() {
				var acceptErr error
				accepted, acceptErr = sel.Accept(srv, "peer")
				return acceptErr == nil
			}
			return false
		})
		Expect(accepted).NotTo(BeNil(), "server never became acceptable")

		pumpUntil(sel, 200, func() bool { return cli.IsConnSuccess() || cli.IsConnFailed() })
		Expect(cli.IsConnFailed()).To(BeFalse())
		Expect(cli.IsConnSuccess()).To(BeTrue())

		out, err := buffer.Heap(5)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.PutString("hello")).To(Succeed())
		out.Flip()

		_, err = cli.Write(out)
		Expect(err).NotTo(HaveOccurred())

		accepted.SetReportReadable(true)
		in, err := buffer.Heap(5)
		Expect(err).NotTo(HaveOccurred())

		pumpUntil(sel, 200, func() bool {
			if !accepted.IsReadable() {
				return false
			}
			n, readErr := accepted.Read(in)
			return readErr == nil && n == 5
		})

		in.Flip()
		got, err := in.GetString(5)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal("hello"))
	})
})

var _ = Describe("UDP request/reply", func() {
	It("delivers a datagram from a UDP client to the server", func() {
		const port = 47630

		sel := selector.New(nil)
		srv, err := sel.StartUDPServer(port, "udp-server")
		Expect(err).NotTo(HaveOccurred())

		cli, err := sel.StartUDPClient("127.0.0.1", port, "udp-client")
		Expect(err).NotTo(HaveOccurred())
		Expect(cli.Peer().Port).To(Equal(port))

		out, err := buffer.Heap(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.PutString("PING")).To(Succeed())
		out.Flip()
		_, err = cli.Sendto(out)
		Expect(err).NotTo(HaveOccurred())

		in, err := buffer.Heap(4)
		Expect(err).NotTo(HaveOccurred())

		pumpUntil(sel, 200, func() bool {
			if !srv.IsReadable() {
				return false
			}
			n, _, readErr := srv.Recvfrom(in)
			return readErr == nil && n == 4
		})

		in.Flip()
		got, err := in.GetString(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal("PING"))
	})

	It("truncates a datagram larger than the receiving buffer", func() {
		const port = 47631

		sel := selector.New(nil)
		srv, err := sel.StartUDPServer(port, nil)
		Expect(err).NotTo(HaveOccurred())

		cli, err := sel.StartUDPClient("127.0.0.1", port, nil)
		Expect(err).NotTo(HaveOccurred())

		out, err := buffer.Heap(8)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.PutString("OVERSIZE")).To(Succeed())
		out.Flip()
		_, err = cli.Sendto(out)
		Expect(err).NotTo(HaveOccurred())

		small, err := buffer.Heap(3)
		Expect(err).NotTo(HaveOccurred())

		var n int
		pumpUntil(sel, 200, func() bool {
			if !srv.IsReadable() {
				return false
			}
			var readErr error
			n, _, readErr = srv.Recvfrom(small)
			return readErr == nil && n > 0
		})

		Expect(n).To(Equal(3), "a datagram recv fills at most the destination's remaining capacity")
	})
})

var _ = Describe("Dual-stack server", func() {
	It("binds a stream server to in6addr_any and accepts an IPv4-mapped loopback connection", func() {
		const port = 47640

		sel := selector.New(nil)
		srv, err := sel.StartServer(port, nil)
		Expect(err).NotTo(HaveOccurred())

		cli, err := sel.StartClient("127.0.0.1", port, nil)
		Expect(err).NotTo(HaveOccurred())

		var accepted *socket.Socket
		pumpUntil(sel, 200, func() bool {
			if srv.IsAcceptable() {
				var acceptErr error
				accepted, acceptErr = sel.Accept(srv, nil)
				return acceptErr == nil
			}
			return false
		})
		Expect(accepted).NotTo(BeNil())

		pumpUntil(sel, 200, func() bool { return cli.IsConnSuccess() || cli.IsConnFailed() })
		Expect(cli.IsConnSuccess()).To(BeTrue())
	})
})

var _ = Describe("Multicast server", func() {
	It("joins an IPv4 multicast group without error", func() {
		sel := selector.New(nil)
		sock, err := sel.StartMulticastServer("239.1.2.3", 47650, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(sock.ReportReadable()).To(BeTrue())
	})

	It("rejects a malformed multicast group address", func() {
		sel := selector.New(nil)
		_, err := sel.StartMulticastServer("not-an-ip", 47651, nil)
		Expect(err).To(HaveOccurred())
	})
})
