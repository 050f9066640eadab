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

// Package selector implements a readiness multiplexer: a registry of
// sockets of mixed role, a single blocking wait over all of them, and
// deferred cancellation. It is the one stateful object this module's
// application code drives directly; every factory here both creates a
// Socket and inserts it into the registry in the same call.
package selector

import (
	"net"

	liberr "github.com/bibhas2/velar/errors"
	liblog "github.com/bibhas2/velar/logger"
	"github.com/bibhas2/velar/platform"
	"github.com/bibhas2/velar/protocol"
	"github.com/bibhas2/velar/registry"
	"github.com/bibhas2/velar/socket"
)

// serverBacklog is the fixed listen backlog every stream server uses.
const serverBacklog = 10

// defaultRecvBuf widens SO_RCVBUF on datagram sockets created by this
// selector, a burst-drop mitigation for bursty UDP senders. Best-effort:
// see Socket.SetRecvBuffer.
const defaultRecvBuf = 1 << 20

// Selector owns the active socket registry and the deferred-cancellation
// set. It is not safe for concurrent use: it is meant to be driven from
// a single cooperative thread.
type Selector struct {
	sockets  *registry.Map[platform.Handle, *socket.Socket]
	canceled *registry.Map[platform.Handle, struct{}]
	log      *liblog.Logger
}

// New returns an empty Selector. log may be nil, in which case
// lifecycle and readiness-cycle events are discarded.
func New(log *liblog.Logger) *Selector {
	return &Selector{
		sockets:  registry.New[platform.Handle, *socket.Socket](),
		canceled: registry.New[platform.Handle, struct{}](),
		log:      log,
	}
}

func (s *Selector) register(sock *socket.Socket) *socket.Socket {
	s.sockets.Store(sock.Handle(), sock)
	if s.log != nil {
		s.log.Debug("socket registered", liblog.Fields{"handle": sock.Handle(), "role": sock.Role().String()})
	}
	return sock
}

// Len reports how many sockets are currently in the active registry,
// including ones already marked for cancellation but not yet purged.
func (s *Selector) Len() int { return s.sockets.Len() }

// Sockets returns a snapshot slice of the active registry, in no
// particular order: dispatch/iteration order is unspecified. Safe to
// cancel entries from within a Sockets() walk; cancellation is deferred
// to the next Select call.
func (s *Selector) Sockets() []*socket.Socket {
	out := make([]*socket.Socket, 0, s.sockets.Len())
	s.sockets.Walk(func(_ platform.Handle, v *socket.Socket) bool {
		out = append(out, v)
		return true
	})
	return out
}

// CancelSocket marks sock for removal at the start of the next Select
// call. sock remains in the registry and usable until then.
func (s *Selector) CancelSocket(sock *socket.Socket) {
	s.canceled.Store(sock.Handle(), struct{}{})
}

func (s *Selector) newDualStackSocket(typ socket.SockType, role socket.Role, port, backlog int) (*socket.Socket, error) {
	proto := protocol.NetworkTCP
	if typ == socket.TypeDgram {
		proto = protocol.NetworkUDP
	}
	sock, err := socket.NewFromProtocol(proto, role, s.log)
	if err != nil {
		return nil, err
	}
	if err := sock.SetReuseAddr(); err != nil {
		_ = sock.Close()
		return nil, err
	}
	sock.SetReusePort()
	if err := sock.SetIPv6Only(false); err != nil {
		_ = sock.Close()
		return nil, err
	}
	if err := sock.Bind(net.IPv6zero, port); err != nil {
		_ = sock.Close()
		return nil, err
	}
	if typ == socket.TypeStream {
		if err := sock.Listen(backlog); err != nil {
			_ = sock.Close()
			return nil, err
		}
	}
	return sock, nil
}

// StartServer creates a dual-stack (AF_INET6, IPV6_V6ONLY=0) listening
// stream socket on in6addr_any:port and registers it with
// REPORT_ACCEPTABLE set.
func (s *Selector) StartServer(port int, att any) (*socket.Socket, error) {
	sock, err := s.newDualStackSocket(socket.TypeStream, socket.RoleServer, port, serverBacklog)
	if err != nil {
		return nil, err
	}
	sock.SetAttachment(att)
	sock.SetReportAcceptable(true)
	return s.register(sock), nil
}

// StartClient resolves host:port, creates a stream client against the
// first resolved address and issues a non-blocking connect. The
// returned socket carries IS_CONN_PENDING (or, in the rare
// case a non-blocking connect completes synchronously, IS_CONN_SUCCESS)
// until Select resolves it.
func (s *Selector) StartClient(host string, port int, att any) (*socket.Socket, error) {
	addr, err := socket.Resolve(host, port)
	if err != nil {
		return nil, err
	}
	sock, err := socket.New(addr.Family(), socket.TypeStream, socket.RoleClient, s.log)
	if err != nil {
		return nil, err
	}
	sock.SetAttachment(att)

	pending, err := sock.Connect(addr)
	if err != nil {
		_ = sock.Close()
		return nil, err
	}
	if pending {
		sock.MarkConnPending()
	} else {
		sock.ResolveConnect(true)
	}
	return s.register(sock), nil
}

// StartUDPServer creates a dual-stack datagram socket bound to
// in6addr_any:port, with REPORT_READABLE set.
func (s *Selector) StartUDPServer(port int, att any) (*socket.Socket, error) {
	sock, err := s.newDualStackSocket(socket.TypeDgram, socket.RoleServer, port, 0)
	if err != nil {
		return nil, err
	}
	sock.SetAttachment(att)
	sock.SetReportReadable(true)
	sock.SetRecvBuffer(defaultRecvBuf)
	return s.register(sock), nil
}

// StartUDPClient resolves host:port and wraps a fresh datagram socket
// around that peer address: no bind, no connect, no interest set. The
// returned DatagramClientSocket's Sendto/Recvfrom reuse the stored
// peer.
func (s *Selector) StartUDPClient(host string, port int, att any) (*socket.DatagramClientSocket, error) {
	addr, err := socket.Resolve(host, port)
	if err != nil {
		return nil, err
	}
	raw, err := socket.New(addr.Family(), socket.TypeDgram, socket.RoleClient, s.log)
	if err != nil {
		return nil, err
	}
	raw.SetAttachment(att)
	dc := socket.NewDatagramClient(raw, addr)
	s.register(raw)
	return dc, nil
}

// StartMulticastServer inherits StartUDPServer's dual-stack bind and
// additionally joins group, which may be given in IPv4 or IPv6 textual
// form; the membership option used (IP_ADD_MEMBERSHIP vs
// IPV6_JOIN_GROUP) is chosen by which form parses, independent of the
// socket's own dual-stack family, on interface index 0 / INADDR_ANY. A
// link-local multicast TTL/hop-limit of 1 is set as a best-effort
// option.
func (s *Selector) StartMulticastServer(group string, port int, att any) (*socket.Socket, error) {
	ip := net.ParseIP(group)
	if ip == nil {
		return nil, liberr.Newf(liberr.Bind, "invalid multicast group %q", group)
	}

	sock, err := s.newDualStackSocket(socket.TypeDgram, socket.RoleServer, port, 0)
	if err != nil {
		return nil, err
	}
	if err := sock.JoinMulticast(ip); err != nil {
		_ = sock.Close()
		return nil, err
	}
	sock.SetMulticastTTL(1)
	sock.SetRecvBuffer(defaultRecvBuf)
	sock.SetAttachment(att)
	sock.SetReportReadable(true)
	return s.register(sock), nil
}

// Accept pulls one pending connection off server. server must have been
// reported acceptable by the most recent Select call. The new client
// socket is registered with no interest set; the application enables
// REPORT_READABLE / REPORT_WRITABLE once it decides what to watch for.
func (s *Selector) Accept(server *socket.Socket, att any) (*socket.Socket, error) {
	child, _, err := server.Accept(s.log)
	if err != nil {
		return nil, err
	}
	child.SetAttachment(att)
	return s.register(child), nil
}
