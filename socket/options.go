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

package socket

import (
	"net"

	liberr "github.com/bibhas2/velar/errors"
	liblog "github.com/bibhas2/velar/logger"
	"github.com/bibhas2/velar/platform"
)

// Family is this core's own small enum for the address families it
// drives a socket with; the raw AF_* values live only in the
// platform-specific files.
type Family uint8

const (
	FamilyUnspec Family = iota
	FamilyINET
	FamilyINET6
)

// SockType is this core's own enum for SOCK_STREAM/SOCK_DGRAM.
type SockType uint8

const (
	TypeStream SockType = iota
	TypeDgram
)

// Bind binds the socket to ip:port. An empty/unspecified ip binds to
// the wildcard address for the socket's family.
func (s *Socket) Bind(ip net.IP, port int) error {
	if err := bindRaw(s.handle, ip, port); err != nil {
		return liberr.Wrap(liberr.Bind, "bind", err)
	}
	return nil
}

// Listen marks a bound stream socket as a listening server.
func (s *Socket) Listen(backlog int) error {
	if err := listenRaw(s.handle, backlog); err != nil {
		return liberr.Wrap(liberr.Listen, "listen", err)
	}
	return nil
}

// Connect issues a non-blocking connect. pending is true when the
// connect is still in flight (the common case for a non-blocking
// socket); the caller must then watch for write/exception readiness
// via the Selector before checking ConnError.
func (s *Socket) Connect(addr Address) (pending bool, err error) {
	ioErr := connectRaw(s.handle, addr)
	if ioErr == nil {
		return false, nil
	}
	switch platform.ClassifyErrno(ioErr) {
	case platform.InProgress, platform.WouldBlock:
		return true, nil
	default:
		return false, liberr.Wrap(liberr.Connect, "connect", ioErr)
	}
}

// ConnError queries SO_ERROR on the POSIX dialect to resolve a pending
// connect once the socket appears in the write set. failed reports
// whether the connect ultimately did not succeed.
func (s *Socket) ConnError() (failed bool, err error) {
	code, ioErr := getSockErrorRaw(s.handle)
	if ioErr != nil {
		return true, liberr.Wrap(liberr.Connect, "getsockopt SO_ERROR", ioErr)
	}
	return code != 0, nil
}

// SetReuseAddr sets SO_REUSEADDR, a mandatory option: failures
// propagate.
func (s *Socket) SetReuseAddr() error {
	if err := setReuseAddrRaw(s.handle); err != nil {
		return liberr.Wrap(liberr.SetOption, "SO_REUSEADDR", err)
	}
	return nil
}

// SetReusePort sets SO_REUSEPORT where the platform supports it
// (POSIX only; a no-op on Windows, which has no equivalent). A failure
// here is best-effort and logged rather than propagated.
func (s *Socket) SetReusePort() error {
	if err := setReusePortRaw(s.handle); err != nil {
		if s.log != nil {
			s.log.Warning("SO_REUSEPORT unavailable", nil)
		}
	}
	return nil
}

// SetIPv6Only toggles IPV6_V6ONLY. Mandatory option: failures
// propagate.
func (s *Socket) SetIPv6Only(v bool) error {
	if err := setIPv6OnlyRaw(s.handle, v); err != nil {
		return liberr.Wrap(liberr.SetOption, "IPV6_V6ONLY", err)
	}
	return nil
}

// JoinMulticast joins group via IP_ADD_MEMBERSHIP/IPV6_JOIN_GROUP on
// INADDR_ANY / interface index 0. Mandatory option: failures propagate.
func (s *Socket) JoinMulticast(group net.IP) error {
	if err := joinMulticastRaw(s.handle, group); err != nil {
		return liberr.Wrap(liberr.SetOption, "join multicast group", err)
	}
	return nil
}

// SetMulticastTTL caps how far multicast traffic from this socket
// travels (IP_MULTICAST_TTL / IPV6_MULTICAST_HOPS). Best-effort: a
// failure is logged, not propagated.
func (s *Socket) SetMulticastTTL(ttl int) {
	if err := setMulticastTTLRaw(s.handle, ttl); err != nil && s.log != nil {
		s.log.Warning("multicast TTL unavailable", liblog.Fields{"ttl": ttl})
	}
}

// SetRecvBuffer widens SO_RCVBUF on a datagram socket to reduce drops
// under burst. Best-effort: a failure is logged, not propagated.
func (s *Socket) SetRecvBuffer(n int) {
	if err := setRecvBufRaw(s.handle, n); err != nil && s.log != nil {
		s.log.Warning("SO_RCVBUF hint unavailable", liblog.Fields{"bytes": n})
	}
}
