//go:build !windows

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

// POSIX half of the socket package's raw syscall layer: every exported
// Socket method in socket.go/options.go bottoms out in one of the
// unexported *Raw functions here, built against golang.org/x/sys/unix the
// same way the Winsock half (raw_windows.go) is built against
// golang.org/x/sys/windows, keeping the dialect split out of the shared
// Socket type entirely.
package socket

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/bibhas2/velar/platform"
)

func sockFamily(fam Family) (int, error) {
	switch fam {
	case FamilyINET:
		return unix.AF_INET, nil
	case FamilyINET6:
		return unix.AF_INET6, nil
	default:
		return 0, fmt.Errorf("socket: unsupported family %v", fam)
	}
}

func sockType(typ SockType) int {
	if typ == TypeDgram {
		return unix.SOCK_DGRAM
	}
	return unix.SOCK_STREAM
}

func toSockaddr(ip net.IP, port int) (unix.Sockaddr, error) {
	if v4 := ip.To4(); v4 != nil {
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], v4)
		return sa, nil
	}
	v6 := ip.To16()
	if v6 == nil {
		return nil, fmt.Errorf("socket: invalid IP %v", ip)
	}
	sa := &unix.SockaddrInet6{Port: port}
	copy(sa.Addr[:], v6)
	return sa, nil
}

func fromSockaddr(sa unix.Sockaddr) (Address, error) {
	switch s := sa.(type) {
	case *unix.SockaddrInet4:
		ip := make(net.IP, 4)
		copy(ip, s.Addr[:])
		return Address{IP: ip, Port: s.Port}, nil
	case *unix.SockaddrInet6:
		ip := make(net.IP, 16)
		copy(ip, s.Addr[:])
		return Address{IP: ip, Port: s.Port}, nil
	default:
		return Address{}, fmt.Errorf("socket: unsupported sockaddr %T", sa)
	}
}

func newRawSocket(fam Family, typ SockType) (platform.Handle, error) {
	af, err := sockFamily(fam)
	if err != nil {
		return platform.Invalid, err
	}
	fd, err := unix.Socket(af, sockType(typ), 0)
	if err != nil {
		return platform.Invalid, err
	}
	return platform.Handle(fd), nil
}

func closeHandle(h platform.Handle) error {
	return unix.Close(int(h))
}

func setNonblockingRaw(h platform.Handle) error {
	return unix.SetNonblock(int(h), true)
}

func bindRaw(h platform.Handle, ip net.IP, port int) error {
	sa, err := toSockaddr(ip, port)
	if err != nil {
		return err
	}
	return unix.Bind(int(h), sa)
}

func listenRaw(h platform.Handle, backlog int) error {
	return unix.Listen(int(h), backlog)
}

func connectRaw(h platform.Handle, addr Address) error {
	sa, err := toSockaddr(addr.IP, addr.Port)
	if err != nil {
		return err
	}
	return unix.Connect(int(h), sa)
}

func acceptRaw(h platform.Handle) (platform.Handle, Address, error) {
	nfd, sa, err := unix.Accept(int(h))
	if err != nil {
		return platform.Invalid, Address{}, err
	}
	if err := unix.SetNonblock(nfd, true); err != nil {
		_ = unix.Close(nfd)
		return platform.Invalid, Address{}, err
	}
	addr, _ := fromSockaddr(sa)
	return platform.Handle(nfd), addr, nil
}

func readRaw(h platform.Handle, buf []byte) (int, error) {
	return unix.Read(int(h), buf)
}

func writeRaw(h platform.Handle, buf []byte) (int, error) {
	return unix.Write(int(h), buf)
}

func recvfromRaw(h platform.Handle, buf []byte) (int, Address, error) {
	n, sa, err := unix.Recvfrom(int(h), buf, 0)
	if err != nil {
		return 0, Address{}, err
	}
	addr, _ := fromSockaddr(sa)
	return n, addr, nil
}

func sendtoRaw(h platform.Handle, buf []byte, to Address) (int, error) {
	sa, err := toSockaddr(to.IP, to.Port)
	if err != nil {
		return 0, err
	}
	if err := unix.Sendto(int(h), buf, 0, sa); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func getSockErrorRaw(h platform.Handle) (int, error) {
	return unix.GetsockoptInt(int(h), unix.SOL_SOCKET, unix.SO_ERROR)
}

func setReuseAddrRaw(h platform.Handle) error {
	return unix.SetsockoptInt(int(h), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
}

func setReusePortRaw(h platform.Handle) error {
	return unix.SetsockoptInt(int(h), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
}

func setIPv6OnlyRaw(h platform.Handle, v bool) error {
	val := 0
	if v {
		val = 1
	}
	return unix.SetsockoptInt(int(h), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, val)
}

func joinMulticastRaw(h platform.Handle, group net.IP) error {
	if v4 := group.To4(); v4 != nil {
		mreq := &unix.IPMreq{}
		copy(mreq.Multiaddr[:], v4)
		return unix.SetsockoptIPMreq(int(h), unix.IPPROTO_IP, unix.IP_ADD_MEMBERSHIP, mreq)
	}
	v6 := group.To16()
	if v6 == nil {
		return fmt.Errorf("socket: invalid multicast group %v", group)
	}
	mreq := &unix.IPv6Mreq{}
	copy(mreq.Multiaddr[:], v6)
	return unix.SetsockoptIPv6Mreq(int(h), unix.IPPROTO_IPV6, unix.IPV6_JOIN_GROUP, mreq)
}

func setMulticastTTLRaw(h platform.Handle, ttl int) error {
	if err := unix.SetsockoptInt(int(h), unix.IPPROTO_IP, unix.IP_MULTICAST_TTL, ttl); err == nil {
		return nil
	}
	return unix.SetsockoptInt(int(h), unix.IPPROTO_IPV6, unix.IPV6_MULTICAST_HOPS, ttl)
}

func setRecvBufRaw(h platform.Handle, n int) error {
	return unix.SetsockoptInt(int(h), unix.SOL_SOCKET, unix.SO_RCVBUF, n)
}
