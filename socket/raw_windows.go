//go:build windows

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

// Winsock half of the socket package's raw syscall layer. See
// raw_unix.go for the POSIX half; both build against the same *Raw
// function set so socket.go and options.go need not know which dialect
// they are driving.
package socket

import (
	"fmt"
	"net"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bibhas2/velar/platform"
)

// x/sys/windows stops short of a few plain Winsock entry points this
// layer needs (accept, ioctlsocket) and their FIONBIO/SO_ERROR
// constants, so those come straight from ws2_32.dll here.
var (
	modws2_32       = windows.NewLazySystemDLL("ws2_32.dll")
	procaccept      = modws2_32.NewProc("accept")
	procioctlsocket = modws2_32.NewProc("ioctlsocket")
)

const (
	sockFIONBIO = 0x8004667e
	sockSOError = 0x1007
)

func sockFamily(fam Family) (int32, error) {
	switch fam {
	case FamilyINET:
		return windows.AF_INET, nil
	case FamilyINET6:
		return windows.AF_INET6, nil
	default:
		return 0, fmt.Errorf("socket: unsupported family %v", fam)
	}
}

func sockType(typ SockType) int32 {
	if typ == TypeDgram {
		return windows.SOCK_DGRAM
	}
	return windows.SOCK_STREAM
}

func toSockaddr(ip net.IP, port int) (windows.Sockaddr, error) {
	if v4 := ip.To4(); v4 != nil {
		sa := &windows.SockaddrInet4{Port: port}
		copy(sa.Addr[:], v4)
		return sa, nil
	}
	v6 := ip.To16()
	if v6 == nil {
		return nil, fmt.Errorf("socket: invalid IP %v", ip)
	}
	sa := &windows.SockaddrInet6{Port: port}
	copy(sa.Addr[:], v6)
	return sa, nil
}

func fromSockaddr(sa windows.Sockaddr) (Address, error) {
	switch s := sa.(type) {
	case *windows.SockaddrInet4:
		ip := make(net.IP, 4)
		copy(ip, s.Addr[:])
		return Address{IP: ip, Port: s.Port}, nil
	case *windows.SockaddrInet6:
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
	fd, err := windows.Socket(int(af), int(sockType(typ)), 0)
	if err != nil {
		return platform.Invalid, err
	}
	return platform.Handle(fd), nil
}

func closeHandle(h platform.Handle) error {
	return windows.Closesocket(windows.Handle(h))
}

func setNonblockingRaw(h platform.Handle) error {
	mode := uint32(1)
	r, _, errno := procioctlsocket.Call(uintptr(h), sockFIONBIO, uintptr(unsafe.Pointer(&mode)))
	if int32(r) != 0 {
		return errno
	}
	return nil
}

func bindRaw(h platform.Handle, ip net.IP, port int) error {
	sa, err := toSockaddr(ip, port)
	if err != nil {
		return err
	}
	return windows.Bind(windows.Handle(h), sa)
}

func listenRaw(h platform.Handle, backlog int) error {
	return windows.Listen(windows.Handle(h), backlog)
}

func connectRaw(h platform.Handle, addr Address) error {
	sa, err := toSockaddr(addr.IP, addr.Port)
	if err != nil {
		return err
	}
	return windows.Connect(windows.Handle(h), sa)
}

func acceptRaw(h platform.Handle) (platform.Handle, Address, error) {
	var rsa windows.RawSockaddrAny
	rsaLen := int32(unsafe.Sizeof(rsa))
	r, _, errno := procaccept.Call(uintptr(h), uintptr(unsafe.Pointer(&rsa)), uintptr(unsafe.Pointer(&rsaLen)))
	nfd := windows.Handle(r)
	if nfd == windows.InvalidHandle {
		return platform.Invalid, Address{}, errno
	}
	if err := setNonblockingRaw(platform.Handle(nfd)); err != nil {
		_ = windows.Closesocket(nfd)
		return platform.Invalid, Address{}, err
	}
	sa, err := rsa.Sockaddr()
	if err != nil {
		return platform.Handle(nfd), Address{}, nil
	}
	addr, _ := fromSockaddr(sa)
	return platform.Handle(nfd), addr, nil
}

func readRaw(h platform.Handle, buf []byte) (int, error) {
	wsabuf := windows.WSABuf{Len: uint32(len(buf)), Buf: &buf[0]}
	var n, flags uint32
	if err := windows.WSARecv(windows.Handle(h), &wsabuf, 1, &n, &flags, nil, nil); err != nil {
		return 0, err
	}
	return int(n), nil
}

func writeRaw(h platform.Handle, buf []byte) (int, error) {
	wsabuf := windows.WSABuf{Len: uint32(len(buf)), Buf: &buf[0]}
	var n uint32
	if err := windows.WSASend(windows.Handle(h), &wsabuf, 1, &n, 0, nil, nil); err != nil {
		return 0, err
	}
	return int(n), nil
}

func recvfromRaw(h platform.Handle, buf []byte) (int, Address, error) {
	n, sa, err := windows.Recvfrom(windows.Handle(h), buf, 0)
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
	if err := windows.Sendto(windows.Handle(h), buf, 0, sa); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func getSockErrorRaw(h platform.Handle) (int, error) {
	return windows.GetsockoptInt(windows.Handle(h), windows.SOL_SOCKET, sockSOError)
}

func setReuseAddrRaw(h platform.Handle) error {
	return windows.SetsockoptInt(windows.Handle(h), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
}

// setReusePortRaw always fails on Windows: Winsock has no SO_REUSEPORT
// equivalent. The caller treats this as best-effort.
func setReusePortRaw(h platform.Handle) error {
	return fmt.Errorf("socket: SO_REUSEPORT not supported on windows")
}

func setIPv6OnlyRaw(h platform.Handle, v bool) error {
	val := 0
	if v {
		val = 1
	}
	return windows.SetsockoptInt(windows.Handle(h), windows.IPPROTO_IPV6, windows.IPV6_V6ONLY, val)
}

func joinMulticastRaw(h platform.Handle, group net.IP) error {
	if v4 := group.To4(); v4 != nil {
		mreq := windows.IPMreq{}
		copy(mreq.Multiaddr[:], v4)
		return windows.SetsockoptIPMreq(windows.Handle(h), windows.IPPROTO_IP, windows.IP_ADD_MEMBERSHIP, &mreq)
	}
	v6 := group.To16()
	if v6 == nil {
		return fmt.Errorf("socket: invalid multicast group %v", group)
	}
	mreq := windows.IPv6Mreq{}
	copy(mreq.Multiaddr[:], v6)
	return windows.SetsockoptIPv6Mreq(windows.Handle(h), windows.IPPROTO_IPV6, windows.IPV6_JOIN_GROUP, &mreq)
}

func setMulticastTTLRaw(h platform.Handle, ttl int) error {
	if err := windows.SetsockoptInt(windows.Handle(h), windows.IPPROTO_IP, windows.IP_MULTICAST_TTL, ttl); err == nil {
		return nil
	}
	return windows.SetsockoptInt(windows.Handle(h), windows.IPPROTO_IPV6, windows.IPV6_MULTICAST_HOPS, ttl)
}

func setRecvBufRaw(h platform.Handle, n int) error {
	return windows.SetsockoptInt(windows.Handle(h), windows.SOL_SOCKET, windows.SO_RCVBUF, n)
}
