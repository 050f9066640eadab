/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package protocol enumerates the network protocols this core drives a
// socket with. It is a deliberately small subset of a general-purpose
// network-protocol enum: stream and datagram protocols only, each in a
// dual-stack and two single-family forms. The Selector's factories use
// the dual-stack NetworkTCP and NetworkUDP.
package protocol

import "strings"

// NetworkProtocol identifies a socket family/type pair.
type NetworkProtocol uint8

const (
	// NetworkTCP is a dual-stack stream socket: socket.NewFromProtocol
	// opens it as AF_INET6, and the Selector's StartServer clears
	// IPV6_V6ONLY on it so IPv4-mapped peers are accepted too.
	NetworkTCP NetworkProtocol = iota + 1
	// NetworkTCP4 pins a stream socket to IPv4.
	NetworkTCP4
	// NetworkTCP6 pins a stream socket to IPv6.
	NetworkTCP6
	// NetworkUDP is a dual-stack datagram socket, opened as AF_INET6 the
	// same way; used by StartUDPServer and StartMulticastServer.
	NetworkUDP
	// NetworkUDP4 pins a datagram socket to IPv4.
	NetworkUDP4
	// NetworkUDP6 pins a datagram socket to IPv6.
	NetworkUDP6
)

var names = map[NetworkProtocol]string{
	NetworkTCP:  "tcp",
	NetworkTCP4: "tcp4",
	NetworkTCP6: "tcp6",
	NetworkUDP:  "udp",
	NetworkUDP4: "udp4",
	NetworkUDP6: "udp6",
}

var byName = func() map[string]NetworkProtocol {
	m := make(map[string]NetworkProtocol, len(names))
	for k, v := range names {
		m[v] = k
	}
	return m
}()

// String returns the lowercase network name as accepted by net.Dial /
// net.Listen ("tcp", "tcp4", "tcp6", "udp", "udp4", "udp6").
func (p NetworkProtocol) String() string {
	if s, ok := names[p]; ok {
		return s
	}
	return ""
}

// IsStream reports whether the protocol is connection-oriented (TCP).
func (p NetworkProtocol) IsStream() bool {
	return p == NetworkTCP || p == NetworkTCP4 || p == NetworkTCP6
}

// IsDatagram reports whether the protocol is connectionless (UDP).
func (p NetworkProtocol) IsDatagram() bool {
	return p == NetworkUDP || p == NetworkUDP4 || p == NetworkUDP6
}

// IsDualStack reports whether the protocol lets the OS choose between
// IPv4 and IPv6 rather than pinning one family.
func (p NetworkProtocol) IsDualStack() bool {
	return p == NetworkTCP || p == NetworkUDP
}

// Valid reports whether p is one of the defined constants.
func (p NetworkProtocol) Valid() bool {
	_, ok := names[p]
	return ok
}

// Parse converts a case-insensitive protocol name into a NetworkProtocol.
// It returns the zero value (invalid) for unrecognized names.
func Parse(s string) NetworkProtocol {
	return byName[strings.ToLower(strings.TrimSpace(s))]
}
