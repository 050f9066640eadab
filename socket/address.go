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
	"strconv"

	liberr "github.com/bibhas2/velar/errors"
)

// Address is a resolved IPv4 or IPv6 endpoint. DatagramClientSocket owns
// one, and recvfrom/sendto exchange them with Socket.
type Address struct {
	IP   net.IP
	Port int
}

// IsIPv6 reports whether the address should be placed in an
// AF_INET6 sockaddr.
func (a Address) IsIPv6() bool {
	return a.IP.To4() == nil
}

// Family returns the concrete socket family a address resolved to,
// resolving the Selector factories' FamilyUnspec down to the family the
// OS socket() call itself always needs.
func (a Address) Family() Family {
	if a.IsIPv6() {
		return FamilyINET6
	}
	return FamilyINET
}

func (a Address) String() string {
	return net.JoinHostPort(a.IP.String(), strconv.Itoa(a.Port))
}

// resolveRetries bounds the retry on a transient resolver failure
// (the rough equivalent of a C resolver's EAI_AGAIN); asynchronous
// resolution is out of scope, but this one bounded retry is not.
const resolveRetries = 1

// Resolve looks up host:port and returns the first address the
// resolver offers, preferring the dual-stack-friendly "ip" network so
// either family can come back. It retries once on a transient
// resolver failure before giving up.
func Resolve(host string, port int) (Address, error) {
	var lastErr error
	for attempt := 0; attempt <= resolveRetries; attempt++ {
		ips, err := net.LookupIP(host)
		if err == nil && len(ips) > 0 {
			return Address{IP: ips[0], Port: port}, nil
		}
		lastErr = err
		if !isTemporary(err) {
			break
		}
	}
	return Address{}, liberr.Wrap(liberr.Resolve, "resolve "+host, lastErr)
}

func isTemporary(err error) bool {
	var temp interface{ Temporary() bool }
	if ok := asTemporary(err, &temp); ok {
		return temp.Temporary()
	}
	return false
}

func asTemporary(err error, target *interface{ Temporary() bool }) bool {
	for err != nil {
		if t, ok := err.(interface{ Temporary() bool }); ok {
			*target = t
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
