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

package platform

import (
	"golang.org/x/sys/unix"
)

// platformInitialize is a no-op on POSIX: there is no equivalent of
// WSAStartup, the BSD sockets API is always available once the kernel
// has booted.
func platformInitialize() error {
	return nil
}

// platformShutdown is a no-op on POSIX for the same reason.
func platformShutdown() error {
	return nil
}

// ClassifyErrno normalizes a POSIX errno (as returned by golang.org/x/sys/unix
// calls) into the shared ErrClass enum.
func ClassifyErrno(err error) ErrClass {
	errno, ok := err.(unix.Errno)
	if !ok {
		return Other
	}

	// EAGAIN and EWOULDBLOCK are the same value on Linux but are not
	// guaranteed to be on every POSIX platform this builds for, so they
	// are compared with separate equality checks instead of a single
	// switch case (which the compiler rejects as a duplicate case when
	// they coincide).
	switch {
	case errno == unix.EAGAIN || errno == unix.EWOULDBLOCK:
		return WouldBlock
	case errno == unix.EINPROGRESS:
		return InProgress
	case errno == unix.EINTR:
		return Interrupted
	case errno == unix.ECONNRESET:
		return ConnReset
	case errno == unix.EMSGSIZE:
		return MsgSize
	default:
		return Other
	}
}
