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

package platform

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// platformInitialize starts Winsock. Failure here is fatal to every
// subsequent call in this module.
func platformInitialize() error {
	var data windows.WSAData
	return windows.WSAStartup(uint32(0x0202), &data) // MAKEWORD(2, 2)
}

// platformShutdown tears down Winsock.
func platformShutdown() error {
	return windows.WSACleanup()
}

// ClassifyErrno normalizes a Winsock last-error code into the shared
// ErrClass enum. The WSAE* constants in x/sys/windows are plain
// syscall.Errno values, so that is the type asserted on.
func ClassifyErrno(err error) ErrClass {
	errno, ok := err.(syscall.Errno)
	if !ok {
		return Other
	}

	switch {
	case errno == windows.WSAEWOULDBLOCK:
		return WouldBlock
	case errno == windows.WSAEINPROGRESS:
		// Winsock reports both "signal interrupted" and a certain
		// pending-connect condition as WSAEINPROGRESS; the selector's
		// connect-pending bookkeeping (not errno classification) is
		// what actually distinguishes a pending connect, so this maps
		// to Interrupted here and is retried like any other
		// interruption.
		return Interrupted
	case errno == windows.WSAEINTR:
		return Interrupted
	case errno == windows.WSAECONNRESET:
		return ConnReset
	case errno == windows.WSAEMSGSIZE:
		return MsgSize
	default:
		return Other
	}
}
