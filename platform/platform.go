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

// Package platform is the shim between the two dominant BSD-sockets
// dialects (Winsock and POSIX): a uniform socket handle type, one-shot
// process-wide network-stack startup/teardown, and errno-to-error-class
// normalization. The buffer, socket and selector packages share this
// handle type and errno classification; their raw system calls are made
// through golang.org/x/sys in their own _unix.go / _windows.go files.
package platform

import (
	"sync"

	liberr "github.com/bibhas2/velar/errors"
)

// Handle is a raw OS socket handle: a POSIX file descriptor on Unix, a
// SOCKET on Windows. Both fit in a uintptr, and both dialects use an
// all-bits-set sentinel for "invalid" (-1 as an fd, INVALID_SOCKET on
// Windows), so a single Invalid value works on either platform.
type Handle uintptr

// Invalid is the sentinel returned by a failed socket()/accept() call.
const Invalid Handle = ^Handle(0)

// Valid reports whether h is not the Invalid sentinel.
func (h Handle) Valid() bool { return h != Invalid }

// ErrClass is the normalized last-error classification shared by both
// socket dialects.
type ErrClass uint8

const (
	// Other is any error not otherwise classified.
	Other ErrClass = iota
	// WouldBlock means the non-blocking call has no data/room right now
	// (EWOULDBLOCK/EAGAIN, WSAEWOULDBLOCK).
	WouldBlock
	// InProgress means a non-blocking connect is still pending
	// (EINPROGRESS). Winsock reports a pending connect as
	// WSAEWOULDBLOCK, which classifies as WouldBlock.
	InProgress
	// Interrupted means the call was interrupted by a signal and may be
	// retried (EINTR, WSAEINTR, WSAEINPROGRESS).
	Interrupted
	// ConnReset means the peer reset the connection (ECONNRESET,
	// WSAECONNRESET).
	ConnReset
	// MsgSize means a datagram did not fit the receive buffer
	// (EMSGSIZE, WSAEMSGSIZE). Socket.Recvfrom normalizes this away
	// rather than surfacing it.
	MsgSize
)

var once sync.Once
var initErr error

// Initialize starts the process-wide network stack exactly once. It is
// idempotent and safe to call from multiple goroutines; only the first
// call's result is observed by later callers. socket.New calls this
// automatically, and so every Selector factory that creates a socket
// does too; applications do not need to call it directly unless they
// want to surface InitFailed early.
func Initialize() error {
	once.Do(func() {
		initErr = platformInitialize()
	})
	if initErr != nil {
		return liberr.Wrap(liberr.InitFailed, "network stack initialization failed", initErr)
	}
	return nil
}

// Shutdown tears down the process-wide network stack. Call it once,
// after the last socket/selector call, typically from the application's
// shutdown path. On platforms with no explicit stack (POSIX) this is a
// no-op.
func Shutdown() error {
	return platformShutdown()
}
