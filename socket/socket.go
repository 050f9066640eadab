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

// Package socket wraps one OS socket handle with the interest/state
// flag set, typed non-blocking I/O, and the attachment slot the
// selector's registry keys readiness dispatch around.
package socket

import (
	"sync"

	"github.com/bibhas2/velar/buffer"
	liberr "github.com/bibhas2/velar/errors"
	liblog "github.com/bibhas2/velar/logger"
	"github.com/bibhas2/velar/platform"
)

// Role distinguishes how a socket came to exist: a small closed sum
// type so dispatch on it is exhaustive rather than an untyped bit.
type Role uint8

const (
	// RoleClient is a connecting or already-connected stream client,
	// or a UDP client socket bound to a peer via Resolve.
	RoleClient Role = iota
	// RoleServer is a listening stream socket or a UDP server/multicast
	// endpoint.
	RoleServer
)

func (r Role) String() string {
	if r == RoleServer {
		return "server"
	}
	return "client"
}

// Socket wraps one OS socket handle plus nine independent interest and
// state flags. It is not safe for concurrent use beyond the attachment
// accessors (see the field comment below); the Selector that owns it is
// itself meant to be driven from a single cooperative thread.
type Socket struct {
	handle platform.Handle
	role   Role

	interestAcceptable bool
	interestReadable   bool
	interestWritable   bool

	stateAcceptable bool
	stateReadable   bool
	stateWritable   bool
	connPending     bool
	connFailed      bool
	connSuccess     bool

	// attachMu guards attachment only: application code may legitimately
	// fetch a socket's attachment from outside the single-threaded
	// selector loop (e.g. a logging goroutine), so this one field gets
	// its own lock rather than relying on the Selector's single-threaded
	// contract.
	attachMu sync.RWMutex
	attach   any

	log    *liblog.Logger
	closed bool
}

func newSocket(h platform.Handle, role Role, log *liblog.Logger) *Socket {
	return &Socket{handle: h, role: role, log: log}
}

// Handle returns the raw OS handle, also used as the registry's
// ordering key.
func (s *Socket) Handle() platform.Handle { return s.handle }

// Role reports whether this socket was produced by a server-side or
// client-side factory.
func (s *Socket) Role() Role { return s.role }

// Attachment returns the opaque user payload last set via
// SetAttachment, or nil if none was set.
func (s *Socket) Attachment() any {
	s.attachMu.RLock()
	defer s.attachMu.RUnlock()
	return s.attach
}

// SetAttachment stores an opaque user payload alongside the socket.
// The attachment must not hold a strong reference back to this Socket
// or its Selector, or the pair leaks once both sides are otherwise
// unreachable.
func (s *Socket) SetAttachment(v any) {
	s.attachMu.Lock()
	defer s.attachMu.Unlock()
	s.attach = v
}

// AttachmentAs recovers a typed attachment: a checked type assertion
// that returns ok=false instead of panicking when the caller guesses
// the wrong type. Go has no way to parameterize a method with its own
// type parameter, so this is a free function rather than a generic
// method on *Socket.
func AttachmentAs[T any](s *Socket) (T, bool) {
	v, ok := s.Attachment().(T)
	return v, ok
}

// Interest getters/setters. Each flag is independent of the others.

func (s *Socket) ReportAcceptable() bool     { return s.interestAcceptable }
func (s *Socket) SetReportAcceptable(v bool) { s.interestAcceptable = v }
func (s *Socket) ReportReadable() bool       { return s.interestReadable }
func (s *Socket) SetReportReadable(v bool)   { s.interestReadable = v }
func (s *Socket) ReportWritable() bool       { return s.interestWritable }
func (s *Socket) SetReportWritable(v bool)   { s.interestWritable = v }

// State getters. These are written only by the Selector's dispatch
// step; application code reads them after select returns.

// IsAcceptable returns the ACCEPTABLE state flag directly; it is not
// derived from anything else at call time.
func (s *Socket) IsAcceptable() bool  { return s.stateAcceptable }
func (s *Socket) IsReadable() bool    { return s.stateReadable }
func (s *Socket) IsWritable() bool    { return s.stateWritable }
func (s *Socket) IsConnPending() bool { return s.connPending }
func (s *Socket) IsConnFailed() bool  { return s.connFailed }
func (s *Socket) IsConnSuccess() bool { return s.connSuccess }

// MarkConnPending, ResolveConnect and DispatchReadiness are the
// Selector's own state-transition hooks. They are exported so the
// selector package can drive them, but application code has no
// business calling these directly: doing so forges a readiness
// transition outside select().

// MarkConnPending records that a non-blocking connect issued by this
// socket is still in flight.
func (s *Socket) MarkConnPending() { s.connPending = true }

// ResolveConnect clears IS_CONN_PENDING and sets exactly one of
// IS_CONN_SUCCESS / IS_CONN_FAILED.
func (s *Socket) ResolveConnect(success bool) {
	s.connPending = false
	s.connSuccess = success
	s.connFailed = !success
}

// DispatchReadiness applies one select() cycle's read/write-set
// membership to this socket's state flags. Only called for sockets that
// are not a pending connect; those go through ResolveConnect instead.
func (s *Socket) DispatchReadiness(readSet, writeSet bool) {
	s.connSuccess = false
	if s.interestAcceptable {
		s.stateAcceptable = readSet
	} else {
		s.stateReadable = readSet
	}
	s.stateWritable = writeSet
}

// Close closes the underlying handle. Idempotent: a second call is a
// no-op rather than a double-close error.
func (s *Socket) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.handle.Valid() {
		return nil
	}
	return closeHandle(s.handle)
}

func (s *Socket) checkReadable(buf *buffer.ByteBuffer) error {
	if !buf.HasRemaining() {
		return liberr.New(liberr.Invariant, "read/recvfrom on a buffer with no remaining capacity")
	}
	return nil
}

func (s *Socket) checkWritable(buf *buffer.ByteBuffer) error {
	if !buf.HasRemaining() {
		return liberr.New(liberr.Invariant, "write/sendto on a buffer with nothing left to send")
	}
	return nil
}

// classify turns a raw OS I/O result into this module's tri-valued
// contract: n>0 transferred, 0 would-block, <0 fatal. A nil
// err with n==0 on a stream read means the peer performed an orderly
// shutdown, which this core treats the same as a fatal error (the
// caller must cancel the socket either way).
func classify(n int, err error, streamEOFIsFatal bool) (int, bool) {
	if err != nil {
		switch platform.ClassifyErrno(err) {
		case platform.WouldBlock:
			return 0, false
		default:
			return -1, false
		}
	}
	if n == 0 && streamEOFIsFatal {
		return -1, false
	}
	return n, true
}

// Read pulls up to buf.Remaining() bytes from the socket into buf,
// advancing its position by the number of bytes actually transferred.
func (s *Socket) Read(buf *buffer.ByteBuffer) (int, error) {
	if err := s.checkReadable(buf); err != nil {
		return 0, err
	}
	n, ioErr := readRaw(s.handle, buf.RemainingSlice())
	result, transferred := classify(n, ioErr, true)
	if transferred && result > 0 {
		if err := buf.Advance(result); err != nil {
			return 0, err
		}
	}
	return result, nil
}

// Write pushes up to buf.Remaining() bytes from buf to the socket,
// advancing its position by the number of bytes actually transferred.
func (s *Socket) Write(buf *buffer.ByteBuffer) (int, error) {
	if err := s.checkWritable(buf); err != nil {
		return 0, err
	}
	n, ioErr := writeRaw(s.handle, buf.RemainingSlice())
	result, transferred := classify(n, ioErr, false)
	if transferred && result > 0 {
		if err := buf.Advance(result); err != nil {
			return 0, err
		}
	}
	return result, nil
}

// Recvfrom reads a datagram into buf and reports the sender's address.
// A datagram larger than buf's remaining capacity is truncated to fit;
// this never surfaces as an error, on either socket dialect.
func (s *Socket) Recvfrom(buf *buffer.ByteBuffer) (int, Address, error) {
	if err := s.checkReadable(buf); err != nil {
		return 0, Address{}, err
	}
	n, from, ioErr := recvfromRaw(s.handle, buf.RemainingSlice())
	if ioErr != nil && platform.ClassifyErrno(ioErr) == platform.MsgSize {
		// Winsock dialect: the requested bytes were still delivered,
		// only the error code reports the truncation. Normalize to the
		// POSIX behavior of silently filling the buffer.
		n = len(buf.RemainingSlice())
		ioErr = nil
	}
	result, transferred := classify(n, ioErr, false)
	if transferred && result > 0 {
		if err := buf.Advance(result); err != nil {
			return 0, Address{}, err
		}
	}
	return result, from, nil
}

// Sendto writes buf to the explicit address to, consuming up to
// buf.Remaining() bytes.
func (s *Socket) Sendto(buf *buffer.ByteBuffer, to Address) (int, error) {
	if err := s.checkWritable(buf); err != nil {
		return 0, err
	}
	n, ioErr := sendtoRaw(s.handle, buf.RemainingSlice(), to)
	result, transferred := classify(n, ioErr, false)
	if transferred && result > 0 {
		if err := buf.Advance(result); err != nil {
			return 0, err
		}
	}
	return result, nil
}
