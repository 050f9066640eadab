/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package errors provides a coded error type for the selector/socket/buffer
// core.
//
// A CodeError is a small numeric classification (similar in spirit to an
// HTTP status code) attached to every construction-time failure. Per-cycle
// I/O failures never use this type: they collapse into the tri-valued
// socket I/O contract instead, so the application can cancel the offending
// socket without unwinding an error value.
package errors

import (
	"errors"
	"fmt"
)

// CodeError classifies why a construction-time call failed.
type CodeError uint16

const (
	// UnknownError is the zero value: an error not otherwise classified.
	UnknownError CodeError = iota

	// InitFailed means the platform network stack could not be started.
	InitFailed
	// SocketCreate means the OS socket() call failed.
	SocketCreate
	// Bind means the OS bind() call failed.
	Bind
	// Listen means the OS listen() call failed.
	Listen
	// Accept means the OS accept() call failed.
	Accept
	// Connect means the non-blocking connect() call failed synchronously
	// (i.e. failed for a reason other than "in progress").
	Connect
	// Resolve means name resolution returned a non-zero status or an
	// empty address list.
	Resolve
	// SetOption means a mandatory socket option failed to apply
	// (IPV6_V6ONLY, SO_REUSEADDR, IP*_MEMBERSHIP). Best-effort options
	// that fail are logged, not surfaced as this code.
	SetOption
	// SelectFailed means the readiness wait failed for a reason other
	// than EINTR/WSAEINTR/WSAEINPROGRESS.
	SelectFailed

	// OutOfRange means a buffer operation would read or write past its
	// limit, or a position/limit setter was given an out-of-order value.
	OutOfRange
	// Invariant means a buffer or socket precondition was violated by
	// the caller (e.g. read on a buffer with no remaining capacity).
	Invariant
	// EmptyFile means a zero-length file was given to the mapped buffer
	// constructor.
	EmptyFile
	// AllocFailed means a buffer's backing storage could not be obtained:
	// a negative heap size, a Static argument that is not a pointer to a
	// byte array, or a mapped file that could not be opened, created,
	// sized or mapped.
	AllocFailed
)

var codeText = map[CodeError]string{
	UnknownError: "unknown error",
	InitFailed:   "network stack initialization failed",
	SocketCreate: "socket creation failed",
	Bind:         "bind failed",
	Listen:       "listen failed",
	Accept:       "accept failed",
	Connect:      "connect failed",
	Resolve:      "name resolution failed",
	SetOption:    "socket option failed",
	SelectFailed: "select failed",
	OutOfRange:   "out of range",
	Invariant:    "invariant violated",
	EmptyFile:    "empty file",
	AllocFailed:  "allocation failed",
}

// String returns the human-readable classification for the code.
func (c CodeError) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return fmt.Sprintf("error code %d", uint16(c))
}

// Error is a CodeError plus a message and an optional wrapped cause.
// It satisfies the standard error interface and participates in
// errors.Is / errors.As via Unwrap.
type Error struct {
	code   CodeError
	msg    string
	parent error
}

// New creates an Error with the given code and message.
func New(code CodeError, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Newf creates an Error with the given code and a formatted message.
func Newf(code CodeError, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with the given code and message, chaining parent
// as its cause. Wrap returns nil if both msg is empty and parent is nil.
func Wrap(code CodeError, msg string, parent error) *Error {
	if msg == "" && parent == nil {
		return nil
	}
	return &Error{code: code, msg: msg, parent: parent}
}

// Code returns the error's classification.
func (e *Error) Code() CodeError {
	if e == nil {
		return UnknownError
	}
	return e.code
}

// Is reports whether target is a code sentinel equal to e's code, so
// callers can write `errors.Is(err, OutOfRange.Sentinel())`-style checks
// (see the Sentinel helper below).
func (e *Error) Is(target error) bool {
	var c codeSentinel
	if errors.As(target, &c) {
		return e.code == c.code
	}
	return false
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.parent != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.parent
}

// codeSentinel lets a bare CodeError be compared against an *Error via
// errors.Is(err, SomeCode.Sentinel()).
type codeSentinel struct{ code CodeError }

func (c codeSentinel) Error() string { return c.code.String() }

// Sentinel returns an error value usable with errors.Is to test whether
// an error (or any error in its chain) carries this code.
func (c CodeError) Sentinel() error { return codeSentinel{code: c} }

// HasCode reports whether err is an *Error (directly, or anywhere in its
// Unwrap chain) carrying the given code.
func HasCode(err error, code CodeError) bool {
	return errors.Is(err, code.Sentinel())
}
