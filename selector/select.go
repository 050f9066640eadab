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

package selector

import (
	liberr "github.com/bibhas2/velar/errors"
	liblog "github.com/bibhas2/velar/logger"
	"github.com/bibhas2/velar/platform"
	"github.com/bibhas2/velar/socket"
)

// Select runs one full wait cycle:
//
//  1. purge every socket marked cancelled since the last call;
//  2. build the read/write(/exception) sets from current interests;
//  3. block in the OS readiness call for at most timeoutSeconds
//     (<= 0 blocks indefinitely; this module's public timeout
//     granularity is whole seconds and does not silently upgrade to a
//     duration type);
//  4. classify the result (timeout, interrupted, fatal);
//  5. dispatch readiness onto each socket's state flags.
//
// waitReadiness is the one platform-specific seam (wait_unix.go /
// wait_windows.go); resolvePendingConnect is the other (connect_unix.go
// / connect_windows.go), implementing the POSIX-vs-Winsock dialect
// split for resolving a pending connect.
func (s *Selector) Select(timeoutSeconds int) (int, error) {
	s.purgeCanceled()

	var readH, writeH, excH []platform.Handle
	s.sockets.Walk(func(h platform.Handle, sock *socket.Socket) bool {
		if sock.ReportReadable() || sock.ReportAcceptable() {
			readH = append(readH, h)
		}
		if sock.ReportWritable() {
			writeH = append(writeH, h)
		}
		if sock.IsConnPending() {
			writeH = append(writeH, h)
			excH = append(excH, h)
		}
		return true
	})

	readReady, writeReady, excReady, n, err := waitReadiness(readH, writeH, excH, timeoutSeconds)
	if err != nil {
		if platform.ClassifyErrno(err) == platform.Interrupted {
			// Return the raw result, leave state untouched, let the
			// application retry.
			return n, nil
		}
		return 0, liberr.Wrap(liberr.SelectFailed, "select", err)
	}
	if n == 0 {
		return 0, nil
	}

	s.sockets.Walk(func(h platform.Handle, sock *socket.Socket) bool {
		if sock.IsConnPending() {
			resolvePendingConnect(sock, writeReady[h], excReady[h])
			return true
		}
		sock.DispatchReadiness(readReady[h], writeReady[h])
		return true
	})

	if s.log != nil {
		s.log.Debug("select cycle complete", liblog.Fields{"ready": n})
	}
	return n, nil
}

// purgeCanceled removes every socket marked for cancellation, closing
// its handle: this is the one point where a cancelled socket's last
// reference may drop. The cancellation set is always empty again once
// this returns.
func (s *Selector) purgeCanceled() {
	for _, h := range s.canceled.Keys() {
		if sock, ok := s.sockets.Load(h); ok {
			_ = sock.Close()
			s.sockets.Delete(h)
		}
		s.canceled.Delete(h)
	}
}
