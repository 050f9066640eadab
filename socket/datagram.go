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
	"github.com/bibhas2/velar/buffer"
)

// DatagramClientSocket specializes Socket by owning a resolved peer
// address, so the application can call the nullary Sendto/Recvfrom
// below instead of threading an Address through every call the way a
// plain UDP Socket's Sendto/Recvfrom require.
type DatagramClientSocket struct {
	*Socket
	peer Address
}

// NewDatagramClient wraps an already-created UDP socket with a resolved
// peer address. It does not bind or connect the socket: the first
// Sendto implicitly binds it.
func NewDatagramClient(s *Socket, peer Address) *DatagramClientSocket {
	return &DatagramClientSocket{Socket: s, peer: peer}
}

// Peer returns the resolved address this client sends to and expects
// replies from.
func (d *DatagramClientSocket) Peer() Address { return d.peer }

// Sendto writes buf to the stored peer address. After this call
// succeeds, the kernel has implicitly bound the socket, so a subsequent
// Recvfrom will receive from that same peer.
func (d *DatagramClientSocket) Sendto(buf *buffer.ByteBuffer) (int, error) {
	return d.Socket.Sendto(buf, d.peer)
}

// Recvfrom reads into buf from whichever address last sent a datagram to
// this socket (normally the stored peer, once Sendto has implicitly
// bound it).
func (d *DatagramClientSocket) Recvfrom(buf *buffer.ByteBuffer) (int, Address, error) {
	return d.Socket.Recvfrom(buf)
}
