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
	liberr "github.com/bibhas2/velar/errors"
	liblog "github.com/bibhas2/velar/logger"
	"github.com/bibhas2/velar/platform"
	libptc "github.com/bibhas2/velar/protocol"
)

// New creates a fresh OS socket of the given family/type and wraps it,
// always configured non-blocking. fam must be FamilyINET or
// FamilyINET6: callers resolve FamilyUnspec down to a concrete family
// before reaching here (see Resolve), since the OS socket() call itself
// always needs one.
func New(fam Family, typ SockType, role Role, log *liblog.Logger) (*Socket, error) {
	if err := platform.Initialize(); err != nil {
		return nil, err
	}
	if fam == FamilyUnspec {
		return nil, liberr.New(liberr.SocketCreate, "socket family must be resolved before creation")
	}

	h, err := newRawSocket(fam, typ)
	if err != nil {
		return nil, liberr.Wrap(liberr.SocketCreate, "socket", err)
	}
	s := newSocket(h, role, log)
	if err := setNonblockingRaw(h); err != nil {
		_ = s.Close()
		return nil, liberr.Wrap(liberr.SocketCreate, "set non-blocking", err)
	}
	return s, nil
}

// NewFromProtocol maps a textual network protocol onto the concrete
// family/type pair New needs: "tcp4"/"udp4" pin AF_INET, "tcp6"/"udp6"
// pin AF_INET6, and the dual-stack "tcp"/"udp" also open AF_INET6; the
// caller then clears IPV6_V6ONLY to take IPv4-mapped peers as well.
func NewFromProtocol(p libptc.NetworkProtocol, role Role, log *liblog.Logger) (*Socket, error) {
	if !p.Valid() {
		return nil, liberr.Newf(liberr.SocketCreate, "unsupported network protocol %q", p.String())
	}
	fam := FamilyINET6
	if p == libptc.NetworkTCP4 || p == libptc.NetworkUDP4 {
		fam = FamilyINET
	}
	typ := TypeStream
	if p.IsDatagram() {
		typ = TypeDgram
	}
	return New(fam, typ, role, log)
}

// Adopt wraps an already-open handle, e.g. one produced by Accept. It is
// configured non-blocking the same way New's result is.
func Adopt(h platform.Handle, role Role, log *liblog.Logger) (*Socket, error) {
	s := newSocket(h, role, log)
	if err := setNonblockingRaw(h); err != nil {
		_ = s.Close()
		return nil, liberr.Wrap(liberr.SocketCreate, "set non-blocking", err)
	}
	return s, nil
}

// Accept pulls one pending connection off a listening socket. It is
// itself non-blocking: it must only be called once the Selector has
// reported the server socket acceptable. The returned Socket is a fresh
// stream client, already non-blocking.
func (s *Socket) Accept(log *liblog.Logger) (*Socket, Address, error) {
	h, from, err := acceptRaw(s.handle)
	if err != nil {
		return nil, Address{}, liberr.Wrap(liberr.Accept, "accept", err)
	}
	child, err := Adopt(h, RoleClient, log)
	if err != nil {
		return nil, Address{}, err
	}
	return child, from, nil
}
