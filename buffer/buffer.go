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

// Package buffer implements the position/limit/capacity byte cursor the
// rest of this module moves bytes through, in four storage variants:
//
//   - Heap: a buffer-owned heap allocation, reclaimed by the garbage
//     collector; Close releases nothing for it.
//   - Static: an inline, compile-time-fixed-size region.
//   - Wrapped: a borrow of externally-owned memory; never freed here.
//   - Mapped: a file mapping; open-file -> map-view -> unmap -> close-file,
//     released in reverse on every exit path including constructor
//     failure.
//
// All four share one cursor implementation (this file) and differ only
// in how their backing []byte was obtained and what, if anything, Close
// must release. Every put/get advances position; flip/clear/rewind move
// between write mode and read mode the way a "flip-able" I/O buffer does.
package buffer

import (
	"encoding/binary"

	liberr "github.com/bibhas2/velar/errors"
)

// noCopy, embedded by value, makes `go vet` flag accidental copies of a
// ByteBuffer (it implements sync.Locker without doing any locking). Every
// storage variant is a stable-address resource: copying or moving one is
// forbidden.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ByteBuffer is a contiguous byte region with three cursors satisfying
// 0 <= position <= limit <= capacity at every observable point. Zero
// value is not usable; construct one with Heap, Static, Wrap or Map.
type ByteBuffer struct {
	_ noCopy

	data     []byte
	position int
	limit    int
	closer   func() error
	closed   bool
}

func newByteBuffer(data []byte, closer func() error) *ByteBuffer {
	return &ByteBuffer{
		data:   data,
		limit:  len(data),
		closer: closer,
	}
}

// Capacity returns the fixed size of the backing region.
func (b *ByteBuffer) Capacity() int { return len(b.data) }

// Position returns the current cursor position.
func (b *ByteBuffer) Position() int { return b.position }

// Limit returns the current read/write boundary.
func (b *ByteBuffer) Limit() int { return b.limit }

// Remaining returns limit - position: the number of bytes that may still
// be read (in read mode) or written (in write mode) before the limit is
// reached.
func (b *ByteBuffer) Remaining() int { return b.limit - b.position }

// HasRemaining reports whether Remaining() > 0.
func (b *ByteBuffer) HasRemaining() bool { return b.Remaining() > 0 }

// SetPosition moves the cursor, failing with OutOfRange if pos would
// break 0 <= position <= limit.
func (b *ByteBuffer) SetPosition(pos int) error {
	if pos < 0 || pos > b.limit {
		return liberr.Newf(liberr.OutOfRange, "position %d out of [0, %d]", pos, b.limit)
	}
	b.position = pos
	return nil
}

// SetLimit moves the limit, failing with OutOfRange if lim is outside
// [0, capacity]. If the new limit is below the current position, the
// position is pulled back to it too.
func (b *ByteBuffer) SetLimit(lim int) error {
	if lim < 0 || lim > len(b.data) {
		return liberr.Newf(liberr.OutOfRange, "limit %d out of [0, %d]", lim, len(b.data))
	}
	b.limit = lim
	if b.position > b.limit {
		b.position = b.limit
	}
	return nil
}

// Flip switches the buffer from write mode to read mode: limit becomes
// the current position (how much was written) and position resets to 0.
func (b *ByteBuffer) Flip() {
	b.limit = b.position
	b.position = 0
}

// Clear resets the buffer for writing: position to 0, limit to capacity.
// It does not erase the underlying bytes.
func (b *ByteBuffer) Clear() {
	b.position = 0
	b.limit = len(b.data)
}

// Rewind resets position to 0 without touching limit, so a just-written
// (but not yet flipped) or just-read region can be re-read from the top.
func (b *ByteBuffer) Rewind() {
	b.position = 0
}

// RemainingSlice returns the backing region between position and limit.
// Socket I/O reads into (or writes out of) this slice directly; callers
// must call Advance with the number of bytes actually transferred.
func (b *ByteBuffer) RemainingSlice() []byte {
	return b.data[b.position:b.limit]
}

// Advance moves position forward by n, the number of bytes an I/O
// operation actually transferred. Fails with Invariant if n would push
// position past limit.
func (b *ByteBuffer) Advance(n int) error {
	if n < 0 || b.position+n > b.limit {
		return liberr.Newf(liberr.Invariant, "advance %d past remaining %d", n, b.Remaining())
	}
	b.position += n
	return nil
}

// ToStringView returns [position, limit) as a string without advancing
// the cursor. The bytes are copied, not borrowed: later writes to the
// buffer do not show through the returned string.
func (b *ByteBuffer) ToStringView() string {
	return string(b.data[b.position:b.limit])
}

// Close releases any resources owned by this buffer's storage variant.
// Heap, Static and Wrapped buffers have nothing to release beyond
// letting the garbage collector reclaim the slice (Wrapped never owned
// it to begin with); Mapped releases its file mapping. Close is
// idempotent.
func (b *ByteBuffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if b.closer != nil {
		return b.closer()
	}
	return nil
}

func (b *ByteBuffer) checkPut(n int) error {
	if n > b.Remaining() {
		return liberr.Newf(liberr.OutOfRange, "put %d bytes exceeds remaining %d", n, b.Remaining())
	}
	return nil
}

func (b *ByteBuffer) checkGet(n int) error {
	if n > b.Remaining() {
		return liberr.Newf(liberr.OutOfRange, "get %d bytes exceeds remaining %d", n, b.Remaining())
	}
	return nil
}

// PutBytes appends length bytes from src[offset:offset+length] at the
// current position and advances it.
func (b *ByteBuffer) PutBytes(src []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(src) {
		return liberr.Newf(liberr.OutOfRange, "slice [%d:%d+%d] out of range for length %d", offset, offset, length, len(src))
	}
	if err := b.checkPut(length); err != nil {
		return err
	}
	copy(b.data[b.position:], src[offset:offset+length])
	b.position += length
	return nil
}

// Put appends all of p at the current position and advances it.
func (b *ByteBuffer) Put(p []byte) error {
	return b.PutBytes(p, 0, len(p))
}

// PutString appends s at the current position and advances it.
func (b *ByteBuffer) PutString(s string) error {
	return b.Put([]byte(s))
}

// PutByte appends a single byte.
func (b *ByteBuffer) PutByte(v byte) error {
	if err := b.checkPut(1); err != nil {
		return err
	}
	b.data[b.position] = v
	b.position++
	return nil
}

// PutUint16 appends v in network byte order (big-endian).
func (b *ByteBuffer) PutUint16(v uint16) error {
	if err := b.checkPut(2); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b.data[b.position:], v)
	b.position += 2
	return nil
}

// PutUint32 appends v in network byte order (big-endian).
func (b *ByteBuffer) PutUint32(v uint32) error {
	if err := b.checkPut(4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b.data[b.position:], v)
	b.position += 4
	return nil
}

// PutUint64 appends v in network byte order (big-endian).
func (b *ByteBuffer) PutUint64(v uint64) error {
	if err := b.checkPut(8); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b.data[b.position:], v)
	b.position += 8
	return nil
}

// GetBytes reads length bytes into dest[offset:offset+length] and
// advances position.
func (b *ByteBuffer) GetBytes(dest []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(dest) {
		return liberr.Newf(liberr.OutOfRange, "slice [%d:%d+%d] out of range for length %d", offset, offset, length, len(dest))
	}
	if err := b.checkGet(length); err != nil {
		return err
	}
	copy(dest[offset:offset+length], b.data[b.position:b.position+length])
	b.position += length
	return nil
}

// GetByte reads a single byte and advances position.
func (b *ByteBuffer) GetByte() (byte, error) {
	if err := b.checkGet(1); err != nil {
		return 0, err
	}
	v := b.data[b.position]
	b.position++
	return v, nil
}

// GetString reads length bytes as a string and advances position.
func (b *ByteBuffer) GetString(length int) (string, error) {
	if err := b.checkGet(length); err != nil {
		return "", err
	}
	v := string(b.data[b.position : b.position+length])
	b.position += length
	return v, nil
}

// GetStringAll consumes all remaining bytes as a string.
func (b *ByteBuffer) GetStringAll() (string, error) {
	return b.GetString(b.Remaining())
}

// GetUint16 reads a big-endian uint16 and advances position.
func (b *ByteBuffer) GetUint16() (uint16, error) {
	if err := b.checkGet(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(b.data[b.position:])
	b.position += 2
	return v, nil
}

// GetUint32 reads a big-endian uint32 and advances position.
func (b *ByteBuffer) GetUint32() (uint32, error) {
	if err := b.checkGet(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(b.data[b.position:])
	b.position += 4
	return v, nil
}

// GetUint64 reads a big-endian uint64 and advances position.
func (b *ByteBuffer) GetUint64() (uint64, error) {
	if err := b.checkGet(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(b.data[b.position:])
	b.position += 8
	return v, nil
}
