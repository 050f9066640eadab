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

package buffer

import (
	"testing"

	liberr "github.com/bibhas2/velar/errors"
)

func TestHeapInvariants(t *testing.T) {
	b, err := Heap(16)
	if err != nil {
		t.Fatalf("Heap: %v", err)
	}
	if b.Capacity() != 16 {
		t.Fatalf("capacity = %d, want 16", b.Capacity())
	}
	if b.Position() != 0 || b.Limit() != 16 {
		t.Fatalf("position=%d limit=%d, want 0,16", b.Position(), b.Limit())
	}
	if !b.HasRemaining() {
		t.Fatal("HasRemaining false on fresh buffer")
	}
}

func TestHeapNegativeSize(t *testing.T) {
	if _, err := Heap(-1); !liberr.HasCode(err, liberr.AllocFailed) {
		t.Fatalf("want AllocFailed, got %v", err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	b, _ := Heap(32)
	if err := b.PutUint32(0xDEADBEEF); err != nil {
		t.Fatalf("PutUint32: %v", err)
	}
	if err := b.PutString("hi"); err != nil {
		t.Fatalf("PutString: %v", err)
	}
	b.Flip()

	v, err := b.GetUint32()
	if err != nil || v != 0xDEADBEEF {
		t.Fatalf("GetUint32 = %#x, %v", v, err)
	}
	s, err := b.GetStringAll()
	if err != nil || s != "hi" {
		t.Fatalf("GetStringAll = %q, %v", s, err)
	}
}

func TestTypedRoundTrips(t *testing.T) {
	b, _ := Heap(32)

	if err := b.PutByte(0x7F); err != nil {
		t.Fatalf("PutByte: %v", err)
	}
	if err := b.PutUint16(0xCAFE); err != nil {
		t.Fatalf("PutUint16: %v", err)
	}
	if err := b.PutUint64(0x0102030405060708); err != nil {
		t.Fatalf("PutUint64: %v", err)
	}
	b.Flip()

	if v, err := b.GetByte(); err != nil || v != 0x7F {
		t.Fatalf("GetByte = %#x, %v", v, err)
	}
	if v, err := b.GetUint16(); err != nil || v != 0xCAFE {
		t.Fatalf("GetUint16 = %#x, %v", v, err)
	}
	if v, err := b.GetUint64(); err != nil || v != 0x0102030405060708 {
		t.Fatalf("GetUint64 = %#x, %v", v, err)
	}
	if b.HasRemaining() {
		t.Fatalf("remaining = %d after reading everything back, want 0", b.Remaining())
	}
}

func TestFlipAfterClearIsEmptyReadable(t *testing.T) {
	b, _ := Heap(8)
	_ = b.PutUint32(42)
	b.Clear()
	b.Flip()
	if b.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", b.Remaining())
	}
}

func TestBigEndianByteOrder(t *testing.T) {
	b, _ := Heap(4)
	if err := b.PutUint32(0x01020304); err != nil {
		t.Fatalf("PutUint32: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04}
	got := b.data
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestFlipClearRewind(t *testing.T) {
	b, _ := Heap(8)
	_ = b.PutUint32(1)
	b.Flip()
	if b.Position() != 0 || b.Limit() != 4 {
		t.Fatalf("after Flip: position=%d limit=%d", b.Position(), b.Limit())
	}
	_, _ = b.GetUint32()
	b.Rewind()
	if b.Position() != 0 || b.Limit() != 4 {
		t.Fatalf("after Rewind: position=%d limit=%d", b.Position(), b.Limit())
	}
	b.Clear()
	if b.Position() != 0 || b.Limit() != 8 {
		t.Fatalf("after Clear: position=%d limit=%d", b.Position(), b.Limit())
	}
}

func TestPutPastLimitFails(t *testing.T) {
	b, _ := Heap(2)
	if err := b.PutUint32(1); !liberr.HasCode(err, liberr.OutOfRange) {
		t.Fatalf("want OutOfRange, got %v", err)
	}
}

func TestSetPositionOutOfRange(t *testing.T) {
	b, _ := Heap(4)
	if err := b.SetPosition(5); !liberr.HasCode(err, liberr.OutOfRange) {
		t.Fatalf("want OutOfRange, got %v", err)
	}
	if err := b.SetPosition(-1); !liberr.HasCode(err, liberr.OutOfRange) {
		t.Fatalf("want OutOfRange, got %v", err)
	}
}

func TestSetLimitPullsBackPosition(t *testing.T) {
	b, _ := Heap(8)
	_ = b.SetPosition(6)
	if err := b.SetLimit(4); err != nil {
		t.Fatalf("SetLimit: %v", err)
	}
	if b.Position() != 4 {
		t.Fatalf("position = %d, want 4", b.Position())
	}
}

func TestAdvancePastLimitFails(t *testing.T) {
	b, _ := Heap(4)
	if err := b.Advance(5); !liberr.HasCode(err, liberr.Invariant) {
		t.Fatalf("want Invariant, got %v", err)
	}
}

func TestRemainingSliceAndAdvance(t *testing.T) {
	b, _ := Heap(4)
	copy(b.RemainingSlice(), []byte{1, 2, 3, 4})
	if err := b.Advance(4); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if b.HasRemaining() {
		t.Fatal("expected no remaining after advancing to limit")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	calls := 0
	b := newByteBuffer(make([]byte, 4), func() error {
		calls++
		return nil
	})
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if calls != 1 {
		t.Fatalf("closer called %d times, want 1", calls)
	}
}

func TestWrapBorrowsSlice(t *testing.T) {
	backing := []byte("hello")
	b := Wrap(backing)
	if b.Capacity() != len(backing) {
		t.Fatalf("capacity = %d, want %d", b.Capacity(), len(backing))
	}
	s, err := b.GetString(5)
	if err != nil || s != "hello" {
		t.Fatalf("GetString = %q, %v", s, err)
	}
}

func TestStaticWrapsArray(t *testing.T) {
	var backing [8]byte
	b, err := Static(&backing)
	if err != nil {
		t.Fatalf("Static: %v", err)
	}
	if b.Capacity() != 8 {
		t.Fatalf("capacity = %d, want 8", b.Capacity())
	}
	if err := b.PutByte(0x42); err != nil {
		t.Fatalf("PutByte: %v", err)
	}
	if backing[0] != 0x42 {
		t.Fatal("Static buffer does not alias the backing array")
	}
}

func TestStaticRejectsNonArray(t *testing.T) {
	var notAnArray int
	if _, err := Static(&notAnArray); err == nil {
		t.Fatal("expected error for non-array pointer")
	}
}
