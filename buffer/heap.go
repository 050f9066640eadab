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

import liberr "github.com/bibhas2/velar/errors"

// Heap allocates a new buffer-owned region of n bytes on the heap. The
// allocation is released when the garbage collector reclaims it; Close
// is a no-op for this variant beyond marking the buffer closed.
//
// Heap fails with AllocFailed only in the degenerate case of a negative
// size; Go's allocator does not return partial-failure the way a raw
// malloc can, so there is no other failure mode to report.
func Heap(n int) (*ByteBuffer, error) {
	if n < 0 {
		return nil, liberr.Newf(liberr.AllocFailed, "negative capacity %d", n)
	}
	return newByteBuffer(make([]byte, n), nil), nil
}
