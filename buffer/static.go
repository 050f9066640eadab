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
	"reflect"
	"unsafe"

	liberr "github.com/bibhas2/velar/errors"
)

// Static wraps an inline, compile-time-fixed-size byte array. Go has no
// const generic parameters, so the size is not a parameter of this
// function: it is whatever array type the caller already declared:
//
//	var backing [256]byte
//	buf, err := buffer.Static(&backing)
//
// The returned ByteBuffer's capacity is exactly len(backing); Close is a
// no-op, the array's storage belongs to whoever declared it.
func Static[T any](backing *T) (*ByteBuffer, error) {
	v := reflect.ValueOf(backing)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, liberr.New(liberr.AllocFailed, "Static requires a non-nil pointer to a byte array")
	}
	elem := v.Elem()
	if elem.Kind() != reflect.Array || elem.Type().Elem().Kind() != reflect.Uint8 {
		return nil, liberr.New(liberr.AllocFailed, "Static requires a pointer to an array of byte")
	}

	n := elem.Len()
	data := unsafe.Slice((*byte)(unsafe.Pointer(backing)), n)
	return newByteBuffer(data, nil), nil
}
