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

// Package perm provides a small, portable file-permission value type.
//
// It exists for one caller in this module: the mapped byte buffer (see
// the buffer package), which must create its backing file with an
// explicit mode when the file does not already exist.
package perm

import (
	"fmt"
	"os"
	"strconv"
)

// Perm wraps os.FileMode's permission bits with octal parsing and
// formatting.
type Perm uint32

// Default is the permission used when a caller does not specify one
// explicitly: rw-r--r--.
const Default Perm = 0644

// Parse reads an octal permission string such as "0644" or "644".
func Parse(s string) (Perm, error) {
	if s == "" {
		return Default, nil
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("perm: invalid octal permission %q: %w", s, err)
	}
	return Perm(v), nil
}

// FileMode returns the value as an os.FileMode suitable for os.OpenFile.
func (p Perm) FileMode() os.FileMode {
	return os.FileMode(p)
}

// String renders the permission as an octal string, e.g. "0644".
func (p Perm) String() string {
	return fmt.Sprintf("%#o", uint32(p))
}
