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
	"os"

	liberr "github.com/bibhas2/velar/errors"
	libprm "github.com/bibhas2/velar/perm"
)

// releaseStack runs a LIFO list of release steps: acquire in order,
// release in reverse, so a failure partway through construction still
// unwinds whatever was already acquired.
type releaseStack struct {
	steps []func() error
}

func (r *releaseStack) push(step func() error) {
	r.steps = append(r.steps, step)
}

// unwind releases everything pushed so far, most-recently-acquired
// first, and returns the first error encountered (if any).
func (r *releaseStack) unwind() error {
	var first error
	for i := len(r.steps) - 1; i >= 0; i-- {
		if err := r.steps[i](); err != nil && first == nil {
			first = err
		}
	}
	r.steps = nil
	return first
}

// Map opens (creating it if absent and readOnly is false) the file at
// path and maps its entire contents into memory.
//
// If the file does not exist and readOnly is false, it is created and
// sized to maxSize, which must be > 0; with maxSize <= 0 Map fails with
// AllocFailed before creating anything. A pre-existing zero-length file
// cannot be mapped and fails with EmptyFile. capacity and limit are set
// to the file's length, position to 0.
//
// The lifecycle is open-file -> map-view; on any failure the resources
// already acquired are released in reverse order before the error
// surfaces, including when the failure happens partway through
// construction.
func Map(path string, readOnly bool, maxSize int64, mode libprm.Perm) (buf *ByteBuffer, err error) {
	var rs releaseStack
	defer func() {
		if err != nil {
			_ = rs.unwind()
		}
	}()

	flags := os.O_RDONLY
	if !readOnly {
		flags = os.O_RDWR
	}

	_, statErr := os.Stat(path)
	creating := false
	if os.IsNotExist(statErr) {
		if readOnly {
			return nil, liberr.Wrap(liberr.AllocFailed, "mapped file does not exist", statErr)
		}
		if maxSize <= 0 {
			return nil, liberr.Newf(liberr.AllocFailed, "creating %q requires maxSize > 0", path)
		}
		flags |= os.O_CREATE
		creating = true
	}

	f, openErr := os.OpenFile(path, flags, mode.FileMode())
	if openErr != nil {
		return nil, liberr.Wrap(liberr.AllocFailed, "open mapped file", openErr)
	}
	rs.push(f.Close)

	if creating {
		if truncErr := f.Truncate(maxSize); truncErr != nil {
			return nil, liberr.Wrap(liberr.AllocFailed, "size new mapped file", truncErr)
		}
	}

	info, statErr := f.Stat()
	if statErr != nil {
		return nil, liberr.Wrap(liberr.AllocFailed, "stat mapped file", statErr)
	}

	length := info.Size()
	if length == 0 {
		return nil, liberr.New(liberr.EmptyFile, "mapped file is empty")
	}

	data, unmap, mapErr := mmapFile(f, length, readOnly)
	if mapErr != nil {
		return nil, liberr.Wrap(liberr.AllocFailed, "map file view", mapErr)
	}
	rs.push(unmap)

	steps := rs.steps
	return &ByteBuffer{
		data:  data,
		limit: len(data),
		closer: func() error {
			var first error
			for i := len(steps) - 1; i >= 0; i-- {
				if e := steps[i](); e != nil && first == nil {
					first = e
				}
			}
			return first
		},
	}, nil
}
