//go:build !windows

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
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/bibhas2/velar/platform"
)

// fdSetWordBits is unix.FdSet.Bits' element width: int64 words on
// Linux, int32 on the BSDs, so it is computed rather than hardcoded.
const fdSetWordBits = 8 * int(unsafe.Sizeof(unix.FdSet{}.Bits[0]))

func fdZero(set *unix.FdSet) {
	for i := range set.Bits {
		set.Bits[i] = 0
	}
}

func fdAdd(set *unix.FdSet, h platform.Handle) {
	fd := int(h)
	set.Bits[fd/fdSetWordBits] |= 1 << (uint(fd) % uint(fdSetWordBits))
}

func fdHas(set *unix.FdSet, h platform.Handle) bool {
	fd := int(h)
	return set.Bits[fd/fdSetWordBits]&(1<<(uint(fd)%uint(fdSetWordBits))) != 0
}

func toReadySet(handles []platform.Handle, set *unix.FdSet) map[platform.Handle]bool {
	out := make(map[platform.Handle]bool, len(handles))
	for _, h := range handles {
		if fdHas(set, h) {
			out[h] = true
		}
	}
	return out
}

// waitReadiness blocks in the POSIX select(2) call. timeoutSeconds <= 0
// blocks indefinitely, passing a NULL timeval rather than a zeroed one.
// This is the one function to replace if the level-triggered fd-set
// backend is ever swapped for epoll/kqueue; it inherits select(2)'s
// native FD_SETSIZE ceiling.
func waitReadiness(readH, writeH, excH []platform.Handle, timeoutSeconds int) (readReady, writeReady, excReady map[platform.Handle]bool, n int, err error) {
	var rset, wset, eset unix.FdSet
	fdZero(&rset)
	fdZero(&wset)
	fdZero(&eset)

	nfds := 0
	for _, h := range readH {
		fdAdd(&rset, h)
		if int(h)+1 > nfds {
			nfds = int(h) + 1
		}
	}
	for _, h := range writeH {
		fdAdd(&wset, h)
		if int(h)+1 > nfds {
			nfds = int(h) + 1
		}
	}
	for _, h := range excH {
		fdAdd(&eset, h)
		if int(h)+1 > nfds {
			nfds = int(h) + 1
		}
	}

	var tv *unix.Timeval
	if timeoutSeconds > 0 {
		t := unix.NsecToTimeval((time.Duration(timeoutSeconds) * time.Second).Nanoseconds())
		tv = &t
	}

	n, err = unix.Select(nfds, &rset, &wset, &eset, tv)
	if err != nil {
		return nil, nil, nil, n, err
	}

	return toReadySet(readH, &rset), toReadySet(writeH, &wset), toReadySet(excH, &eset), n, nil
}
