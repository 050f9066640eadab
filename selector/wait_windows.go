//go:build windows

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
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bibhas2/velar/platform"
)

// x/sys/windows does not export WSAPoll, so it is loaded from
// ws2_32.dll directly, with its pollfd layout and event masks declared
// here.
var (
	modws2_32   = windows.NewLazySystemDLL("ws2_32.dll")
	procWSAPoll = modws2_32.NewProc("WSAPoll")
)

// wsaPollFd mirrors Winsock's WSAPOLLFD.
type wsaPollFd struct {
	fd      uintptr
	events  int16
	revents int16
}

const (
	pollErr    = 0x0001
	pollHup    = 0x0002
	pollWrNorm = 0x0010
	pollRdNorm = 0x0100
)

// waitReadiness blocks in WSAPoll, the Winsock analogue of select(2):
// still one level-triggered blocking call, just addressed by
// handle/event-mask pairs instead of an FD_SET bitmask, which
// sidesteps FD_SETSIZE on this dialect entirely.
func waitReadiness(readH, writeH, excH []platform.Handle, timeoutSeconds int) (readReady, writeReady, excReady map[platform.Handle]bool, n int, err error) {
	order := make([]platform.Handle, 0, len(readH)+len(writeH)+len(excH))
	index := make(map[platform.Handle]int, len(order))

	add := func(h platform.Handle) int {
		if i, ok := index[h]; ok {
			return i
		}
		i := len(order)
		order = append(order, h)
		index[h] = i
		return i
	}
	for _, h := range readH {
		add(h)
	}
	for _, h := range writeH {
		add(h)
	}
	for _, h := range excH {
		add(h)
	}

	fds := make([]wsaPollFd, len(order))
	for i, h := range order {
		fds[i].fd = uintptr(h)
	}
	for _, h := range readH {
		fds[index[h]].events |= pollRdNorm
	}
	for _, h := range writeH {
		fds[index[h]].events |= pollWrNorm
	}
	// A pending connect's failure surfaces through POLLERR/POLLHUP in
	// revents; those are always reported and cannot be requested in
	// events, so the exception set adds no event bits here.

	timeout := int32(-1)
	if timeoutSeconds > 0 {
		timeout = int32(timeoutSeconds) * 1000
	}

	var fdsPtr unsafe.Pointer
	if len(fds) > 0 {
		fdsPtr = unsafe.Pointer(&fds[0])
	}
	r, _, errno := procWSAPoll.Call(uintptr(fdsPtr), uintptr(len(fds)), uintptr(timeout))
	ready := int(int32(r))
	if ready < 0 {
		return nil, nil, nil, ready, errno
	}

	readReady = make(map[platform.Handle]bool)
	writeReady = make(map[platform.Handle]bool)
	excReady = make(map[platform.Handle]bool)
	for i, h := range order {
		re := fds[i].revents
		if re&pollRdNorm != 0 {
			readReady[h] = true
		}
		if re&pollWrNorm != 0 {
			writeReady[h] = true
		}
		if re&(pollErr|pollHup) != 0 {
			excReady[h] = true
		}
	}
	return readReady, writeReady, excReady, ready, nil
}
