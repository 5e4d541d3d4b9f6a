// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd

package heapalloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// reserveRegion maps size bytes of address space with no access rights.
// Nothing is committed to physical memory until commitRegion is called on a
// sub-range.
func reserveRegion(size uintptr) (uintptr, error) {
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, err
	}
	return uintptr(unsafe.Pointer(&b[0])), nil
}

// commitRegion grants read/write access to the [addr, addr+size) sub-range
// of a previously reserved region.
func commitRegion(addr, size uintptr) error {
	if size == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
	return unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE)
}

// releaseRegion unmaps the entire reservation.
func releaseRegion(addr, size uintptr) error {
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
	return unix.Munmap(b)
}
