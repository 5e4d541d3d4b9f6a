// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package heapalloc

import (
	"golang.org/x/sys/windows"
)

// reserveRegion reserves size bytes of address space without committing any
// physical memory or pagefile space to it.
func reserveRegion(size uintptr) (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// commitRegion commits the [addr, addr+size) sub-range of a previously
// reserved region with read/write access.
func commitRegion(addr, size uintptr) error {
	if size == 0 {
		return nil
	}
	_, err := windows.VirtualAlloc(addr, size, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

// releaseRegion releases the entire reservation back to the OS.
func releaseRegion(addr, size uintptr) error {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
