// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"fmt"
	"os"
)

// defaultReservation bounds how much virtual address space an arena asks
// the OS to reserve up front. Only the prefix actually extended into is
// ever committed to physical memory/pagefile — this is the Go-native
// analogue of a process break: one growable mapping standing in for sbrk.
const defaultReservation = 1 << 30 // 1 GiB

// arena is the heap-extender primitive spec.md §6 names as an external
// collaborator. It reserves a single contiguous virtual region once and
// grows the "managed heap" within it by bumping a brk offset, committing
// whatever additional OS pages that offset now covers.
type arena struct {
	base  uintptr // address of the reservation
	cap   uintptr // total reserved bytes
	brk   uintptr // bytes currently extended into, from base
	pgSize uintptr
}

func newArena(reservation uintptr) (*arena, error) {
	if reservation == 0 {
		reservation = defaultReservation
	}
	pg := uintptr(os.Getpagesize())
	reservation = roundUp(reservation, pg)
	base, err := reserveRegion(reservation)
	if err != nil {
		return nil, fmt.Errorf("heapalloc: reserve %d bytes: %w", reservation, err)
	}
	return &arena{base: base, cap: reservation, pgSize: pg}, nil
}

// extend grows the managed heap by n bytes (n must be 16-aligned) and
// returns the address of the newly added range.
func (a *arena) extend(n uintptr) (uintptr, error) {
	if n&0xF != 0 {
		return 0, fmt.Errorf("heapalloc: extend amount %d is not 16-aligned", n)
	}
	if a.brk+n > a.cap {
		return 0, fmt.Errorf("heapalloc: arena exhausted: %d+%d > %d", a.brk, n, a.cap)
	}
	newBrk := roundUp(a.brk+n, a.pgSize)
	if newBrk > a.cap {
		newBrk = a.cap
	}
	committedUpTo := roundUp(a.brk, a.pgSize)
	if newBrk > committedUpTo {
		if err := commitRegion(a.base+committedUpTo, newBrk-committedUpTo); err != nil {
			return 0, fmt.Errorf("heapalloc: commit %d bytes: %w", newBrk-committedUpTo, err)
		}
	}
	addr := a.base + a.brk
	a.brk += n
	return addr, nil
}

func (a *arena) lo() uintptr { return a.base }

func (a *arena) hi() uintptr {
	if a.brk == 0 {
		return a.base
	}
	return a.base + a.brk - 1
}

// close releases the arena's reservation back to the OS. Not calling close
// is safe — like the teacher's Allocator, it's never necessary to tear an
// Allocator down before process exit.
func (a *arena) close() error {
	if a.base == 0 {
		return nil
	}
	err := releaseRegion(a.base, a.cap)
	*a = arena{}
	return err
}
