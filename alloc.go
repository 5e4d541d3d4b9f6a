// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"errors"
	"unsafe"
)

// Allocator is a single-mutator dynamic memory allocator over a heap region
// it reserves and grows itself. Its zero value is usable: Allocate (and the
// operations built on it) calls Init on first use. New, or an explicit Init,
// initializes the heap up front and reports a failure of that first step.
//
// An Allocator must not be used concurrently from multiple goroutines
// without external synchronization.
type Allocator struct {
	// MaxSearch bounds the best-fit scan (spec §4.5/§9): at most this many
	// fitting candidate free blocks are considered, counted globally across
	// size classes, before find_fit settles for the best one seen so far.
	// Init replaces a zero or negative value with the default of 10; the
	// field is read on every search, so a later change takes effect.
	MaxSearch int

	// Reservation is the virtual address space (bytes) the arena reserves
	// up front. Zero means defaultReservation. Changing it after Init has
	// no effect.
	Reservation uintptr

	// Debug enables the consistency checker's trace sink: double frees and
	// CheckHeap failures are reported to stderr, and a CheckHeap failure
	// panics. Leave false in release builds, matching spec.md §7 ("in
	// release builds no defensive checks are performed").
	Debug bool

	ar          *arena
	epilogue    block
	heapFirst   block
	free        freeList
	initialized bool
	initErr     error
}

// New constructs and initializes an Allocator, returning an error only if
// the very first heap extension fails.
func New() (*Allocator, error) {
	a := &Allocator{}
	if !a.Init() {
		if a.initErr != nil {
			return nil, a.initErr
		}
		return nil, errors.New("heapalloc: initialization failed")
	}
	return a, nil
}

// Close releases the Allocator's heap region back to the OS. It's not
// necessary to Close an Allocator when exiting a process; a zero-value
// Allocator that was never initialized closes as a no-op.
func (a *Allocator) Close() error {
	if a.ar == nil {
		return nil
	}
	err := a.ar.close()
	*a = Allocator{MaxSearch: a.MaxSearch, Reservation: a.Reservation, Debug: a.Debug}
	return err
}

// Init idempotently establishes the heap's prologue/epilogue sentinels and
// performs the first chunk-sized extension. It returns false only if that
// initial extension fails.
func (a *Allocator) Init() bool {
	if a.initialized {
		return true
	}
	if a.MaxSearch <= 0 {
		a.MaxSearch = maxSearchDefault
	}

	ar, err := newArena(a.Reservation)
	if err != nil {
		a.initErr = err
		return false
	}
	a.ar = ar

	addr, err := ar.extend(2 * wordSize)
	if err != nil {
		a.initErr = err
		return false
	}
	*(*word)(unsafe.Pointer(addr)) = pack(0, true, true, false) // prologue footer
	epilogueAddr := addr + wordSize
	*(*word)(unsafe.Pointer(epilogueAddr)) = pack(0, true, true, false) // epilogue header

	a.epilogue = block(epilogueAddr)
	a.heapFirst = a.epilogue
	a.free = freeList{}

	if a.extendHeap(chunkSize) == 0 {
		a.initErr = errors.New("heapalloc: initial heap extension failed")
		return false
	}
	a.initialized = true
	return true
}

// extendHeap grows the heap by at least size bytes (rounded to alignment),
// rewrites the sentinel at the old epilogue's address into a free block,
// plants a fresh epilogue after it, coalesces with a free physical
// predecessor if one exists, and returns the resulting free block, or the
// null block on extension failure.
func (a *Allocator) extendHeap(size uintptr) block {
	size = roundUp(size, dwordSize)
	b := a.epilogue
	if _, err := a.ar.extend(size); err != nil {
		return 0
	}

	b.writeHeader(size, false, b.prevAlloc(), b.prevMin())
	b.writeFooter(size, false)

	newEpilogue := block(uintptr(b) + size)
	newEpilogue.writeHeader(0, true, false, false)
	a.epilogue = newEpilogue

	return a.coalesce(b)
}

// adjustedSize converts a requested payload size into the aligned block
// size that must be carved out for it: the header plus the payload,
// rounded up to the alignment unit, with a floor of minBlockSize.
func adjustedSize(size uintptr) uintptr {
	asize := roundUp(size+wordSize, dwordSize)
	if asize < minBlockSize {
		asize = minBlockSize
	}
	return asize
}

// findFit performs the bounded best-fit search: starting from the class
// asize maps to, it scans the classes upward and keeps the smallest block
// of at least asize bytes seen so far, the earlier one winning a tie. The
// scan stops once MaxSearch fitting candidates have been seen in total,
// across all classes scanned, or when the classes are exhausted.
func (a *Allocator) findFit(asize uintptr) block {
	var best block
	count := 0
	for class := classOf(asize); class < numClasses; class++ {
		for it := a.free.heads[class]; it != 0; it = it.freeNext() {
			if it.size() >= asize {
				if best == 0 || it.size() < best.size() {
					best = it
				}
				count++
			}
			if count >= a.MaxSearch {
				return best
			}
		}
	}
	return best
}

// splitBlock carves asize bytes off the front of an already-allocated
// block, turning the tail into a new free block when the remainder is at
// least minBlockSize; otherwise it just updates the physical successor's
// status bits to reflect that b is fully allocated.
func (a *Allocator) splitBlock(b block, asize uintptr) {
	blockSize := b.size()
	if blockSize-asize >= minBlockSize {
		b.writeHeader(asize, true, b.prevAlloc(), b.prevMin())

		rem := b.next()
		remSize := blockSize - asize
		rem.writeHeader(remSize, false, true, asize == minBlockSize)
		rem.writeFooter(remSize, false)
		a.free.add(rem)

		after := rem.next()
		after.writeHeader(after.size(), after.alloc(), false, remSize == minBlockSize)
		return
	}

	next := b.next()
	next.writeHeader(next.size(), next.alloc(), true, asize == minBlockSize)
}

// Allocate reserves size usable bytes and returns a pointer to them, or nil
// on out-of-memory or a zero size.
func (a *Allocator) Allocate(size uintptr) unsafe.Pointer {
	if !a.initialized {
		if !a.Init() {
			return nil
		}
	}
	if size == 0 {
		return nil
	}

	asize := adjustedSize(size)
	b := a.findFit(asize)
	if b == 0 {
		b = a.extendHeap(maxUintptr(asize, chunkSize))
		if b == 0 {
			return nil
		}
	}

	a.free.remove(b)
	b.writeHeader(b.size(), true, b.prevAlloc(), b.prevMin())
	a.splitBlock(b, asize)
	return b.payload()
}

// Free releases the block p points to. It is a silent no-op if p is nil or
// if the block it addresses is not currently allocated (double free) — see
// SPEC_FULL.md §11 for the Debug-mode trace carve-out.
func (a *Allocator) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	b := payloadToBlock(p)
	if !b.alloc() {
		a.trace("double free at %p", p)
		return
	}

	size := b.size()
	b.writeHeader(size, false, b.prevAlloc(), b.prevMin())
	b.writeFooter(size, false)
	a.coalesce(b)
}

// Reallocate resizes the allocation at p to size bytes, preserving content
// up to the smaller of the old and new sizes. A nil p behaves like
// Allocate; a zero size behaves like Free and returns nil.
func (a *Allocator) Reallocate(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	if p == nil {
		return a.Allocate(size)
	}
	if size == 0 {
		a.Free(p)
		return nil
	}

	b := payloadToBlock(p)
	next := b.next()
	nextFree := !next.alloc()
	asize := adjustedSize(size)

	total := b.size()
	if nextFree {
		total += next.size()
	}

	if total < asize {
		newPtr := a.Allocate(size)
		if newPtr == nil {
			return nil
		}
		n := b.payloadSize()
		if n > size {
			n = size
		}
		memcpyBytes(newPtr, p, n)
		a.Free(p)
		return newPtr
	}

	if nextFree {
		a.free.remove(next)
	}
	b.writeHeader(total, true, b.prevAlloc(), b.prevMin())
	a.splitBlock(b, asize)
	return b.payload()
}

// Calloc allocates n*m bytes and zeroes them, returning nil on multiplicative
// overflow or on out-of-memory.
func (a *Allocator) Calloc(n, m uintptr) unsafe.Pointer {
	if n == 0 || m == 0 {
		return a.Allocate(0)
	}
	total := n * m
	if total/n != m {
		return nil
	}
	p := a.Allocate(total)
	if p == nil {
		return nil
	}
	memsetZero(p, total)
	return p
}

func memsetZero(p unsafe.Pointer, n uintptr) {
	clear(unsafe.Slice((*byte)(p), int(n)))
}

func memcpyBytes(dst, src unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(dst), int(n)), unsafe.Slice((*byte)(src), int(n)))
}
