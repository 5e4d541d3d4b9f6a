// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

// word is the unit a header or footer occupies.
type word uint64

const (
	wordSize = 8  // bytes
	dwordSize = 2 * wordSize // alignment unit

	// minBlockSize is the smallest possible block: header + one link word.
	minBlockSize = dwordSize

	// chunkSize is the amount the heap grows by when no fit is found.
	chunkSize = 1 << 12

	// numClasses is the number of segregated free lists.
	numClasses = 15

	// maxSearchDefault bounds the best-fit scan (spec §4.5/§9).
	maxSearchDefault = 10
)

const (
	allocMask     word = 0x1
	prevAllocMask word = 0x1 << 1
	prevMinMask   word = 0x1 << 2
	sizeMask      word = ^word(0xF)
)

// pack encodes size, alloc, prevAlloc and prevMin into a single header or
// footer word. size must already be a multiple of 16.
func pack(size uintptr, alloc, prevAlloc, prevMin bool) word {
	if size&0xF != 0 {
		panic("heapalloc: unaligned block size")
	}
	w := word(size)
	if alloc {
		w |= allocMask
	}
	if prevAlloc {
		w |= prevAllocMask
	}
	if prevMin {
		w |= prevMinMask
	}
	return w
}

func extractSize(w word) uintptr      { return uintptr(w & sizeMask) }
func extractAlloc(w word) bool        { return w&allocMask != 0 }
func extractPrevAlloc(w word) bool    { return w&prevAllocMask != 0 }
func extractPrevMin(w word) bool      { return w&prevMinMask != 0 }

// roundUp rounds size up to the next multiple of n, n a power of two.
func roundUp(size, n uintptr) uintptr { return (size + n - 1) &^ (n - 1) }

func maxUintptr(x, y uintptr) uintptr {
	if x > y {
		return x
	}
	return y
}
