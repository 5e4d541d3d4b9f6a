// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// block is the address of a block's header word on the managed heap. It is
// a uintptr rather than a Go pointer because the memory it addresses lives
// outside the Go heap (reserved directly from the OS by arena.go) and is
// never subject to garbage collection or relocation.
type block uintptr

func (b block) headerPtr() *word { return (*word)(unsafe.Pointer(uintptr(b))) }

func (b block) header() word { return *b.headerPtr() }

func (b block) size() uintptr      { return extractSize(b.header()) }
func (b block) alloc() bool        { return extractAlloc(b.header()) }
func (b block) prevAlloc() bool    { return extractPrevAlloc(b.header()) }
func (b block) prevMin() bool      { return extractPrevMin(b.header()) }

// writeHeader never touches footer bytes.
func (b block) writeHeader(size uintptr, alloc, prevAlloc, prevMin bool) {
	*b.headerPtr() = pack(size, alloc, prevAlloc, prevMin)
}

// footerPtr returns the address of the last word of the block, valid only
// for blocks larger than the minimum size.
func (b block) footerPtr() *word {
	return (*word)(unsafe.Pointer(uintptr(b) + b.size() - wordSize))
}

// writeFooter duplicates size and alloc into the block's footer. It is a
// no-op for minimum-size blocks, which have no footer.
func (b block) writeFooter(size uintptr, alloc bool) {
	if b.size() <= minBlockSize {
		return
	}
	*b.footerPtr() = pack(size, alloc, false, false)
}

// payload returns the address immediately following the header.
func (b block) payload() unsafe.Pointer {
	return unsafe.Pointer(uintptr(b) + wordSize)
}

// payloadSize is the number of usable bytes in an allocated block's payload.
func (b block) payloadSize() uintptr { return b.size() - wordSize }

// payloadToBlock maps a payload pointer back to its owning block.
func payloadToBlock(p unsafe.Pointer) block {
	return block(uintptr(p) - wordSize)
}
