// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"unsafe"

	"github.com/cznic/mathutil"
)

// A free block overlays an intrusive doubly-linked list node on its own
// payload: blocks larger than the minimum size carry both a next and a prev
// pointer in their first 16 payload bytes and are unlinked in O(1); blocks
// of exactly minimum size have room for only a next pointer, so finding
// their predecessor costs a linear walk of the block's size-class list.

func (b block) nextFreePtr() *block {
	return (*block)(b.payload())
}

func (b block) prevFreePtr() *block {
	return (*block)(unsafe.Pointer(uintptr(b) + wordSize + wordSize))
}

func (b block) freeNext() block {
	return *b.nextFreePtr()
}

func (b block) setFreeNext(n block) {
	*b.nextFreePtr() = n
}

func (b block) setFreePrev(p block) {
	if b.size() <= minBlockSize {
		return
	}
	*b.prevFreePtr() = p
}

// freeList is the segregated size-class free-block manager: numClasses
// doubly-linked LIFO lists, keyed by classOf(size).
type freeList struct {
	heads [numClasses]block
}

// classOf maps a block size to its segregated-list index: class 0 holds
// blocks of exactly minBlockSize; class i>=1 holds sizes in the range
// (16*2^(i-1), 16*2^i], with the top class absorbing all larger sizes.
func classOf(size uintptr) int {
	if size <= minBlockSize {
		return 0
	}
	n := int(size / dwordSize)
	class := mathutil.BitLen(n - 1)
	if class >= numClasses {
		class = numClasses - 1
	}
	return class
}

// blockClass returns the class a free block currently belongs to.
func blockClass(b block) int { return classOf(b.size()) }

// add inserts b at the head of its size class's list (LIFO).
func (fl *freeList) add(b block) {
	class := blockClass(b)
	head := fl.heads[class]
	b.setFreeNext(head)
	b.setFreePrev(0)
	if head != 0 {
		head.setFreePrev(b)
	}
	fl.heads[class] = b
}

// remove unlinks b from its size class's list in O(1) when b carries both
// pointers; minimum-size blocks require a linear predecessor scan first.
func (fl *freeList) remove(b block) {
	class := blockClass(b)
	prev := fl.prevOf(b)
	next := b.freeNext()
	if prev != 0 {
		prev.setFreeNext(next)
	} else {
		fl.heads[class] = next
	}
	if next != 0 {
		next.setFreePrev(prev)
	}
}

// prevOf returns b's predecessor in its size class's list. Non-minimum
// blocks store this directly; minimum blocks require walking the class
// list from the head until b is found.
func (fl *freeList) prevOf(b block) block {
	if b.size() > minBlockSize {
		return *b.prevFreePtr()
	}
	var prev block
	for it := fl.heads[blockClass(b)]; it != 0; it = it.freeNext() {
		if it == b {
			return prev
		}
		prev = it
	}
	return 0
}

func (fl *freeList) empty(class int) bool { return fl.heads[class] == 0 }
