// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

// coalesce merges a just-marked-free block with whichever of its immediate
// physical neighbors are also free, then inserts the (possibly merged)
// result into its size class's list. It returns the block that now holds
// the merged free range, which may be b or its physical predecessor.
func (a *Allocator) coalesce(b block) block {
	size := b.size()
	next := b.next()

	prevAlloc := b.prevAlloc()
	nextAlloc := next.alloc()

	switch {
	case prevAlloc && nextAlloc: // Case 1: no merge.
		a.free.add(b)

	case prevAlloc && !nextAlloc: // Case 2: absorb next.
		a.free.remove(next)
		size += next.size()
		b.writeHeader(size, false, b.prevAlloc(), b.prevMin())
		b.writeFooter(size, false)
		a.free.add(b)

	case !prevAlloc && nextAlloc: // Case 3: absorb prev.
		prev := b.prev()
		a.free.remove(prev)
		size += prev.size()
		prev.writeHeader(size, false, prev.prevAlloc(), prev.prevMin())
		prev.writeFooter(size, false)
		b = prev
		a.free.add(b)

	default: // Case 4: absorb both.
		prev := b.prev()
		a.free.remove(prev)
		a.free.remove(next)
		size += prev.size() + next.size()
		prev.writeHeader(size, false, prev.prevAlloc(), prev.prevMin())
		prev.writeFooter(size, false)
		b = prev
		a.free.add(b)
	}

	// The block following the merged result now has a free predecessor.
	after := b.next()
	after.writeHeader(after.size(), after.alloc(), false, b.size() == minBlockSize)
	return b
}
