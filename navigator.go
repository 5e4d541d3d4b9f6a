// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// next returns b's physical successor by adding its size. It is defined for
// every block except the epilogue, whose size of 0 terminates traversal —
// callers must not call next on the epilogue.
func (b block) next() block {
	return block(uintptr(b) + b.size())
}

// prevFooterPtr returns the address of the word immediately preceding b's
// header — the footer of b's physical predecessor when that predecessor is
// not minimum size.
func (b block) prevFooterPtr() *word {
	return (*word)(unsafe.Pointer(uintptr(b) - wordSize))
}

// prev returns b's physical predecessor. If b.prevMin() is set the
// predecessor is exactly minBlockSize away; otherwise its size is read from
// its footer. Correctness depends on the invariant that a footer is only
// ever read for a block known to be free and larger than minimum size — an
// allocated block's trailing bytes are user payload, not a footer.
func (b block) prev() block {
	if b.prevMin() {
		return block(uintptr(b) - minBlockSize)
	}
	size := extractSize(*b.prevFooterPtr())
	return block(uintptr(b) - size)
}
