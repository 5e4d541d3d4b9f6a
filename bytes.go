// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import "unsafe"

// Malloc is like Allocate except it returns a byte slice of exactly the
// requested length, so callers never need unsafe in their own code — the
// block's usable size, queryable via UsableSize, may be larger. The memory
// is not initialized. Malloc returns nil for a zero size.
func (a *Allocator) Malloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	p := a.Allocate(uintptr(size))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

// CallocBytes is like Malloc except the returned memory is zeroed.
func (a *Allocator) CallocBytes(n, m int) []byte {
	if n <= 0 || m <= 0 {
		return nil
	}
	p := a.Calloc(uintptr(n), uintptr(m))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), n*m)
}

// FreeBytes releases the memory backing b, as returned by Malloc, Realloc
// or CallocBytes. A nil or empty b is a silent no-op.
func (a *Allocator) FreeBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	a.Free(unsafe.Pointer(&b[0]))
}

// Realloc is like Reallocate except it takes and returns byte slices. The
// contents are unchanged up to the smaller of the old and new sizes. A nil
// b behaves like Malloc; size == 0 frees b and returns nil.
func (a *Allocator) Realloc(b []byte, size int) []byte {
	var p unsafe.Pointer
	if len(b) != 0 {
		p = unsafe.Pointer(&b[0])
	}
	if size <= 0 {
		a.Reallocate(p, 0)
		return nil
	}
	r := a.Reallocate(p, uintptr(size))
	if r == nil {
		return nil
	}
	return unsafe.Slice((*byte)(r), size)
}

// UsableSize reports the number of bytes usable at p, which must point to
// the payload of a block currently allocated by this package — the block's
// size can be larger than what was originally requested.
func UsableSize(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	return int(payloadToBlock(p).payloadSize())
}
