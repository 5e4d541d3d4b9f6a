// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heapalloc implements a general-purpose dynamic memory allocator
// over a single contiguous, monotonically-growing heap region.
//
// The allocator exposes the four classic operations — Allocate, Free,
// Reallocate, Calloc — over raw byte ranges with 16-byte payload alignment.
// It is the kind of allocator one implements beneath a C library or a
// language runtime, reimplemented here as a standalone Go engine over a
// virtual-memory region this package reserves and grows itself.
//
// Block layout
//
// Every block on the heap begins with a single 8-byte header word encoding
// the block's size (16-aligned, in the high 60 bits) and three status bits:
// whether the block itself is allocated, whether its physical predecessor is
// allocated, and whether its physical predecessor is exactly minimum size.
// Free blocks larger than the minimum also carry a footer duplicating size
// and alloc bit, enabling O(1) backward navigation; free blocks of exactly
// minimum size (16 bytes total) carry neither a "prev" link pointer nor a
// footer — only a header and one forward link word, recovered for backward
// traversal by walking the block's size-class list from the head.
//
// Free-block management
//
// Free blocks are kept on 15 segregated, size-class doubly-linked lists.
// Allocation does a bounded best-fit search capped at a fixed number of
// candidates; deallocation immediately coalesces with any free physical
// neighbors using the header/footer boundary tags, so no two physically
// adjacent blocks are ever both free.
//
// Concurrency
//
// An Allocator assumes a single mutator; it performs no locking of its own.
// Callers that need concurrent access must serialize it themselves.
package heapalloc
