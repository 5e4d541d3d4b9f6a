// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckHeapUninitializedIsOK(t *testing.T) {
	var a Allocator
	require.True(t, a.CheckHeap(0))
}

func TestCheckHeapAfterOperations(t *testing.T) {
	a := newTestAllocator(t)
	require.True(t, a.CheckHeap(0))

	ptrs := make([]unsafe.Pointer, 0, 8)
	for i := 0; i < 8; i++ {
		p := a.Allocate(uintptr(16 * (i + 1)))
		require.NotNil(t, p)
		ptrs = append(ptrs, p)
		require.True(t, a.CheckHeap(0))
	}
	for _, p := range ptrs {
		a.Free(p)
		require.True(t, a.CheckHeap(0))
	}
}

func TestCheckHeapDetectsCorruptedHeader(t *testing.T) {
	a := newTestAllocator(t)
	p := a.Allocate(64)
	require.NotNil(t, p)
	b := payloadToBlock(p)

	// Corrupt the header's size field directly, bypassing the API, to
	// confirm checkHeap notices the resulting inconsistency.
	b.writeHeader(b.size()+dwordSize, true, b.prevAlloc(), b.prevMin())
	require.False(t, a.checkHeap())
}

func TestDumpHeapWritesWithoutDebug(t *testing.T) {
	a := newTestAllocator(t)
	a.Debug = false
	var sb strings.Builder
	a.DumpHeap(&sb)
	require.NotEmpty(t, sb.String())
}

func TestDumpHeapUninitialized(t *testing.T) {
	var a Allocator
	var sb strings.Builder
	a.DumpHeap(&sb)
	require.Contains(t, sb.String(), "not initialized")
}
