// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestAllocator returns an initialized Allocator backed by a small
// reservation, suitable for tests that only need a handful of chunks.
func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	a := &Allocator{Reservation: 1 << 20}
	require.True(t, a.Init())
	t.Cleanup(func() { a.Close() })
	return a
}

func TestCoalesceCase1NoMerge(t *testing.T) {
	a := newTestAllocator(t)
	p1 := a.Allocate(24)
	p2 := a.Allocate(24)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	b1 := payloadToBlock(p1)
	b2 := payloadToBlock(p2)
	require.True(t, b2.prevAlloc()) // b1 (prev of b2) is allocated

	a.Free(p1)
	require.False(t, b1.alloc())
	require.False(t, b2.prevAlloc()) // b2's predecessor (b1) is now free

	require.True(t, a.CheckHeap(0))
}

func TestCoalesceCase2AbsorbNext(t *testing.T) {
	a := newTestAllocator(t)
	p1 := a.Allocate(24)
	p2 := a.Allocate(24)
	p3 := a.Allocate(24)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	require.NotNil(t, p3)

	b1 := payloadToBlock(p1)
	b2 := payloadToBlock(p2)

	a.Free(p2) // b2 alone free: case 1
	a.Free(p1) // b1 freed with b2 (next) free, prologue (prev) allocated: case 2, absorbs b2

	require.False(t, b1.alloc())
	require.True(t, b1.size() >= 2*adjustedSize(24)) // b1 now covers former b1+b2 range
	require.True(t, a.CheckHeap(0))
	_ = b2
}

func TestCoalesceCase3AbsorbPrev(t *testing.T) {
	a := newTestAllocator(t)
	p1 := a.Allocate(24)
	p2 := a.Allocate(24)
	p3 := a.Allocate(24)
	require.NotNil(t, p3)

	b1 := payloadToBlock(p1)

	a.Free(p1) // b1 alone free
	a.Free(p2) // b2 freed, prev (b1) free, next (b3) allocated: case 3, merges into b1

	merged := b1
	require.False(t, merged.alloc())
	require.True(t, merged.size() >= 2*adjustedSize(24))
	require.True(t, a.CheckHeap(0))
}

func TestCoalesceCase4AbsorbBoth(t *testing.T) {
	a := newTestAllocator(t)
	p1 := a.Allocate(24)
	p2 := a.Allocate(24)
	p3 := a.Allocate(24)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	require.NotNil(t, p3)

	b1 := payloadToBlock(p1)

	a.Free(p1)
	a.Free(p3) // b1 and b3 free, b2 still allocated, no merge between them yet
	a.Free(p2) // freeing b2 now sees both neighbors free: case 4

	merged := b1
	require.False(t, merged.alloc())
	require.True(t, merged.size() >= 3*adjustedSize(24))
	require.True(t, a.CheckHeap(0))
}

func TestCoalesceUpdatesSuccessorPrevMinBit(t *testing.T) {
	a := newTestAllocator(t)
	p1 := a.Allocate(8) // rounds to minBlockSize
	p2 := a.Allocate(24)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	b1 := payloadToBlock(p1)
	b2 := payloadToBlock(p2)
	require.Equal(t, minBlockSize, b1.size())

	a.Free(p1)
	require.True(t, b2.prevMin())
	require.True(t, a.CheckHeap(0))
}
