// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// freeBlocks lays out n independent free blocks of the given size in their
// own buffers (no physical adjacency implied — these tests only exercise
// list linkage, not coalescing) and returns them in allocation order.
func freeBlocks(t *testing.T, size uintptr, n int) []block {
	t.Helper()
	blocks := make([]block, n)
	for i := range blocks {
		b, _ := testBlock(t, int(size))
		b.writeHeader(size, false, true, false)
		if size > minBlockSize {
			b.writeFooter(size, false)
		}
		blocks[i] = b
	}
	return blocks
}

func TestFreeListLIFOOrder(t *testing.T) {
	var fl freeList
	blocks := freeBlocks(t, 32, 3)
	for _, b := range blocks {
		fl.add(b)
	}
	class := classOf(32)
	require.Equal(t, blocks[2], fl.heads[class])
	require.Equal(t, blocks[1], fl.heads[class].freeNext())
	require.Equal(t, blocks[0], fl.heads[class].freeNext().freeNext())
	require.Equal(t, block(0), blocks[0].freeNext())
}

func TestFreeListRemoveMiddle(t *testing.T) {
	var fl freeList
	blocks := freeBlocks(t, 32, 3)
	for _, b := range blocks {
		fl.add(b)
	}
	fl.remove(blocks[1]) // middle of the list: blocks[2] -> blocks[1] -> blocks[0]
	class := classOf(32)
	require.Equal(t, blocks[2], fl.heads[class])
	require.Equal(t, blocks[0], fl.heads[class].freeNext())
	require.Equal(t, block(0), blocks[0].freeNext())
}

func TestFreeListRemoveHead(t *testing.T) {
	var fl freeList
	blocks := freeBlocks(t, 32, 2)
	fl.add(blocks[0])
	fl.add(blocks[1])
	fl.remove(blocks[1])
	require.Equal(t, blocks[0], fl.heads[classOf(32)])
}

func TestFreeListMinimumBlockPredecessorWalk(t *testing.T) {
	var fl freeList
	blocks := freeBlocks(t, minBlockSize, 3)
	for _, b := range blocks {
		fl.add(b)
	}
	// Minimum blocks carry no prev pointer: removing the middle one must
	// still work via the linear class-list scan.
	fl.remove(blocks[1])
	class := classOf(minBlockSize)
	require.Equal(t, blocks[2], fl.heads[class])
	require.Equal(t, blocks[0], fl.heads[class].freeNext())
}

func TestClassOfMatchesBlockClass(t *testing.T) {
	for _, size := range []uintptr{16, 32, 48, 64, 128, 4096} {
		b, _ := testBlock(t, int(size))
		b.writeHeader(size, false, true, false)
		require.Equal(t, classOf(size), blockClass(b))
	}
}
