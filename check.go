// Copyright 2026 The Heapalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapalloc

import (
	"fmt"
	"io"
	"os"
	"unsafe"
)

// trace reports to stderr in the Debug-only style the teacher's own
// Fprintf-based trace hooks use; it is a no-op outside Debug mode, so
// release builds never log (spec.md §7: "the allocator does not log").
func (a *Allocator) trace(format string, args ...any) {
	if !a.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "heapalloc: "+format+"\n", args...)
}

// CheckHeap walks the whole managed heap and verifies every invariant in
// spec.md §3/§8. line is purely diagnostic, echoed into the panic message
// and trace output a Debug-mode failure produces — a caller typically
// passes its own source line, matching the reference allocator's
// mm_checkheap(__LINE__) convention.
func (a *Allocator) CheckHeap(line int) bool {
	ok := a.checkHeap()
	if !ok {
		a.trace("check_heap failed at line %d", line)
		if a.Debug {
			panic(fmt.Sprintf("heapalloc: check_heap failed at line %d", line))
		}
	}
	return ok
}

func (a *Allocator) checkHeap() bool {
	if !a.initialized {
		return true
	}

	lo, hi := a.ar.lo(), a.ar.hi()
	inRange := func(addr uintptr) bool { return addr >= lo && addr <= hi }

	prologueAddr := uintptr(a.heapFirst) - wordSize
	prologue := *(*word)(unsafe.Pointer(prologueAddr))
	if !extractAlloc(prologue) || extractSize(prologue) != 0 || !inRange(prologueAddr) {
		return false
	}

	var prev block
	freeCount := 0
	for b := a.heapFirst; b.size() > 0; b = b.next() {
		size := b.size()
		if size%dwordSize != 0 || size < minBlockSize {
			return false
		}
		if uintptr(b.payload())%dwordSize != 0 {
			return false
		}
		if !inRange(uintptr(b)) {
			return false
		}

		if !b.alloc() && size > minBlockSize {
			footer := *b.footerPtr()
			if extractSize(footer) != size || extractAlloc(footer) {
				return false
			}
		}

		if prev != 0 {
			if b != prev.next() {
				return false
			}
			if b.prevAlloc() != prev.alloc() {
				return false
			}
			if b.prevMin() != (prev.size() == minBlockSize) {
				return false
			}
			if !b.alloc() && !prev.alloc() {
				return false
			}
		}

		if !b.alloc() {
			if pf := a.free.prevOf(b); pf != 0 && pf.freeNext() != b {
				return false
			}
			if nf := b.freeNext(); nf != 0 && a.free.prevOf(nf) != b {
				return false
			}
			freeCount++
		}

		prev = b
	}

	epilogue := prev.next()
	if !epilogue.alloc() || epilogue.size() != 0 || !inRange(uintptr(epilogue)) {
		return false
	}
	if epilogue != a.epilogue {
		return false
	}

	remaining := freeCount
	for class := 0; class < numClasses; class++ {
		for it := a.free.heads[class]; it != 0; it = it.freeNext() {
			remaining--
			if remaining < 0 {
				return false
			}
			if !inRange(uintptr(it)) {
				return false
			}
			if classOf(it.size()) != class {
				return false
			}
			if it.alloc() {
				return false
			}
		}
	}
	return remaining == 0
}

// DumpHeap writes a line per physical block to w — size, allocation status
// and status bits — for interactive debugging. It is not part of the core
// algorithm (spec.md §1 explicitly keeps debug-only printing out of core
// scope) and performs no validation of its own; pair it with CheckHeap.
func (a *Allocator) DumpHeap(w io.Writer) {
	if !a.initialized {
		fmt.Fprintln(w, "heapalloc: not initialized")
		return
	}
	for b := a.heapFirst; ; b = b.next() {
		fmt.Fprintf(w, "block %#x: size=%d alloc=%v prev_alloc=%v prev_min=%v\n",
			uintptr(b), b.size(), b.alloc(), b.prevAlloc(), b.prevMin())
		if b.size() == 0 {
			break
		}
	}
}
