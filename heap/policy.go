package heap

import (
	"math"

	"github.com/julgitt/Memory-Allocator/internal/align"
)

// Ptr is an opaque handle to a payload previously returned by Malloc,
// Realloc, or Calloc. The zero value, Null, stands in for the C NULL this
// allocator's surface mirrors (spec.md §6).
type Ptr int32

// Null is the sentinel "no allocation" value. Free(Null) and
// Realloc(Null, n) are defined no-ops/aliases per spec.md §7; it is never a
// value Malloc/Realloc/Calloc return on success, since the first real
// payload always lies past the index array, alignment pad, and prologue.
const Null Ptr = 0

func ptrToBlock(p Ptr) int32  { return int32(p) - 4 }
func blockToPtr(addr int32) Ptr { return Ptr(addr + 4) }

// Payload returns the user-visible bytes of the block p refers to. The
// returned slice is only valid until the next call that can grow the heap
// (Malloc, Realloc, Calloc); callers must not retain it across one.
func (h *Heap) Payload(p Ptr) []byte {
	if p == Null {
		return nil
	}
	addr := ptrToBlock(p)
	sz := h.blockSize(addr)
	b := h.bytes()
	return b[addr+4 : addr+sz]
}

// Malloc allocates a block of at least size bytes and returns a handle to
// its payload, or Null on out-of-memory. size == 0 returns Null without any
// side effect (spec.md §4.4, §7).
func (h *Heap) Malloc(size int32) Ptr {
	if size <= 0 {
		return Null
	}

	a := h.Alignment()
	asize := align.Up(size+4, a)

	if b, ok := h.findFit(asize); ok {
		h.place(b, asize)
		return blockToPtr(b)
	}

	extendBy := asize
	if h.last != nullAddr && h.blockFree(h.last) {
		extendBy -= h.blockSize(h.last)
	}
	b, err := h.extendHeap(extendBy)
	if err != nil {
		return Null
	}
	return blockToPtr(b)
}

// Free releases the block p refers to. Free(Null) is a no-op (spec.md §7).
func (h *Heap) Free(p Ptr) {
	if p == Null {
		return
	}
	addr := ptrToBlock(p)

	prevFreeBit := h.blockPrevFree(addr)
	h.makeBlock(addr, h.blockSize(addr), false, prevFreeBit)

	next := h.nextBlockAddr(addr)
	if prevFreeBit || h.blockFree(next) {
		h.coalesce(addr)
	} else {
		h.insertFree(addr)
	}
}

// Realloc resizes the block p refers to, preserving its contents up to the
// smaller of the old and new sizes. Realloc(Null, n) is Malloc(n);
// Realloc(p, 0) is Free(p) returning Null (spec.md §4.4, §7).
func (h *Heap) Realloc(p Ptr, newSize int32) Ptr {
	if p == Null {
		return h.Malloc(newSize)
	}
	if newSize <= 0 {
		h.Free(p)
		return Null
	}

	b := ptrToBlock(p)
	a := h.Alignment()
	asize := align.Up(newSize+4, a)
	prevFreeBit := h.blockPrevFree(b)

	next := h.nextBlockAddr(b)
	nextFree := h.blockFree(next)
	avail := h.blockSize(b)
	if nextFree {
		avail += h.blockSize(next)
	}

	if avail >= asize {
		changeLast := b == h.last || (nextFree && next == h.last)
		if nextFree {
			h.removeFree(next)
		}

		if avail-asize >= a {
			h.makeBlock(b, asize, true, prevFreeBit)
			tail := b + asize
			h.makeBlock(tail, avail-asize, false, false)
			h.insertFree(tail)
			if changeLast || tail > h.last {
				h.last = tail
			}
		} else {
			h.makeBlock(b, avail, true, prevFreeBit)
			if changeLast {
				h.last = b
			}
		}
		return p
	}

	// No room among B and its right neighbor. If B is the last block (or
	// its right neighbor is both free and last), the heap can be extended
	// in place instead of relocating.
	extendsInPlace := b == h.last || (nextFree && next == h.last)
	if extendsInPlace {
		need := asize - avail
		if nextFree {
			h.removeFree(next)
		}
		if _, err := h.mem.Grow(need); err != nil {
			if nextFree {
				h.insertFree(next)
			}
			return Null
		}
		h.makeBlock(b, asize, true, prevFreeBit)
		newEnd := b + asize
		h.putHeader(newEnd, 0, true, false)
		h.end = newEnd
		h.last = b
		return p
	}

	// Fall back to allocate + copy + free. The original block is left
	// completely untouched if the allocation fails (spec.md §5).
	newPtr := h.Malloc(newSize)
	if newPtr == Null {
		return Null
	}
	copyLen := h.blockSize(b) - 4
	dst := h.Payload(newPtr)
	src := h.Payload(p)
	copy(dst[:copyLen], src[:copyLen])
	h.Free(p)
	return newPtr
}

// Calloc allocates nmemb*size bytes and zero-fills them. It returns Null on
// overflow or out-of-memory. spec.md §9's Open Question about overflow is
// resolved here in favor of hardening: original_source/mm.c's nmemb*size
// truncates silently, but nothing about spec.md's semantics depends on that
// permissiveness, and returning Null is indistinguishable from OOM to a
// caller following the standard calloc contract.
func (h *Heap) Calloc(nmemb, size int32) Ptr {
	if nmemb < 0 || size < 0 {
		return Null
	}
	total := int64(nmemb) * int64(size)
	if total > math.MaxInt32 {
		return Null
	}

	p := h.Malloc(int32(total))
	if p == Null {
		return Null
	}
	clear(h.Payload(p))
	return p
}

// findFit performs a best-fit search starting at asize's own bucket and
// falling through to larger buckets, returning the smallest candidate found
// in the first bucket that holds a block of at least asize (spec.md §4.4.1).
// Ties resolve to the first candidate encountered.
func (h *Heap) findFit(asize int32) (int32, bool) {
	for i := bucketOf(asize); i < numBuckets; i++ {
		best := nullAddr
		var bestSize int32
		for p := h.getHead(i); p != nullAddr; p = h.freeNext(p) {
			sz := h.blockSize(p)
			if sz >= asize && (best == nullAddr || sz < bestSize) {
				best = p
				bestSize = sz
			}
		}
		if best != nullAddr {
			return best, true
		}
	}
	return nullAddr, false
}

// place removes the free block at b from its list and installs a used
// block of asize there, splitting off and re-inserting a free tail when the
// remainder is large enough to be its own block (spec.md §4.4.3).
func (h *Heap) place(b int32, asize int32) {
	h.removeFree(b)
	fsize := h.blockSize(b)
	prevFreeBit := h.blockPrevFree(b)

	if fsize-asize >= h.Alignment() {
		h.makeBlock(b, asize, true, prevFreeBit)
		tail := b + asize
		h.makeBlock(tail, fsize-asize, false, false)
		h.insertFree(tail)
		if tail > h.last {
			h.last = tail
		}
	} else {
		h.makeBlock(b, fsize, true, prevFreeBit)
	}
}

// coalesce merges the free block at b with any free neighbors and inserts
// the result into the segregated index, returning its (possibly new)
// address (spec.md §4.4.4).
func (h *Heap) coalesce(b int32) int32 {
	size := h.blockSize(b)
	prevFreeFlag := h.blockPrevFree(b)
	next := h.nextBlockAddr(b)
	nextFree := h.blockFree(next)

	changeLast := b == h.last || (nextFree && next == h.last)

	if nextFree {
		size += h.blockSize(next)
		h.removeFree(next)
	}
	if prevFreeFlag {
		prev := h.prevBlockAddr(b)
		size += h.blockSize(prev)
		h.removeFree(prev)
		b = prev
	}

	newPrevFreeBit := h.blockPrevFree(b)
	h.makeBlock(b, size, false, newPrevFreeBit)
	h.insertFree(b)

	if changeLast {
		h.last = b
	}
	return b
}

// extendHeap grows the region by nbytes via the sbrk.Provider and installs
// a used block over the new range, absorbing a free trailing block if one
// exists. Returns the address of the new block, or an error if growth
// failed - in which case no state is changed (spec.md §4.4.2, §5).
func (h *Heap) extendHeap(nbytes int32) (int32, error) {
	lastWasFree := h.last != nullAddr && h.blockFree(h.last)

	b := h.end
	if lastWasFree {
		b = h.last
	}
	prevFreeBit := h.blockPrevFree(b)

	totalSize := nbytes
	if lastWasFree {
		totalSize += h.blockSize(b)
	}

	if _, err := h.mem.Grow(nbytes); err != nil {
		return nullAddr, err
	}

	if lastWasFree {
		h.removeFree(b)
	}
	h.putHeader(b, totalSize, true, prevFreeBit)
	newEnd := b + totalSize
	h.putHeader(newEnd, 0, true, false)

	h.end = newEnd
	h.last = b
	return b, nil
}
