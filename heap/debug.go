package heap

import "fmt"

// Stats summarizes a single CheckHeap pass.
type Stats struct {
	Blocks     int
	FreeBlocks int
	UsedBytes  int32
	FreeBytes  int32
}

// CheckHeap walks the block chain from heap_base to the epilogue in address
// order, verifying block sizes and bounds, the prevfree bits, header/footer
// equality on free blocks, that no two free blocks are adjacent, and that
// the epilogue is marked used. It does not walk the segregated free lists,
// so free-list membership and the last reference are not checked. When
// verbose is set it logs a summary at debug level. It returns the first
// violation found, wrapping ErrCorruptHeap, or nil if the heap is
// consistent. Grounded in original_source/mm.c's mm_checkheap.
func (h *Heap) CheckHeap(verbose bool) (Stats, error) {
	var st Stats
	addr := h.base
	prevFree := false

	for addr < h.end {
		size := h.blockSize(addr)
		if size <= 0 || size%4 != 0 {
			return st, fmt.Errorf("%w: block at %d has invalid size %d", ErrCorruptHeap, addr, size)
		}

		used := h.blockUsed(addr)
		gotPrevFree := h.blockPrevFree(addr)
		if gotPrevFree != prevFree {
			return st, fmt.Errorf("%w: block at %d has prevfree=%v, want %v", ErrCorruptHeap, addr, gotPrevFree, prevFree)
		}

		if !used {
			footer := h.rawHeader(h.blockFooterAddr(addr))
			if footer != h.rawHeader(addr) {
				return st, fmt.Errorf("%w: block at %d header/footer mismatch", ErrCorruptHeap, addr)
			}
			if prevFree {
				return st, fmt.Errorf("%w: two adjacent free blocks at or before %d", ErrCorruptHeap, addr)
			}
			st.FreeBlocks++
			st.FreeBytes += size
		} else {
			st.UsedBytes += size
		}

		st.Blocks++
		prevFree = !used
		addr = h.nextBlockAddr(addr)
	}

	if addr != h.end {
		return st, fmt.Errorf("%w: block chain overruns heap_end (%d != %d)", ErrCorruptHeap, addr, h.end)
	}
	if !h.blockUsed(h.end) {
		return st, fmt.Errorf("%w: epilogue at %d is not marked used", ErrCorruptHeap, h.end)
	}

	if verbose {
		h.log.Debug("heap check",
			"blocks", st.Blocks,
			"free_blocks", st.FreeBlocks,
			"used_bytes", st.UsedBytes,
			"free_bytes", st.FreeBytes,
		)
	}
	return st, nil
}
