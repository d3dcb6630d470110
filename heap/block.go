package heap

import "encoding/binary"

// Each block starts with a 4-byte header packing its size (always a
// multiple of 4, so the low two bits are free) with two flags: whether the
// block itself is in use, and whether its immediate predecessor in address
// order is free. Free blocks carry an identical 4-byte footer immediately
// before their successor, enabling backward traversal without every block
// needing one. See spec.md §3-§4.1.
const (
	flagUsed     uint32 = 0x1
	flagPrevFree uint32 = 0x2
	sizeMask     uint32 = ^uint32(0x3)
)

func (h *Heap) rawHeader(addr int32) uint32 {
	b := h.bytes()
	return binary.LittleEndian.Uint32(b[addr:])
}

func (h *Heap) putHeader(addr int32, size int32, used, prevFree bool) {
	v := uint32(size) & sizeMask
	if used {
		v |= flagUsed
	}
	if prevFree {
		v |= flagPrevFree
	}
	b := h.bytes()
	binary.LittleEndian.PutUint32(b[addr:], v)
}

// blockSize returns the total size in bytes of the block at addr, header
// included.
func (h *Heap) blockSize(addr int32) int32 {
	return int32(h.rawHeader(addr) & sizeMask)
}

// blockUsed reports whether the block at addr is in use.
func (h *Heap) blockUsed(addr int32) bool {
	return h.rawHeader(addr)&flagUsed != 0
}

// blockFree reports whether the block at addr is free.
func (h *Heap) blockFree(addr int32) bool {
	return !h.blockUsed(addr)
}

// blockPrevFree reports whether addr's immediate predecessor in address
// order is free.
func (h *Heap) blockPrevFree(addr int32) bool {
	return h.rawHeader(addr)&flagPrevFree != 0
}

func (h *Heap) setBlockPrevFree(addr int32) {
	b := h.bytes()
	v := binary.LittleEndian.Uint32(b[addr:]) | flagPrevFree
	binary.LittleEndian.PutUint32(b[addr:], v)
}

func (h *Heap) clearBlockPrevFree(addr int32) {
	b := h.bytes()
	v := binary.LittleEndian.Uint32(b[addr:]) &^ flagPrevFree
	binary.LittleEndian.PutUint32(b[addr:], v)
}

// blockFooterAddr returns the address of the footer word of the free block
// at addr (the last 4 bytes of the block).
func (h *Heap) blockFooterAddr(addr int32) int32 {
	return addr + h.blockSize(addr) - 4
}

// nextBlockAddr returns the address of the block immediately following addr
// in address order. This is always a valid header - either a real block or
// the epilogue - because the epilogue sentinel is always present at
// heap_end (spec.md §3 "forward traversal ... eventually reaches the
// epilogue").
func (h *Heap) nextBlockAddr(addr int32) int32 {
	return addr + h.blockSize(addr)
}

// prevBlockAddr returns the address of the block immediately preceding addr
// in address order. Only valid when blockPrevFree(addr) holds; callers must
// gate on that before calling (spec.md §4.1).
func (h *Heap) prevBlockAddr(addr int32) int32 {
	footer := h.rawHeader(addr - 4)
	return addr - int32(footer&sizeMask)
}

// makeBlock writes the boundary tag for a block of the given size, used
// state, and prevFree bit (the bit describing addr's own predecessor, which
// the caller is responsible for having determined ahead of time; makeBlock
// does not infer it). It then enforces the prevfree invariant on addr's
// successor: used blocks clear it, free blocks set it and also receive a
// footer, since free blocks must carry one for backward coalescing.
func (h *Heap) makeBlock(addr int32, size int32, used, prevFree bool) {
	h.putHeader(addr, size, used, prevFree)

	next := addr + size
	if used {
		h.clearBlockPrevFree(next)
		return
	}
	h.setBlockPrevFree(next)
	// Footer mirrors the header bit-for-bit (spec.md §8: "header(F)
	// bit-for-bit equals footer(F)").
	b := h.bytes()
	binary.LittleEndian.PutUint32(b[h.blockFooterAddr(addr):], h.rawHeader(addr))
}
