package heap

import "encoding/binary"

// A free block's payload carries two signed 32-bit sibling links at offsets
// 4 and 8 from its header: next_off and prev_off. Each is the distance, in
// 4-byte words, from heap_base to the linked block's header. A negative
// value denotes "null" - this compresses each link to 4 bytes instead of a
// native pointer, keeping the minimum block size at one alignment unit
// (header + two links + footer = 16 bytes when A = 16). See spec.md §3, §4.2.
const (
	nextLinkOff = 4
	prevLinkOff = 8
)

// encodeLink converts a block address into the signed word offset stored in
// a free-list link, or -1 if addr is nullAddr.
func (h *Heap) encodeLink(addr int32) int32 {
	if addr == nullAddr {
		return -1
	}
	return (addr - h.base) / 4
}

// decodeLink converts a stored word offset back into a block address, or
// nullAddr if the offset is negative.
func (h *Heap) decodeLink(off int32) int32 {
	if off < 0 {
		return nullAddr
	}
	return h.base + off*4
}

func (h *Heap) readLink(addr int32, fieldOff int32) int32 {
	b := h.bytes()
	return int32(binary.LittleEndian.Uint32(b[addr+fieldOff:]))
}

func (h *Heap) writeLink(addr int32, fieldOff int32, off int32) {
	b := h.bytes()
	binary.LittleEndian.PutUint32(b[addr+fieldOff:], uint32(off))
}

// freeNext returns the address of the next block on addr's free list, or
// nullAddr.
func (h *Heap) freeNext(addr int32) int32 {
	return h.decodeLink(h.readLink(addr, nextLinkOff))
}

// freePrev returns the address of the previous block on addr's free list,
// or nullAddr.
func (h *Heap) freePrev(addr int32) int32 {
	return h.decodeLink(h.readLink(addr, prevLinkOff))
}

// setFreeNext links addr's next pointer to x (nullAddr clears it).
func (h *Heap) setFreeNext(addr int32, x int32) {
	h.writeLink(addr, nextLinkOff, h.encodeLink(x))
}

// setFreePrev links addr's prev pointer to x (nullAddr clears it).
func (h *Heap) setFreePrev(addr int32, x int32) {
	h.writeLink(addr, prevLinkOff, h.encodeLink(x))
}
