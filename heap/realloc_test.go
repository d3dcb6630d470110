package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRealloc_NullActsAsMalloc verifies Realloc(Null, n) behaves like
// Malloc(n).
func TestRealloc_NullActsAsMalloc(t *testing.T) {
	h := newTestHeap(t)

	p := h.Realloc(Null, 64)
	require.NotEqual(t, Null, p)
	assert.GreaterOrEqual(t, len(h.Payload(p)), 64)

	assertHeapOK(t, h)
}

// TestRealloc_ZeroSizeActsAsFree verifies Realloc(p, 0) frees p and returns
// Null.
func TestRealloc_ZeroSizeActsAsFree(t *testing.T) {
	h := newTestHeap(t)

	p := h.Malloc(64)
	require.NotEqual(t, Null, p)
	addr := ptrToBlock(p)

	got := h.Realloc(p, 0)

	assert.Equal(t, Null, got)
	assert.True(t, h.blockFree(addr))

	assertHeapOK(t, h)
}

// TestRealloc_ShrinkSplitsTail verifies that shrinking a block that leaves
// enough slack splits off and frees the remainder in place.
func TestRealloc_ShrinkSplitsTail(t *testing.T) {
	h := newTestHeap(t)

	p := h.Malloc(500)
	require.NotEqual(t, Null, p)
	addr := ptrToBlock(p)
	origSize := h.blockSize(addr)

	got := h.Realloc(p, 32)
	require.Equal(t, p, got, "shrinking in place keeps the same pointer")

	assert.Less(t, h.blockSize(addr), origSize)
	assert.True(t, h.blockUsed(addr))

	assertHeapOK(t, h)
}

// TestRealloc_GrowIntoFreeRightNeighbor verifies that growing into an
// adjacent free block happens in place without relocating.
func TestRealloc_GrowIntoFreeRightNeighbor(t *testing.T) {
	h := newTestHeap(t)

	a := h.Malloc(64)
	b := h.Malloc(64)
	require.NotEqual(t, Null, a)
	require.NotEqual(t, Null, b)
	h.Free(b)

	got := h.Realloc(a, 100)
	require.Equal(t, a, got, "growing into the free right neighbor keeps the same pointer")

	addr := ptrToBlock(a)
	assert.True(t, h.blockUsed(addr))
	assert.GreaterOrEqual(t, h.blockSize(addr)-4, int32(100))

	assertHeapOK(t, h)
}

// TestRealloc_GrowRelocatesAndPreservesData verifies that when in-place
// growth is impossible, realloc falls back to allocate+copy+free and the
// original bytes survive the move.
func TestRealloc_GrowRelocatesAndPreservesData(t *testing.T) {
	h := newTestHeap(t)

	a := h.Malloc(32)
	require.NotEqual(t, Null, a)
	payload := h.Payload(a)
	for i := range payload {
		payload[i] = byte(i + 1)
	}

	// Keep a's right neighbor used and a itself not last, so growth can't
	// happen in place.
	b := h.Malloc(32)
	require.NotEqual(t, Null, b)

	got := h.Realloc(a, 4096)
	require.NotEqual(t, Null, got)

	newPayload := h.Payload(got)
	for i := 0; i < 32; i++ {
		assert.Equal(t, byte(i+1), newPayload[i])
	}
	assert.True(t, h.blockUsed(ptrToBlock(b)), "unrelated block untouched")

	assertHeapOK(t, h)
}

// TestRealloc_ExtendsHeapWhenBlockIsLast verifies that growing the last
// block past what's available extends the heap in place rather than
// relocating.
func TestRealloc_ExtendsHeapWhenBlockIsLast(t *testing.T) {
	h := newTestHeap(t)

	p := h.Malloc(64)
	require.NotEqual(t, Null, p)
	require.Equal(t, ptrToBlock(p), h.last)

	before := h.end
	got := h.Realloc(p, 4096)

	require.Equal(t, p, got, "extending the last block in place keeps the same pointer")
	assert.Greater(t, h.end, before)

	assertHeapOK(t, h)
}
