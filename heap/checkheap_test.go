package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckHeap_CleanAfterMixedActivity verifies that a sequence of
// allocations, frees, and reallocations leaves the heap in a state
// CheckHeap accepts, with accurate byte accounting.
func TestCheckHeap_CleanAfterMixedActivity(t *testing.T) {
	h := newTestHeap(t)

	a := h.Malloc(64)
	b := h.Malloc(128)
	c := h.Malloc(32)
	require.NotEqual(t, Null, a)
	require.NotEqual(t, Null, b)
	require.NotEqual(t, Null, c)

	h.Free(b)
	d := h.Realloc(c, 300)
	require.NotEqual(t, Null, d)
	h.Free(a)

	st, err := h.CheckHeap(false)
	require.NoError(t, err)
	assert.Equal(t, int32(0), st.UsedBytes%h.Alignment())
	assert.Equal(t, int32(0), st.FreeBytes%h.Alignment())
	assert.Equal(t, h.end-h.base, st.UsedBytes+st.FreeBytes)
}

// TestCheckHeap_DetectsHeaderFooterMismatch verifies that a corrupted
// footer on a free block is caught.
func TestCheckHeap_DetectsHeaderFooterMismatch(t *testing.T) {
	h := newTestHeap(t)

	p := h.Malloc(64)
	require.NotEqual(t, Null, p)
	h.Free(p)

	addr := ptrToBlock(p)
	footerAddr := h.blockFooterAddr(addr)
	b := h.bytes()
	b[footerAddr] ^= 0xFF

	_, err := h.CheckHeap(false)
	assert.ErrorIs(t, err, ErrCorruptHeap)
}
