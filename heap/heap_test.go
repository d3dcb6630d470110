package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julgitt/Memory-Allocator/sbrk"
)

// newTestHeap returns a fresh 16-byte-aligned Heap over a portable Arena,
// verifying the heap is structurally sound before handing it to the caller.
func newTestHeap(t *testing.T) *Heap {
	t.Helper()
	h, err := New(sbrk.NewArena(4096), DefaultConfig)
	require.NoError(t, err)
	assertHeapOK(t, h)
	return h
}

func assertHeapOK(t *testing.T, h *Heap) Stats {
	t.Helper()
	st, err := h.CheckHeap(false)
	require.NoError(t, err)
	return st
}
