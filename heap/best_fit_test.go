package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBestFit_PicksSmallestAdequateBlock verifies that among several free
// blocks in the same bucket, the smallest one that still fits is chosen
// over a larger or earlier-inserted one.
func TestBestFit_PicksSmallestAdequateBlock(t *testing.T) {
	h := newTestHeap(t)

	// All three land in the (128, 256] bucket. A used guard block between
	// each pair keeps them from coalescing when they are freed.
	big := h.Malloc(250)
	guard1 := h.Malloc(1)
	mid := h.Malloc(200)
	guard2 := h.Malloc(1)
	small := h.Malloc(140)
	require.NotEqual(t, Null, big)
	require.NotEqual(t, Null, guard1)
	require.NotEqual(t, Null, mid)
	require.NotEqual(t, Null, guard2)
	require.NotEqual(t, Null, small)

	h.Free(big)
	h.Free(mid)
	h.Free(small)

	got := h.Malloc(130)
	require.NotEqual(t, Null, got)

	assert.Equal(t, small, got, "best fit should pick the smallest block that still satisfies the request")

	assertHeapOK(t, h)
}

// TestBestFit_FallsThroughToLargerBucket verifies that when no block in the
// request's own bucket fits, the search continues into larger buckets.
func TestBestFit_FallsThroughToLargerBucket(t *testing.T) {
	h := newTestHeap(t)

	tooSmall1 := h.Malloc(40) // rounds to a 48-byte block, bucket (32,64]
	guard1 := h.Malloc(1)     // used guard, keeps the free blocks apart
	tooSmall2 := h.Malloc(44) // also rounds to 48 bytes, same bucket
	guard2 := h.Malloc(1)     // used guard, keeps the free blocks apart
	fits := h.Malloc(300)     // rounds to 304 bytes, bucket (256,512]
	require.NotEqual(t, Null, tooSmall1)
	require.NotEqual(t, Null, guard1)
	require.NotEqual(t, Null, tooSmall2)
	require.NotEqual(t, Null, guard2)
	require.NotEqual(t, Null, fits)

	h.Free(tooSmall1)
	h.Free(tooSmall2)
	h.Free(fits)

	// Rounds to exactly 64 bytes - still bucket (32,64], but bigger than
	// either free block there, so the search must fall through.
	got := h.Malloc(60)
	require.NotEqual(t, Null, got)

	assert.Equal(t, fits, got)

	assertHeapOK(t, h)
}

// TestBestFit_SplitsOversizedBlock verifies that a fit with enough leftover
// space is split, leaving a free remainder block.
func TestBestFit_SplitsOversizedBlock(t *testing.T) {
	h := newTestHeap(t)

	p := h.Malloc(1000)
	require.NotEqual(t, Null, p)
	h.Free(p)

	got := h.Malloc(32)
	require.NotEqual(t, Null, got)
	assert.Equal(t, p, got)

	addr := ptrToBlock(got)
	// 1000 rounds to 1008; 32 rounds to 48; plenty of room to split.
	assert.Less(t, h.blockSize(addr), int32(1008))

	next := h.nextBlockAddr(addr)
	assert.True(t, h.blockFree(next), "remainder after the split must be free")

	assertHeapOK(t, h)
}
