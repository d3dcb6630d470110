// Package heap implements a boundary-tagged, segregated-fit dynamic memory
// allocator over a single contiguous region obtained from a sbrk-like
// extension primitive (package sbrk).
//
// # Overview
//
// The heap is a flat sequence of blocks. Each block carries a 4-byte header
// packing its size with two flags: whether it is in use, and whether its
// immediate predecessor in address order is free. Free blocks additionally
// carry a 4-byte footer (a copy of the header, for backward coalescing) and
// two 4-byte heap-relative offsets in their payload that link them into one
// of nine segregated free lists, bucketed by size.
//
// # Allocator Interface
//
//   - Malloc(size): allocate size bytes, returns a payload pointer or Null.
//   - Free(ptr): release a block previously returned by Malloc/Realloc/Calloc.
//   - Realloc(ptr, size): resize a block in place when possible, else
//     allocate, copy, and free.
//   - Calloc(nmemb, size): allocate nmemb*size bytes, zeroed.
//
// # Size Classes
//
// Free blocks are bucketed into nine segregated lists:
//
//	Bucket 0: exactly 16 bytes
//	Bucket 1: exactly 32 bytes
//	Bucket 2: (32, 64]
//	Bucket 3: (64, 128]
//	Bucket 4: (128, 256]
//	Bucket 5: (256, 512]
//	Bucket 6: (512, 1024]
//	Bucket 7: (1024, 2048]
//	Bucket 8: > 2048
//
// Allocation performs a best-fit search within the size class matching the
// request, falling through to larger classes if the starting one has no
// block big enough.
//
// # Growth
//
// When no free block fits, the heap grows by asking its sbrk.Provider for
// more space (see package sbrk). The region only ever grows; memory is
// never returned to the OS.
//
// # Thread Safety
//
// Heap is not safe for concurrent use. Callers needing thread safety must
// synchronize externally.
//
// # Related Packages
//
//   - github.com/julgitt/Memory-Allocator/sbrk: the extension primitive
//     Heap grows through.
//   - github.com/julgitt/Memory-Allocator/internal/align: alignment
//     rounding helpers shared with the rest of the module.
package heap
