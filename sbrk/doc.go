// Package sbrk provides the monotonic heap-growth primitive the allocator in
// package heap is built on top of: a single contiguous region that can only
// be extended, never shrunk or returned to the OS (spec.md §1, §6).
//
// Two implementations are provided:
//
//   - Arena, a portable Provider backed by a plain Go byte slice. Growth is a
//     slice append; there is no real paging underneath.
//   - on Linux, a Provider backed by a real anonymous mmap region that is
//     grown with mremap, which may move it, as the logical heap extends
//     (sbrk_unix.go).
//
// New returns whichever of these fits the current platform, so callers that
// don't care about the distinction can just use New.
package sbrk
