//go:build linux

package sbrk

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// defaultInitialCap is the size of the first anonymous mapping. It is
// deliberately small; MmapRegion grows by doubling (via mremap) as the heap
// is extended.
const defaultInitialCap = 64 * 1024

// MmapRegion is a Provider backed by a real anonymous mmap mapping, grown
// with mremap as the logical heap extends. mremap may move the mapping, so
// offsets stay valid but earlier Bytes slices do not. Unlike Arena, bytes handed
// back by Grow live in genuine OS-paged memory rather than the Go heap.
type MmapRegion struct {
	mem  []byte // mapped capacity; len(mem) is the mapped size, not the logical size
	used int32  // logical length of the region (the "break")
}

// NewMmapRegion reserves an initial anonymous mapping and returns a Provider
// over it. The mapping starts logically empty; Grow extends it.
func NewMmapRegion() (*MmapRegion, error) {
	mem, err := unix.Mmap(-1, 0, defaultInitialCap,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("sbrk: mmap failed: %w", err)
	}
	return &MmapRegion{mem: mem}, nil
}

// Grow implements Provider.
func (r *MmapRegion) Grow(n int32) (int32, error) {
	if n < 0 {
		return 0, ErrOutOfMemory
	}
	base := r.used
	newUsed := base + n
	if int(newUsed) > len(r.mem) {
		newCap := len(r.mem) * 2
		if newCap < int(newUsed) {
			newCap = int(newUsed)
		}
		remapped, err := unix.Mremap(r.mem, newCap, unix.MREMAP_MAYMOVE)
		if err != nil {
			return 0, fmt.Errorf("%w: mremap failed: %v", ErrOutOfMemory, err)
		}
		r.mem = remapped
	}
	r.used = newUsed
	return base, nil
}

// Bytes implements Provider.
func (r *MmapRegion) Bytes() []byte { return r.mem[:r.used] }

// Len implements Provider.
func (r *MmapRegion) Len() int32 { return r.used }

// Close unmaps the region. The Provider must not be used afterward.
func (r *MmapRegion) Close() error {
	return unix.Munmap(r.mem)
}

// New returns the platform-preferred Provider: a real mmap-backed region on
// Linux.
func New() (Provider, error) {
	return NewMmapRegion()
}
