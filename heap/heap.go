package heap

import (
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/julgitt/Memory-Allocator/internal/align"
	"github.com/julgitt/Memory-Allocator/sbrk"
)

const numBuckets = 9

// nullAddr is the sentinel for "no block" everywhere a block address is
// tracked outside of the compressed in-block links (segregated index heads,
// Heap.last). The compressed links use their own negative-offset encoding;
// see freelink.go.
const nullAddr int32 = -1

// Heap is a single allocator instance: the segregated-index array, the
// boundary-tagged block region it indexes, and the sbrk.Provider it grows
// through. The zero value is not usable; construct with New.
type Heap struct {
	mem sbrk.Provider
	cfg Config

	idxOff int32 // offset of the segregated-index array within mem
	base   int32 // heap_base: address of the first real block
	end    int32 // heap_end: address of the epilogue
	last   int32 // address of the block immediately preceding the epilogue, or nullAddr

	log *slog.Logger
}

// New creates a Heap over a freshly obtained sbrk.Provider, laying out the
// segregated index, alignment pad, prologue, and epilogue (spec.md §4.4.5).
func New(mem sbrk.Provider, cfg Config) (*Heap, error) {
	h := &Heap{
		mem: mem,
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	a := cfg.alignment()

	// The segregated index is carved from the same primitive but is never
	// itself allocated from: it holds numBuckets 4-byte head addresses.
	idxBytes := align.Up(numBuckets*4, a)
	idxOff, err := mem.Grow(idxBytes)
	if err != nil {
		return nil, err
	}
	h.idxOff = idxOff
	for i := 0; i < numBuckets; i++ {
		h.setHead(i, nullAddr)
	}

	// Reserve 2A bytes for a 4-byte alignment pad, a used prologue block,
	// and the initial epilogue. The prologue is sized to exactly fill the
	// remainder of the 2A reservation (2A - 8 bytes), which puts heap_base
	// at A-4 (mod A) regardless of where the index array ended - so the
	// first real block's payload, 4 bytes past its header, always lands on
	// an A-byte boundary. See DESIGN.md for why this differs from the fixed
	// 20-byte prologue in the original source.
	padOff, err := mem.Grow(2 * a)
	if err != nil {
		return nil, err
	}
	prologueOff := padOff + 4
	prologueSize := 2*a - 8
	h.putHeader(prologueOff, prologueSize, true, false)

	h.base = prologueOff + prologueSize
	h.end = h.base
	h.last = nullAddr
	h.putHeader(h.end, 0, true, false)

	return h, nil
}

// SetLogger installs a structured logger for the debug surface (CheckHeap).
// No allocate/free/realloc path ever logs; passing nil restores the
// discarding default.
func (h *Heap) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h.log = l
}

// Alignment reports the configured alignment constant A.
func (h *Heap) Alignment() int32 { return h.cfg.alignment() }

// bytes returns the provider's current backing buffer. Must be re-fetched
// after any call that can grow the region; never retained across a Grow.
func (h *Heap) bytes() []byte { return h.mem.Bytes() }

func (h *Heap) getHead(i int) int32 {
	b := h.bytes()
	return int32(binary.LittleEndian.Uint32(b[h.idxOff+int32(i)*4:]))
}

func (h *Heap) setHead(i int, addr int32) {
	b := h.bytes()
	binary.LittleEndian.PutUint32(b[h.idxOff+int32(i)*4:], uint32(addr))
}
