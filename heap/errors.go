package heap

import "errors"

// ErrCorruptHeap is returned by CheckHeap when a structural invariant does
// not hold. It is never returned by Malloc, Free, or Realloc: those paths
// perform no validation, matching spec.md §7.
var ErrCorruptHeap = errors.New("heap: invariant violation")
