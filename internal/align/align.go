// Package align provides rounding helpers for the host-supplied alignment
// constant that the allocator is built against.
package align

// Up rounds n up to the next multiple of a. a must be a power of two and at
// least 8; behavior is otherwise undefined, matching the host contract in
// spec.md §6.
func Up(n, a int32) int32 {
	return (n + a - 1) &^ (a - 1)
}

// UpWords rounds the byte count n up to the next multiple of a and expresses
// the result in 4-byte words.
func UpWords(n, a int32) int32 {
	return Up(n, a) / 4
}
