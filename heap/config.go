package heap

// Config parameterizes the host-supplied constant spec.md §6 leaves to the
// embedder: the alignment A. Sizes are rounded up to Alignment, and
// Alignment doubles as the minimum block size.
type Config struct {
	// Alignment is the payload alignment A. Must be a power of two and at
	// least 8; 16 is the only value this package has been exercised
	// against, matching spec.md's working assumption.
	Alignment int32
}

// DefaultConfig matches spec.md's assumption throughout: 16-byte alignment.
var DefaultConfig = Config{Alignment: 16}

func (c Config) alignment() int32 {
	if c.Alignment <= 0 {
		return DefaultConfig.Alignment
	}
	return c.Alignment
}
