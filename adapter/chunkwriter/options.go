package chunkwriter

import "io"

// WithEntropy sets the reader that provides random bytes. The reader is used
// by a single Write at a time, so it does not need to be goroutine-safe
// unless the ChunkWriter is shared.
func WithEntropy(r io.Reader) Option {
	return func(c *ChunkWriter) {
		c.entropy = r
	}
}

// WithMemoryLimit sets the largest chunk buffer, in bytes, the writer will
// allocate. Zero or a negative value disables the check.
func WithMemoryLimit(l int64) Option {
	return func(c *ChunkWriter) {
		c.memoryLimit = l
	}
}

// Option configures behavior through the functional options pattern.
type Option func(*ChunkWriter)
