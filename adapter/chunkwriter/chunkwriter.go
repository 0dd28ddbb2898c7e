// Package chunkwriter contains the default [domain.ChunkWriter]
// implementation.
//
// A [ChunkWriter] splits the requested size into chunks of at most the chunk
// size, the last one holding the remainder, and fills each chunk with fresh
// bytes read from its entropy source right before writing it. Only one chunk
// buffer is alive at a time, so memory use depends on the chunk size and not
// on the file size.
package chunkwriter

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"runtime/debug"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/randfile/domain"
)

// ChunkWriter implements [domain.ChunkWriter].
type ChunkWriter struct {
	entropy     io.Reader
	memoryLimit int64
}

// NewChunkWriter returns a new implementation of [domain.ChunkWriter]. By
// default random bytes are read from crypto/rand and the memory limit is the
// runtime soft memory limit.
func NewChunkWriter(opts ...Option) domain.ChunkWriter {
	c := ChunkWriter{
		entropy:     rand.Reader,
		memoryLimit: debug.SetMemoryLimit(-1),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Validate implements [domain.ChunkWriter].
func (c *ChunkWriter) Validate(totalSize, chunkSize int64) error {
	if totalSize < 0 {
		return domain.ErrInvalidArgument{Name: "total size", Value: totalSize, Reason: "must not be negative"}
	}
	if chunkSize <= 0 {
		return domain.ErrInvalidArgument{Name: "chunk size", Value: chunkSize, Reason: "must be positive"}
	}
	return nil
}

// Write implements [domain.ChunkWriter].
func (c *ChunkWriter) Write(ctx context.Context, job domain.WriteJob) (written int64, err error) {
	if err := c.Validate(job.TotalSize, job.ChunkSize); err != nil {
		return 0, err
	}
	if job.Destination == nil {
		return 0, domain.ErrInvalidArgument{Name: "destination", Value: nil, Reason: "must not be nil"}
	}

	chunk := 0
	defer func() {
		if cerr := job.Destination.Close(); cerr != nil {
			err = errors.Join(err, domain.ErrIO{Op: "close", Chunk: chunk, Written: written, Err: cerr})
		}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	if job.TotalSize == 0 {
		return 0, nil
	}

	buf, err := c.alloc(min(job.ChunkSize, job.TotalSize))
	if err != nil {
		return 0, err
	}

	full := job.TotalSize / job.ChunkSize
	remainder := job.TotalSize % job.ChunkSize
	chunks := full
	if remainder > 0 {
		chunks++
	}

	wr := contextio.NewWriter(ctx, job.Destination)
	for ; int64(chunk) < chunks; chunk++ {
		p := buf
		if int64(chunk) == full {
			p = buf[:remainder]
		}

		if _, err := io.ReadFull(c.entropy, p); err != nil {
			return written, domain.ErrIO{Op: "read", Chunk: chunk, Written: written, Err: err}
		}

		n, err := wr.Write(p)
		written += int64(n)
		if err == nil && n != len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return written, domain.ErrIO{Op: "write", Chunk: chunk, Written: written, Err: err}
		}
	}

	return written, nil
}

// alloc returns a buffer of n bytes. Requests above the memory limit and
// requests the runtime refuses to size are reported as
// [domain.ErrOutOfMemory]. Exhausting the heap is still fatal.
func (c *ChunkWriter) alloc(n int64) (buf []byte, err error) {
	if c.memoryLimit > 0 && n > c.memoryLimit {
		return nil, domain.ErrOutOfMemory{Requested: n, Limit: c.memoryLimit}
	}
	if int64(int(n)) != n {
		return nil, domain.ErrOutOfMemory{Requested: n}
	}
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, domain.ErrOutOfMemory{Requested: n}
		}
	}()
	return make([]byte, n), nil
}
