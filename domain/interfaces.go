package domain

import (
	"context"
	"io"
	"os"
	"time"
)

// ChunkWriter fills a sink with random content in bounded-size chunks.
type ChunkWriter interface {
	// Write sends exactly job.TotalSize random bytes to job.Destination
	// and closes it. It returns the number of bytes accepted by the
	// destination, which is smaller than job.TotalSize only on error.
	Write(ctx context.Context, job WriteJob) (int64, error)
	// Validate reports whether Write would accept the given sizes, without
	// touching any sink.
	Validate(totalSize, chunkSize int64) error
}

// Batch writes several random files.
type Batch interface {
	// Run creates job.Count files of job.TotalSize bytes in job.Directory
	// and reports the outcome of each file. The returned error is the
	// first failure, or every failure if the batch continues on errors.
	Run(ctx context.Context, job BatchJob) (Report, error)
}

// Storage provides the file operations needed to produce output files.
type Storage interface {
	// EnsureDirectory creates a directory and its parents if needed.
	EnsureDirectory(string, os.FileMode) error
	// Create creates a new file for writing. It fails if the file exists.
	Create(string, os.FileMode) (io.WriteCloser, error)
	// Exists checks if a file exists.
	Exists(string) (bool, error)
	// Remove deletes a file.
	Remove(string) error
}

// Namer generates output file names.
type Namer interface {
	// Name returns a new file name, without directory.
	Name() (string, error)
}

// EntropyFactory returns a new source of random bytes. Batches call it once
// per file, so returned readers only need to be safe for a single goroutine.
type EntropyFactory func() (io.Reader, error)

// TimeGetter provides current time for measuring write durations.
type TimeGetter interface {
	// GetTime returns the current time.
	GetTime() time.Time
}
