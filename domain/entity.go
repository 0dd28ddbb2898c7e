package domain

import (
	"io"
	"time"
)

// WriteJob describes the content of a single file. It is built by the caller
// for each file and consumed once by a [ChunkWriter], which closes
// Destination when it is done.
type WriteJob struct {
	// TotalSize is the exact number of bytes Destination must receive.
	TotalSize int64
	// ChunkSize bounds the size of each write, and therefore the memory
	// used to hold random bytes.
	ChunkSize int64
	// Destination receives the random content.
	Destination io.WriteCloser
}

// BatchJob describes a set of files with the same size, written to the same
// directory.
type BatchJob struct {
	// Count is the number of files to create. Zero is a no-op.
	Count int
	// TotalSize is the size of each file, in bytes.
	TotalSize int64
	// ChunkSize is the size of each write, in bytes.
	ChunkSize int64
	// Directory is where files are created. It is created if missing.
	Directory string
}

// FileResult is the outcome of writing one file of a batch.
type FileResult struct {
	// Path is empty if the file could not be created.
	Path     string
	Bytes    int64
	Duration time.Duration
	Err      error
	// Removed is set when a partially written file was deleted.
	Removed bool
}

// Report summarizes a batch.
type Report struct {
	Files    []FileResult
	Bytes    int64
	Duration time.Duration
}

// Failed returns the results that carry an error.
func (r Report) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Throughput returns the number of bytes written per second over the whole
// batch, or zero if nothing was timed.
func (r Report) Throughput() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Bytes) / r.Duration.Seconds()
}
