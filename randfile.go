// Package randfile writes files filled with random bytes, for network
// transfer and disk I/O benchmarks.
//
// A single file is written by a [Writer], created with [NewWriter]. It splits
// the requested size into chunks so that memory use is bounded by the chunk
// size, no matter how large the file is. Several files of the same size are
// written to a directory by a [Batch], created with [NewBatch].
package randfile

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/batch"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/chunkwriter"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/entropy"
	"github.com/vinicius-lino-figueiredo/randfile/domain"
)

// Entropy sources accepted by [NewEntropy].
const (
	// SourceCrypto reads from crypto/rand. It is slower but safe for
	// concurrent use.
	SourceCrypto = entropy.Crypto
	// SourceFast is a math/rand based generator. It is not secure and each
	// reader must be used by a single goroutine.
	SourceFast = entropy.Fast
)

// ErrInvalidArgument is returned when a size, count or name is out of range.
// Nothing is written when it is returned.
type ErrInvalidArgument = domain.ErrInvalidArgument

// ErrIO is returned when reading random bytes, writing a chunk or closing the
// destination fails.
type ErrIO = domain.ErrIO

// ErrOutOfMemory is returned when a chunk buffer cannot be allocated.
type ErrOutOfMemory = domain.ErrOutOfMemory

// ErrFlushToStorage is returned when a file cannot be synced or closed.
type ErrFlushToStorage = domain.ErrFlushToStorage

// Writer writes one file of random content. See [domain.ChunkWriter].
type Writer = domain.ChunkWriter

// WriteJob describes one file for [Writer.Write].
type WriteJob = domain.WriteJob

// Batch writes several files. See [domain.Batch].
type Batch = domain.Batch

// BatchJob describes the files written by [Batch.Run].
type BatchJob = domain.BatchJob

// Report is the outcome of [Batch.Run].
type Report = domain.Report

// FileResult is the outcome of one file of a [Batch].
type FileResult = domain.FileResult

// Storage creates and removes the files of a [Batch].
type Storage = domain.Storage

// Namer names the files of a [Batch].
type Namer = domain.Namer

// TimeGetter is the clock used to time a [Batch].
type TimeGetter = domain.TimeGetter

// EntropyFactory returns a new random source for each file of a [Batch].
type EntropyFactory = domain.EntropyFactory

// NewWriter creates a new [Writer] with the provided options:
//
// - [WithEntropy]: sets the random source. Defaults to crypto/rand.
//
// - [WithMemoryLimit]: sets the largest chunk buffer allowed. Defaults to the
// runtime soft memory limit.
func NewWriter(options ...WriterOption) Writer {
	return chunkwriter.NewChunkWriter(options...)
}

// NewEntropy returns a factory of random sources of the given kind, either
// [SourceFast] or [SourceCrypto].
func NewEntropy(kind string) (EntropyFactory, error) {
	return entropy.NewFactory(kind)
}

// WriterOption configures a [Writer].
type WriterOption = chunkwriter.Option

// WithEntropy sets the reader random bytes are taken from.
func WithEntropy(r io.Reader) WriterOption {
	return chunkwriter.WithEntropy(r)
}

// WithMemoryLimit sets the largest chunk, in bytes, the writer will allocate.
// Zero or a negative value removes the limit.
func WithMemoryLimit(l int64) WriterOption {
	return chunkwriter.WithMemoryLimit(l)
}

// NewBatch creates a new [Batch] with the provided options:
//
// - [WithJobs]: sets how many files are written at once.
//
// - [WithKeepPartial]: keeps files whose write failed.
//
// - [WithContinueOnError]: keeps going after a file fails.
//
// - [WithFileMode]: sets the permissions of new files.
//
// - [WithDirMode]: sets the permissions of the output directory.
//
// - [WithLogger]: sets the logger.
//
// - [WithWriterFactory]: sets how the [Writer] of each file is built.
//
// - [WithEntropyFactory]: sets the random source of each file.
//
// - [WithStorage]: sets the storage implementation for file operations.
//
// - [WithNamer]: sets the generator of file names.
//
// - [WithTimeGetter]: sets the clock.
func NewBatch(options ...BatchOption) Batch {
	return batch.NewBatch(options...)
}

// BatchOption configures a [Batch].
type BatchOption = batch.Option

// WriterFactory builds the [Writer] of one file from its random source.
type WriterFactory = batch.WriterFactory

// WithJobs sets how many files are written at the same time.
func WithJobs(j int) BatchOption {
	return batch.WithJobs(j)
}

// WithKeepPartial keeps files whose write failed instead of removing them.
func WithKeepPartial(k bool) BatchOption {
	return batch.WithKeepPartial(k)
}

// WithContinueOnError writes the remaining files after one fails.
func WithContinueOnError(c bool) BatchOption {
	return batch.WithContinueOnError(c)
}

// WithFileMode sets the permissions of created files.
func WithFileMode(m os.FileMode) BatchOption {
	return batch.WithFileMode(m)
}

// WithDirMode sets the permissions of the output directory.
func WithDirMode(m os.FileMode) BatchOption {
	return batch.WithDirMode(m)
}

// WithLogger sets the logger used by the batch.
func WithLogger(l logrus.FieldLogger) BatchOption {
	return batch.WithLogger(l)
}

// WithWriterFactory sets the function building the writer of each file.
func WithWriterFactory(f WriterFactory) BatchOption {
	return batch.WithWriterFactory(f)
}

// WithEntropyFactory sets the random source of each file.
func WithEntropyFactory(e EntropyFactory) BatchOption {
	return batch.WithEntropy(e)
}

// WithStorage sets the storage implementation for file operations.
func WithStorage(s Storage) BatchOption {
	return batch.WithStorage(s)
}

// WithNamer sets the generator of file names.
func WithNamer(n Namer) BatchOption {
	return batch.WithNamer(n)
}

// WithTimeGetter sets the clock used to measure durations.
func WithTimeGetter(t TimeGetter) BatchOption {
	return batch.WithTimeGetter(t)
}
