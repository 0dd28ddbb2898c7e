package batch

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vinicius-lino-figueiredo/randfile/domain"
)

// WithWriterFactory sets the function building the writer of each file.
func WithWriterFactory(f WriterFactory) Option {
	return func(b *Batch) {
		if f != nil {
			b.newWriter = f
		}
	}
}

// WithEntropy sets the factory called once per file to get a random source.
func WithEntropy(e domain.EntropyFactory) Option {
	return func(b *Batch) {
		b.entropy = e
	}
}

// WithStorage sets the storage implementation for file operations.
func WithStorage(s domain.Storage) Option {
	return func(b *Batch) {
		if s != nil {
			b.storage = s
		}
	}
}

// WithNamer sets the generator of file names. It is called from several
// goroutines when jobs is greater than one.
func WithNamer(n domain.Namer) Option {
	return func(b *Batch) {
		if n != nil {
			b.namer = n
		}
	}
}

// WithTimeGetter sets the clock used to measure durations.
func WithTimeGetter(t domain.TimeGetter) Option {
	return func(b *Batch) {
		if t != nil {
			b.timeGetter = t
		}
	}
}

// WithLogger sets the logger. Batches are silent by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Batch) {
		if l != nil {
			b.log = l
		}
	}
}

// WithJobs sets how many files are written at the same time.
func WithJobs(j int) Option {
	return func(b *Batch) {
		b.jobs = j
	}
}

// WithKeepPartial keeps files whose write failed instead of removing them.
func WithKeepPartial(k bool) Option {
	return func(b *Batch) {
		b.keepPartial = k
	}
}

// WithContinueOnError keeps writing the remaining files after a failure.
func WithContinueOnError(c bool) Option {
	return func(b *Batch) {
		b.continueOnError = c
	}
}

// WithFileMode sets the permissions of created files.
func WithFileMode(m os.FileMode) Option {
	return func(b *Batch) {
		b.fileMode = m
	}
}

// WithDirMode sets the permissions of created directories.
func WithDirMode(m os.FileMode) Option {
	return func(b *Batch) {
		b.dirMode = m
	}
}

// Option configures behavior through the functional options pattern.
type Option func(*Batch)
