// Package batch contains the default [domain.Batch] implementation, which
// writes a number of random files of the same size into a directory.
package batch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/chunkwriter"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/entropy"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/namer"
	"github.com/vinicius-lino-figueiredo/randfile/adapter/storage"
	"github.com/vinicius-lino-figueiredo/randfile/domain"
	"github.com/vinicius-lino-figueiredo/randfile/internal/logging"
	"golang.org/x/sync/errgroup"
)

// WriterFactory builds the [domain.ChunkWriter] for one file, reading random
// bytes from the given source.
type WriterFactory func(io.Reader) domain.ChunkWriter

// Batch implements [domain.Batch].
type Batch struct {
	newWriter       WriterFactory
	entropy         domain.EntropyFactory
	storage         domain.Storage
	namer           domain.Namer
	timeGetter      domain.TimeGetter
	log             logrus.FieldLogger
	jobs            int
	keepPartial     bool
	continueOnError bool
	fileMode        os.FileMode
	dirMode         os.FileMode
}

// NewBatch returns a new implementation of [domain.Batch]. Files are written
// one at a time with fast entropy, uuid names and synced storage unless
// options say otherwise.
func NewBatch(opts ...Option) domain.Batch {
	b := Batch{
		newWriter: func(r io.Reader) domain.ChunkWriter {
			return chunkwriter.NewChunkWriter(chunkwriter.WithEntropy(r))
		},
		storage:    storage.NewStorage(),
		namer:      namer.NewNamer(),
		timeGetter: clock{},
		log:        logging.Discard(),
		jobs:       1,
		fileMode:   storage.DefaultFileMode,
		dirMode:    storage.DefaultDirMode,
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.entropy == nil {
		b.entropy, _ = entropy.NewFactory(entropy.Fast)
	}
	return &b
}

// Run implements [domain.Batch].
func (b *Batch) Run(ctx context.Context, job domain.BatchJob) (domain.Report, error) {
	if job.Count < 0 {
		return domain.Report{}, domain.ErrInvalidArgument{Name: "number of files", Value: job.Count, Reason: "must not be negative"}
	}
	if err := b.newWriter(nil).Validate(job.TotalSize, job.ChunkSize); err != nil {
		return domain.Report{}, err
	}
	if job.Count == 0 {
		return domain.Report{}, nil
	}

	if err := b.storage.EnsureDirectory(job.Directory, b.dirMode); err != nil {
		return domain.Report{}, err
	}

	log := b.log.WithFields(logrus.Fields{
		"files":     job.Count,
		"fileSize":  job.TotalSize,
		"chunkSize": job.ChunkSize,
		"jobs":      b.jobs,
	})
	log.WithField("dir", job.Directory).Info("starting batch")

	start := b.timeGetter.GetTime()
	results := make([]domain.FileResult, job.Count)

	var err error
	if b.jobs <= 1 {
		err = b.runSequential(ctx, job, results)
	} else {
		err = b.runParallel(ctx, job, results)
	}

	report := domain.Report{Duration: b.timeGetter.GetTime().Sub(start)}
	for _, r := range results {
		if r.Path == "" && r.Err == nil {
			continue
		}
		report.Files = append(report.Files, r)
		report.Bytes += r.Bytes
	}

	log.WithFields(logrus.Fields{
		"written":  report.Bytes,
		"failed":   len(report.Failed()),
		"duration": report.Duration,
	}).Info("batch finished")

	return report, err
}

func (b *Batch) runSequential(ctx context.Context, job domain.BatchJob, results []domain.FileResult) error {
	var errs []error
	for i := range results {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		results[i] = b.writeFile(ctx, job)
		if err := results[i].Err; err != nil {
			if !b.continueOnError {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Batch) runParallel(ctx context.Context, job domain.BatchJob, results []domain.FileResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)

	for i := range results {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = b.writeFile(gctx, job)
			if b.continueOnError {
				return nil
			}
			return results[i].Err
		})
	}
	err := g.Wait()

	if b.continueOnError {
		var errs []error
		for _, r := range results {
			if r.Err != nil {
				errs = append(errs, r.Err)
			}
		}
		return errors.Join(append(errs, ctx.Err())...)
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// writeFile creates one file and fills it. Files that fail are removed unless
// partial files are kept. A zero result means the file was skipped because
// the batch was canceled.
func (b *Batch) writeFile(ctx context.Context, job domain.BatchJob) domain.FileResult {
	if err := ctx.Err(); err != nil {
		return domain.FileResult{}
	}

	src, err := b.entropy()
	if err != nil {
		return domain.FileResult{Err: err}
	}
	name, err := b.namer.Name()
	if err != nil {
		return domain.FileResult{Err: err}
	}
	path := filepath.Join(job.Directory, name)
	log := b.log.WithField("path", path)

	sink, err := b.storage.Create(path, b.fileMode)
	if err != nil {
		log.WithError(err).Error("cannot create file")
		return domain.FileResult{Err: err}
	}

	log.Debug("writing file")
	start := b.timeGetter.GetTime()
	n, err := b.newWriter(src).Write(ctx, domain.WriteJob{
		TotalSize:   job.TotalSize,
		ChunkSize:   job.ChunkSize,
		Destination: sink,
	})
	res := domain.FileResult{
		Path:     path,
		Bytes:    n,
		Duration: b.timeGetter.GetTime().Sub(start),
		Err:      err,
	}
	log = log.WithFields(logrus.Fields{"bytes": n, "duration": res.Duration})

	if err != nil {
		log.WithError(err).Error("write failed")
		if !b.keepPartial {
			if rerr := b.storage.Remove(path); rerr != nil {
				log.WithError(rerr).Warn("cannot remove partial file")
			} else {
				res.Removed = true
			}
		}
		return res
	}

	log.Info("file written")
	return res
}

type clock struct{}

func (clock) GetTime() time.Time {
	return time.Now()
}
