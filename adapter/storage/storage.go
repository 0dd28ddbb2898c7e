// Package storage contains the default [domain.Storage] implementation,
// backed by the local filesystem.
package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/vinicius-lino-figueiredo/randfile/domain"
)

const (
	DefaultDirMode  os.FileMode = 0o755
	DefaultFileMode os.FileMode = 0o644
)

var osSpecificEnsureDir = func(o osOps, dir string, mode os.FileMode) error {
	return o.MkdirAll(dir, mode)
}

// Storage implements [domain.Storage].
type Storage struct {
	os   osOps
	sync bool
}

// NewStorage returns a new implementation of [domain.Storage]. Files are
// synced to disk when closed unless [WithSync] disables it.
func NewStorage(opts ...Option) domain.Storage {
	s := Storage{
		os:   &osImpl{},
		sync: true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

// EnsureDirectory implements [domain.Storage].
func (s *Storage) EnsureDirectory(dir string, mode os.FileMode) error {
	parsedDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	return osSpecificEnsureDir(s.os, parsedDir, mode)
}

// Create implements [domain.Storage]. The returned sink is an *os.File
// wrapper; closing it flushes the file to storage first if sync is enabled.
func (s *Storage) Create(filename string, mode os.FileMode) (io.WriteCloser, error) {
	f, err := s.os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return nil, err
	}
	return &fileSink{File: f, sync: s.sync}, nil
}

// Exists implements [domain.Storage].
func (s *Storage) Exists(filename string) (bool, error) {
	_, err := s.os.Stat(filename)
	if err != nil {
		if s.os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Remove implements [domain.Storage].
func (s *Storage) Remove(filename string) error {
	return s.os.Remove(filename)
}

type fileSink struct {
	*os.File
	sync bool
}

// Close syncs the file, if requested, and then closes it. The file is closed
// even when sync fails.
func (f *fileSink) Close() error {
	if f.sync {
		if err := f.File.Sync(); err != nil {
			_ = f.File.Close()
			return domain.ErrFlushToStorage{ErrorOnFsync: err}
		}
	}
	if err := f.File.Close(); err != nil {
		return domain.ErrFlushToStorage{ErrorOnClose: err}
	}
	return nil
}
