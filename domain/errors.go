package domain

import (
	"fmt"
)

// ErrInvalidArgument is returned when a size, count or name given to a
// component is out of range. It is always detected before anything is
// written.
type ErrInvalidArgument struct {
	Name   string
	Value  any
	Reason string
}

func (e ErrInvalidArgument) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}

// ErrIO is returned when reading random bytes, writing a chunk or closing a
// sink fails. Written holds the number of bytes the sink accepted before the
// failure.
type ErrIO struct {
	Op      string
	Chunk   int
	Written int64
	Err     error
}

func (e ErrIO) Error() string {
	return fmt.Sprintf("%s chunk %d (after %d bytes): %s", e.Op, e.Chunk, e.Written, e.Err)
}

func (e ErrIO) Unwrap() error { return e.Err }

// ErrOutOfMemory is returned when a chunk buffer cannot be allocated.
type ErrOutOfMemory struct {
	Requested int64
	Limit     int64
}

func (e ErrOutOfMemory) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("cannot allocate chunk of %d bytes: memory limit is %d bytes", e.Requested, e.Limit)
	}
	return fmt.Sprintf("cannot allocate chunk of %d bytes", e.Requested)
}

// ErrFlushToStorage is returned when a file cannot be synced or closed after
// being written.
type ErrFlushToStorage struct {
	ErrorOnFsync error
	ErrorOnClose error
}

func (e ErrFlushToStorage) Error() string {
	var err error
	if e.ErrorOnFsync != nil {
		err = e.ErrorOnFsync
	} else {
		err = e.ErrorOnClose
	}
	return fmt.Sprint("storage flush error: ", err.Error())
}

func (e ErrFlushToStorage) Unwrap() error {
	if e.ErrorOnFsync != nil {
		return e.ErrorOnFsync
	}
	return e.ErrorOnClose
}
