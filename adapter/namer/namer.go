// Package namer contains the default [domain.Namer] implementation using
// random (version 4) UUIDs.
package namer

import (
	"crypto/rand"
	"io"

	"github.com/google/uuid"
	"github.com/vinicius-lino-figueiredo/randfile/domain"
)

// Namer implements [domain.Namer].
type Namer struct {
	reader    io.Reader
	prefix    string
	extension string
}

// NewNamer returns a new implementation of [domain.Namer].
func NewNamer(opts ...Option) domain.Namer {
	n := Namer{reader: rand.Reader}
	for _, opt := range opts {
		opt(&n)
	}
	return &n
}

// Name implements [domain.Namer].
func (n *Namer) Name() (string, error) {
	id, err := uuid.NewRandomFromReader(n.reader)
	if err != nil {
		return "", err
	}
	return n.prefix + id.String() + n.extension, nil
}
