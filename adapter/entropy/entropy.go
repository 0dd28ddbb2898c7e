// Package entropy provides the random byte sources used to fill files.
//
// Two kinds are available: [Crypto], backed by crypto/rand, and [Fast],
// backed by a math/rand generator. Neither output is reproducible; Fast is
// not suitable for anything that needs unpredictable bytes.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	mrand "math/rand"
	"slices"
	"strings"

	"github.com/dustin/randbo"
	"github.com/vinicius-lino-figueiredo/randfile/domain"
)

const (
	// Crypto reads from the operating system CSPRNG.
	Crypto = "crypto"
	// Fast reads from a pseudo-random generator, seeded from crypto/rand
	// once per source.
	Fast = "fast"
)

// Kinds lists the accepted source kinds.
var Kinds = []string{Fast, Crypto}

// NewSource returns a reader of the given kind. Fast readers must not be
// shared between goroutines.
func NewSource(kind string) (io.Reader, error) {
	switch kind {
	case Crypto:
		return rand.Reader, nil
	case Fast:
		var seed [8]byte
		if _, err := io.ReadFull(rand.Reader, seed[:]); err != nil {
			return nil, err
		}
		src := mrand.NewSource(int64(binary.LittleEndian.Uint64(seed[:])))
		return randbo.NewFrom(src), nil
	default:
		return nil, domain.ErrInvalidArgument{Name: "entropy source", Value: kind, Reason: "must be one of " + strings.Join(Kinds, ", ")}
	}
}

// NewFactory returns a [domain.EntropyFactory] creating sources of the given
// kind. The kind is checked immediately.
func NewFactory(kind string) (domain.EntropyFactory, error) {
	if !slices.Contains(Kinds, kind) {
		_, err := NewSource(kind)
		return nil, err
	}
	return func() (io.Reader, error) {
		return NewSource(kind)
	}, nil
}
