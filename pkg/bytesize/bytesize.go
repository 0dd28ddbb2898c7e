// Package bytesize parses and formats byte counts such as "10GiB", "1 MB" or
// "4096".
//
// Decimal units (K, M, G, T, P) are powers of 1000 and binary units (Ki, Mi,
// Gi, Ti, Pi) powers of 1024. The trailing "B" and the space between number
// and unit are optional, and units are case insensitive.
package bytesize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Binary units.
const (
	B   Size = 1
	KiB Size = humanize.KiByte
	MiB Size = humanize.MiByte
	GiB Size = humanize.GiByte
	TiB Size = humanize.TiByte
	PiB Size = humanize.PiByte
)

// Decimal units.
const (
	KB Size = humanize.KByte
	MB Size = humanize.MByte
	GB Size = humanize.GByte
	TB Size = humanize.TByte
	PB Size = humanize.PByte
)

// ErrInvalidSize is returned, wrapped, for strings that are not a byte count.
var ErrInvalidSize = errors.New("invalid byte size")

// Size is an amount of bytes.
type Size uint64

// Parse parses a byte count with an optional unit.
func Parse(s string) (Size, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}
	if strings.HasPrefix(trimmed, "-") {
		return 0, fmt.Errorf("%w %q: must not be negative", ErrInvalidSize, s)
	}
	n, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidSize, s, err)
	}
	return Size(n), nil
}

// MustParse is like [Parse] but panics on error. It is meant for constants.
func MustParse(s string) Size {
	size, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return size
}

// Int64 returns the size as an int64, failing if it does not fit.
func (s Size) Int64() (int64, error) {
	if uint64(s) > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d bytes overflows int64", ErrInvalidSize, uint64(s))
	}
	return int64(s), nil
}

// String formats the size with binary units, for humans.
func (s Size) String() string {
	return humanize.IBytes(uint64(s))
}

// MarshalText encodes the exact number of bytes, without unit.
func (s Size) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(s), 10), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [Parse].
func (s *Size) UnmarshalText(text []byte) error {
	size, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = size
	return nil
}
