package bytesize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinicius-lino-figueiredo/randfile/pkg/bytesize"
)

func TestParse(t *testing.T) {
	cases := map[string]bytesize.Size{
		"0":         0,
		"1024":      1024,
		" 512 ":     512,
		"1B":        1,
		"1KiB":      1024,
		"1Ki":       1024,
		"1 MiB":     1 << 20,
		"256MiB":    256 << 20,
		"10GiB":     10 << 30,
		"2TiB":      2 << 40,
		"1PiB":      1 << 50,
		"1KB":       1000,
		"1K":        1000,
		"5 MB":      5_000_000,
		"3GB":       3_000_000_000,
		"1TB":       1_000_000_000_000,
		"1PB":       1_000_000_000_000_000,
		"1kib":      1024,
		"1.5KiB":    1536,
		"1,000,000": 1_000_000,
	}
	for in, expected := range cases {
		got, err := bytesize.Parse(in)
		if assert.NoError(t, err, in) {
			assert.Equal(t, expected, got, in)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "MiB", "1XB", "-1", "-1MiB", "1 MiB extra"} {
		_, err := bytesize.Parse(in)
		assert.ErrorIs(t, err, bytesize.ErrInvalidSize, in)
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, 4*bytesize.MiB, bytesize.MustParse("4MiB"))
	assert.Panics(t, func() { bytesize.MustParse("four") })
}

func TestString(t *testing.T) {
	assert.Equal(t, "500 B", bytesize.Size(500).String())
	assert.Equal(t, "1.0 KiB", bytesize.KiB.String())
	assert.Equal(t, "1.0 MiB", bytesize.MiB.String())
	assert.Equal(t, "256 MiB", (256 * bytesize.MiB).String())
	assert.Equal(t, "10 GiB", (10 * bytesize.GiB).String())
}

// Formatted sizes should parse back to the same value.
func TestStringRoundTrip(t *testing.T) {
	for _, s := range []bytesize.Size{0, 500, bytesize.KiB, 256 * bytesize.MiB, 10 * bytesize.GiB} {
		got, err := bytesize.Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestText(t *testing.T) {
	b, err := (256 * bytesize.MiB).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "268435456", string(b))

	var s bytesize.Size
	require.NoError(t, s.UnmarshalText([]byte("1 GiB")))
	assert.Equal(t, bytesize.GiB, s)

	assert.ErrorIs(t, s.UnmarshalText([]byte("nope")), bytesize.ErrInvalidSize)
	assert.Equal(t, bytesize.GiB, s)
}

func TestInt64(t *testing.T) {
	n, err := (10 * bytesize.GiB).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(10<<30), n)

	_, err = bytesize.Size(1 << 63).Int64()
	assert.ErrorIs(t, err, bytesize.ErrInvalidSize)
}
