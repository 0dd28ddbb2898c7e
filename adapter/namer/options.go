package namer

import "io"

// WithReader sets the reader that will provide random bytes. Reads are not
// synchronized, so the reader must be safe for concurrent use if the Namer
// is shared.
func WithReader(r io.Reader) Option {
	return func(n *Namer) {
		n.reader = r
	}
}

// WithPrefix sets a string placed before every generated name.
func WithPrefix(p string) Option {
	return func(n *Namer) {
		n.prefix = p
	}
}

// WithExtension sets a suffix, such as ".bin", appended to every generated
// name.
func WithExtension(e string) Option {
	return func(n *Namer) {
		n.extension = e
	}
}

// Option configures behavior through the functional options pattern.
type Option func(*Namer)
