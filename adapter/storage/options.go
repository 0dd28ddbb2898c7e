package storage

// WithSync sets whether files are synced to disk before being closed.
// Disabling it makes benchmarks measure the page cache instead of the disk.
func WithSync(s bool) Option {
	return func(st *Storage) {
		st.sync = s
	}
}

// Option configures behavior through the functional options pattern.
type Option func(*Storage)
