package viewcache

// config holds constructor settings shared by all value types.
type config struct {
	maxSize int
}

// Option applies a configuration option to a new Cache.
type Option func(*config)

// WithMaxSize bounds the number of cached season views.
func WithMaxSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.maxSize = size
		}
	}
}
