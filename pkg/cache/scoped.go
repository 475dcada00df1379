package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several courses or users share one cache backend and
// must not see each other's artifacts.
//
// Example usage:
//
//	// Course-specific keys on a shared Redis
//	courseKeyer := NewScopedKeyer(NewDefaultKeyer(), "course:math201:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FigureKey generates a prefixed key for figure caching.
func (k *ScopedKeyer) FigureKey(specHash string, opts FigureKeyOpts) string {
	return k.prefix + k.inner.FigureKey(specHash, opts)
}

// DocumentKey generates a prefixed key for document caching.
func (k *ScopedKeyer) DocumentKey(configHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(configHash, opts)
}
