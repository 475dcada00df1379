package cache

// FigureKeyOpts carries everything besides the spec that changes a
// rendered figure.
type FigureKeyOpts struct {
	// BundleHash is the hash of the serialized style bundle.
	BundleHash string
}

// DocumentKeyOpts carries everything besides the input configuration
// that changes a built document.
type DocumentKeyOpts struct {
	BundleHash string
	// Seed is the effective graph layout seed after overrides.
	Seed uint64
}

// Keyer derives cache keys for build artifacts. Callers hash their
// content first (see [Hash]); the keyer only combines hashes and
// options into stable key strings.
type Keyer interface {
	// FigureKey keys one rendered figure by its spec hash.
	FigureKey(specHash string, opts FigureKeyOpts) string
	// DocumentKey keys one structural document by its config hash.
	DocumentKey(configHash string, opts DocumentKeyOpts) string
}

// DefaultKeyer produces prefix:sha256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FigureKey generates a key for figure caching.
func (k *DefaultKeyer) FigureKey(specHash string, opts FigureKeyOpts) string {
	return hashKey("figure", specHash, opts)
}

// DocumentKey generates a key for structural document caching.
func (k *DefaultKeyer) DocumentKey(configHash string, opts DocumentKeyOpts) string {
	return hashKey("document", configHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
