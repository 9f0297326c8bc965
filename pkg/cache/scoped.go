package cache

// ScopedKeyer prefixes every key from an inner Keyer. The server uses it
// to keep its entries apart from CLI entries when both share a Redis
// database.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "tagcloud:serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// WordsKey implements Keyer.
func (k *ScopedKeyer) WordsKey(inputHash string, opts WordsKeyOpts) string {
	return k.prefix + k.inner.WordsKey(inputHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
