package cache

// ScopedKeyer wraps a Keyer with a prefix so that callers sharing one cache
// directory do not collide. The render server scopes its keys this way:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(scoreHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scoreHash, opts)
}
