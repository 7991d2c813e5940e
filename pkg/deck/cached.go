package deck

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/tabooprint/pkg/cache"
)

// CachedSource wraps a slow Source (such as MongoDB) and keeps loaded decks
// in a cache for [cache.TTLDeck]. Listing is never cached.
type CachedSource struct {
	src   Source
	cache cache.Cache
	keyer cache.Keyer
	scope string
}

// NewCachedSource caches decks of src under keys scoped by name. A nil
// cache disables caching; a nil keyer uses the default keyer.
func NewCachedSource(src Source, c cache.Cache, keyer cache.Keyer, scope string) *CachedSource {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachedSource{src: src, cache: c, keyer: keyer, scope: scope}
}

// List delegates to the wrapped source.
func (s *CachedSource) List(ctx context.Context) ([]string, error) {
	return s.src.List(ctx)
}

// Load returns the cached deck or loads it from the wrapped source. Cache
// failures fall back to the wrapped source.
func (s *CachedSource) Load(ctx context.Context, name string) (Deck, error) {
	key := s.keyer.DeckKey(s.scope, name)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var d Deck
		if err := json.Unmarshal(data, &d); err == nil {
			return d, nil
		}
	}

	d, err := s.src.Load(ctx, name)
	if err != nil {
		return Deck{}, err
	}
	if data, err := json.Marshal(d); err == nil {
		_ = s.cache.Set(ctx, key, data, cache.TTLDeck)
	}
	return d, nil
}

var _ Source = (*CachedSource)(nil)
