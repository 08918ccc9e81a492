package market

import (
	"context"
	"sync"
	"time"
)

// CachedReader memoizes lookups briefly so bursts on the read-only asset
// endpoint share one upstream request. It must not be placed on the
// submission path, where every order has to be priced off a fresh snapshot.
type CachedReader struct {
	inner Reader
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cachedEntry
}

type cachedEntry struct {
	ctx       *AssetContext
	fetchedAt time.Time
}

func NewCachedReader(inner Reader, ttl time.Duration) *CachedReader {
	if ttl <= 0 {
		ttl = 2 * time.Second
	}
	return &CachedReader{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cachedEntry),
	}
}

func (c *CachedReader) GetAssetContext(ctx context.Context, name string) (*AssetContext, error) {
	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()
	if ok && time.Since(entry.fetchedAt) < c.ttl {
		return entry.ctx, nil
	}

	actx, err := c.inner.GetAssetContext(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[name] = cachedEntry{ctx: actx, fetchedAt: time.Now()}
	c.mu.Unlock()

	return actx, nil
}
