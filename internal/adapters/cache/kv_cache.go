package cache

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"slices"
	"time"

	"github.com/dgraph-io/ristretto"
)

// CachedKVStore is a write-through ristretto cache in front of a KVStore.
// Misses fall through to the wrapped store; only found values are cached. Entries expire after ttl
// so writes made by other instances to a shared store become visible; zero ttl never expires.
type CachedKVStore struct {
	next  adapters.KVStore
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCachedKVStore(next adapters.KVStore, maxItems int64, ttl time.Duration) (*CachedKVStore, error) {
	if maxItems <= 0 {
		maxItems = 64
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create preferences cache failed: %w", err)
	}
	return &CachedKVStore{next: next, cache: c, ttl: ttl}, nil
}

func (c *CachedKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := c.cache.Get(key); ok {
		if b, ok := v.([]byte); ok {
			return slices.Clone(b), true, nil
		}
	}

	value, found, err := c.next.Get(ctx, key)
	if err != nil || !found {
		return value, found, err
	}
	c.cache.SetWithTTL(key, slices.Clone(value), 1, c.ttl)
	c.cache.Wait()
	return value, true, nil
}

func (c *CachedKVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Del(key)
		return err
	}
	c.cache.SetWithTTL(key, slices.Clone(value), 1, c.ttl)
	// Set is buffered; wait so the next Get never sees a stale value
	c.cache.Wait()
	return nil
}

func (c *CachedKVStore) Close() { c.cache.Close() }
