// Package rangecache memoizes range-query result sets behind a two-tier
// cache: an in-process LRU in front of Redis, mirroring the teacher's
// cache/v2-in-front-of-redisstore layering applied to range-query results
// instead of WFS features (§11.1).
package rangecache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/cache/keys"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/core/observability"
)

// Store is the subset of redisstore.Client the cache needs, kept as an
// interface so tests can substitute a fake.
type Store interface {
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)
}

type Cache struct {
	lru   *lru.Cache[string, []string]
	redis Store
	ttl   time.Duration

	mu        sync.Mutex
	layerKeys map[string]map[string]struct{}
}

func New(redisStore Store, lruSize int, ttl time.Duration) (*Cache, error) {
	if lruSize <= 0 {
		lruSize = 1
	}
	l, err := lru.New[string, []string](lruSize)
	if err != nil {
		return nil, err
	}
	return &Cache{
		lru:       l,
		redis:     redisStore,
		ttl:       ttl,
		layerKeys: make(map[string]map[string]struct{}),
	}, nil
}

// Get returns a previously-cached code set for key, checking the in-process
// LRU first and falling back to Redis.
func (c *Cache) Get(ctx context.Context, key string) ([]string, bool, error) {
	if codes, ok := c.lru.Get(key); ok {
		observability.IncCacheHit("lru")
		return codes, true, nil
	}
	observability.IncCacheMiss("lru")

	got, err := c.redis.MGet(ctx, []string{key})
	if err != nil {
		return nil, false, err
	}
	raw, ok := got[key]
	if !ok {
		observability.IncCacheMiss("redis")
		return nil, false, nil
	}
	observability.IncCacheHit("redis")

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, false, err
	}
	c.lru.Add(key, codes)
	return codes, true, nil
}

// Put stores codes under key, tagged with layer for later EvictLayer calls.
// layer may be empty for queries with no associated upstream layer.
func (c *Cache) Put(ctx context.Context, key, layer string, codes []string) error {
	c.lru.Add(key, codes)

	raw, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	if err := c.redis.Set(ctx, key, raw, c.ttl); err != nil {
		return err
	}

	if layer != "" {
		c.mu.Lock()
		set, ok := c.layerKeys[layer]
		if !ok {
			set = make(map[string]struct{})
			c.layerKeys[layer] = set
		}
		set[key] = struct{}{}
		c.mu.Unlock()
	}
	return nil
}

// EvictLayer drops every cached entry tagged with layer, from both tiers
// (§11.2).
func (c *Cache) EvictLayer(ctx context.Context, layer string) error {
	c.mu.Lock()
	set := c.layerKeys[layer]
	delete(c.layerKeys, layer)
	c.mu.Unlock()

	if len(set) == 0 {
		return nil
	}
	delKeys := make([]string, 0, len(set))
	for k := range set {
		c.lru.Remove(k)
		delKeys = append(delKeys, k)
	}
	return c.redis.Del(ctx, delKeys...)
}

// RangeKey is re-exported for callers that only import this package.
func RangeKey(geojson []byte, level int, hBand string) string {
	return keys.RangeKey(geojson, level, hBand)
}
