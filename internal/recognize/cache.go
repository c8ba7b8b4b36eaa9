// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/casegrade/pkg/types"
)

// cacheKeyPrefix namespaces recogniser entries in a shared redis.
const cacheKeyPrefix = "casegrade:ner:"

// Cache stores recognised spans by key. Get reports ok=false on a miss.
type Cache interface {
	Get(key string) (spans []types.EntitySpan, ok bool, err error)
	Set(key string, spans []types.EntitySpan) error
}

// LocalCache is an in-process Cache.
type LocalCache struct {
	mu    sync.RWMutex
	store map[string][]types.EntitySpan
}

// NewLocalCache returns an empty LocalCache.
func NewLocalCache() *LocalCache {
	return &LocalCache{store: make(map[string][]types.EntitySpan)}
}

func (c *LocalCache) Get(key string) ([]types.EntitySpan, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spans, ok := c.store[key]
	return spans, ok, nil
}

func (c *LocalCache) Set(key string, spans []types.EntitySpan) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = spans
	return nil
}

// redisClient is the subset of *redis.Client used by RedisCache.
type redisClient interface {
	Get(key string) *redis.StringCmd
	Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCache stores spans as JSON values in redis, shared across processes.
type RedisCache struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisCache returns a RedisCache whose entries expire after ttl. A zero
// ttl keeps entries until evicted.
func NewRedisCache(client redisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(key string) ([]types.EntitySpan, bool, error) {
	b, err := c.client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	var spans []types.EntitySpan
	if err := json.Unmarshal(b, &spans); err != nil {
		return nil, false, fmt.Errorf("decoding cached spans: %w", err)
	}
	return spans, true, nil
}

func (c *RedisCache) Set(key string, spans []types.EntitySpan) error {
	if spans == nil {
		spans = []types.EntitySpan{}
	}
	b, err := json.Marshal(spans)
	if err != nil {
		return err
	}
	return c.client.Set(key, b, c.ttl).Err()
}

// Cached memoises another recogniser's results by text. Cache failures are
// logged and treated as misses; recogniser errors are never cached.
type Cached struct {
	inner Recognizer
	cache Cache

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps inner with cache.
func NewCached(inner Recognizer, cache Cache) *Cached {
	return &Cached{inner: inner, cache: cache}
}

// Recognize returns cached spans for text when present and otherwise
// delegates to the wrapped recogniser.
func (c *Cached) Recognize(ctx context.Context, text string) ([]types.EntitySpan, error) {
	key := CacheKey(text)

	spans, ok, err := c.cache.Get(key)
	if err != nil {
		log.Debug().Err(err).Msg("recognizer cache lookup failed")
	} else if ok {
		c.hits.Add(1)
		return spans, nil
	}
	c.misses.Add(1)

	spans, err = c.inner.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(key, spans); err != nil {
		log.Debug().Err(err).Msg("recognizer cache store failed")
	}
	return spans, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// CacheKey derives the cache key for text.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
