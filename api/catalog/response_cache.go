package catalog

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// responseCache is a cache-aside store for rendered listing responses. With
// no Redis client every fetch builds the body directly.
type responseCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group

	hits, misses, failures atomic.Uint64
}

func newResponseCache(client *redis.Client, prefix string, ttl time.Duration) *responseCache {
	return &responseCache{client: client, prefix: prefix, ttl: ttl}
}

func (rc *responseCache) enabled() bool { return rc != nil && rc.client != nil }

// fetch returns the cached body for key or builds, stores and returns it.
// Concurrent misses on the same key share one build.
func (rc *responseCache) fetch(ctx context.Context, key string, build func() ([]byte, error)) ([]byte, bool, error) {
	if !rc.enabled() {
		b, err := build()
		return b, false, err
	}
	fullKey := rc.prefix + key
	data, err := rc.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		rc.hits.Add(1)
		return data, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		rc.failures.Add(1)
		log.Printf("response cache: get %s: %v", fullKey, err)
	}
	rc.misses.Add(1)

	v, err, _ := rc.group.Do(fullKey, func() (interface{}, error) {
		b, err := build()
		if err != nil {
			return nil, err
		}
		if err := rc.client.Set(ctx, fullKey, b, rc.ttl).Err(); err != nil {
			rc.failures.Add(1)
			log.Printf("response cache: set %s: %v", fullKey, err)
		}
		return b, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

type cacheStats struct {
	Enabled bool   `json:"enabled"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Errors  uint64 `json:"errors"`
}

func (rc *responseCache) stats() cacheStats {
	if rc == nil {
		return cacheStats{}
	}
	return cacheStats{
		Enabled: rc.enabled(),
		Hits:    rc.hits.Load(),
		Misses:  rc.misses.Load(),
		Errors:  rc.failures.Load(),
	}
}
