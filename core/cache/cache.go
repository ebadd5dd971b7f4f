package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache is a thread-safe key-value store with optional TTL and tag index.
// It backs query memoization and the session store.
type Cache struct {
	m sync.Map
	// tagIndex maps tag -> keys and keyTags key -> tags; both guarded by tagMu.
	// A tag with no keys left is removed.
	tagMu    sync.Mutex
	tagIndex map[string]map[interface{}]struct{}
	keyTags  map[interface{}]map[string]struct{}
	now      func() time.Time
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{now: time.Now}
}

// NewCacheWithClock is NewCache with a custom time source (tests).
func NewCacheWithClock(now func() time.Time) *Cache {
	return &Cache{now: now}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix timestamp in nanoseconds; 0 means no expiration
}

func (i cacheItem) expired(now time.Time) bool {
	return i.ExpiresAt > 0 && now.UnixNano() > i.ExpiresAt
}

// Set stores a value for a key with an optional TTL and optional tags. A zero ttl never expires.
func (c *Cache) Set(key, value interface{}, ttl time.Duration, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
}

// Get retrieves a value for a key. Returns (value, true) if found and not expired, (nil, false) otherwise.
func (c *Cache) Get(key interface{}) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.expired(c.now()) {
		c.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// Touch extends the TTL of a live key. Returns false when the key is missing or expired.
func (c *Cache) Touch(key interface{}, ttl time.Duration) bool {
	v, ok := c.Get(key)
	if !ok {
		return false
	}
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: v, ExpiresAt: expiresAt})
	return true
}

// GetOrDefault retrieves a value for a key. Returns the value if found, otherwise returns the default value.
func (c *Cache) GetOrDefault(key, defaultValue interface{}) interface{} {
	v, ok := c.Get(key)
	if ok {
		return v
	}
	return defaultValue
}

// Delete removes a key from the cache and from every tag it was assigned to.
func (c *Cache) Delete(key interface{}) {
	c.m.Delete(key)
	c.tagMu.Lock()
	c.untagLocked(key)
	c.tagMu.Unlock()
}

func (c *Cache) untagLocked(key interface{}) {
	for tag := range c.keyTags[key] {
		keys := c.tagIndex[tag]
		delete(keys, key)
		if len(keys) == 0 {
			delete(c.tagIndex, tag)
		}
	}
	delete(c.keyTags, key)
}

// DeleteMany removes multiple keys from the cache.
func (c *Cache) DeleteMany(keys ...interface{}) {
	for _, key := range keys {
		c.Delete(key)
	}
}

func makeCompositeKey(keys ...interface{}) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "|")
}

// SetN stores a value for a composite key.
func (c *Cache) SetN(keys []interface{}, value interface{}, ttl time.Duration, tags []string) {
	c.Set(makeCompositeKey(keys...), value, ttl, tags)
}

// GetN retrieves a value for a composite key.
func (c *Cache) GetN(keys ...interface{}) (interface{}, bool) {
	return c.Get(makeCompositeKey(keys...))
}

func (c *Cache) DeleteN(keys ...interface{}) {
	c.Delete(makeCompositeKey(keys...))
}

// IterateFilter returns the live values for which filter returns true.
func (c *Cache) IterateFilter(filter func(key, value interface{}) bool) []interface{} {
	now := c.now()
	var results []interface{}
	c.m.Range(func(key, v interface{}) bool {
		item := v.(cacheItem)
		if !item.expired(now) && filter(key, item.Value) {
			results = append(results, item.Value)
		}
		return true
	})
	return results
}

// Purge drops every expired entry and returns how many were removed.
func (c *Cache) Purge() int {
	return len(c.PurgeKeys())
}

// PurgeKeys drops every expired entry and returns the removed keys.
func (c *Cache) PurgeKeys() []interface{} {
	now := c.now()
	var expired []interface{}
	c.m.Range(func(key, v interface{}) bool {
		if v.(cacheItem).expired(now) {
			expired = append(expired, key)
		}
		return true
	})
	c.DeleteMany(expired...)
	return expired
}

// Len counts live entries.
func (c *Cache) Len() int {
	return len(c.IterateFilter(func(_, _ interface{}) bool { return true }))
}

// TagKey assigns one or more tags to a cache key.
func (c *Cache) TagKey(key interface{}, tags []string) {
	c.tagMu.Lock()
	defer c.tagMu.Unlock()
	if c.tagIndex == nil {
		c.tagIndex = make(map[string]map[interface{}]struct{})
		c.keyTags = make(map[interface{}]map[string]struct{})
	}
	for _, tag := range tags {
		if c.tagIndex[tag] == nil {
			c.tagIndex[tag] = make(map[interface{}]struct{})
		}
		c.tagIndex[tag][key] = struct{}{}
		if c.keyTags[key] == nil {
			c.keyTags[key] = make(map[string]struct{})
		}
		c.keyTags[key][tag] = struct{}{}
	}
}

// GetKeysByTag returns a slice of all keys assigned to a tag.
func (c *Cache) GetKeysByTag(tag string) []interface{} {
	c.tagMu.Lock()
	defer c.tagMu.Unlock()
	keys := make([]interface{}, 0, len(c.tagIndex[tag]))
	for key := range c.tagIndex[tag] {
		keys = append(keys, key)
	}
	return keys
}

// TagCount is the number of tags that still have keys.
func (c *Cache) TagCount() int {
	c.tagMu.Lock()
	defer c.tagMu.Unlock()
	return len(c.tagIndex)
}

// DeleteByTag deletes all cache entries assigned to a tag.
func (c *Cache) DeleteByTag(tag string) {
	c.tagMu.Lock()
	keys := c.tagIndex[tag]
	for key := range keys {
		c.m.Delete(key)
		c.untagLocked(key)
	}
	c.tagMu.Unlock()
}
