package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront.GO/config"
	"storefront.GO/core/cache"
	"storefront.GO/service/catalog"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session: not found")

// Registry keeps live sessions with an idle TTL. Every lookup extends it.
type Registry struct {
	store    *catalog.Store
	sessions *cache.Cache
	memo     *cache.Cache
	ttl      time.Duration
	newID    func() string
}

// NewRegistry creates an empty registry. A zero ttl keeps sessions forever.
func NewRegistry(store *catalog.Store, ttl time.Duration) *Registry {
	return newRegistry(store, ttl, cache.NewCache())
}

func newRegistry(store *catalog.Store, ttl time.Duration, c *cache.Cache) *Registry {
	return &Registry{
		store:    store,
		sessions: c,
		memo:     cache.NewCache(),
		ttl:      ttl,
		newID:    uuid.NewString,
	}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// DefaultRegistry is bound to catalog.DefaultStore and SESSION_TTL.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(catalog.DefaultStore(), config.App().SessionTTL)
	})
	return defaultRegistry
}

func sessionKey(id string) string { return "session:" + id }

// Create starts a session at the default filter state.
func (r *Registry) Create() *Session {
	s := newSession(r.newID(), r.store, r.memo, r.ttl)
	r.sessions.Set(sessionKey(s.ID), s, r.ttl, nil)
	return s
}

// Get returns a live session and extends its TTL.
func (r *Registry) Get(id string) (*Session, error) {
	v, ok := r.sessions.Get(sessionKey(id))
	if !ok {
		return nil, ErrNotFound
	}
	r.sessions.Touch(sessionKey(id), r.ttl)
	return v.(*Session), nil
}

// Delete ends a session and drops its memoized results.
func (r *Registry) Delete(id string) error {
	v, ok := r.sessions.Get(sessionKey(id))
	if !ok {
		return ErrNotFound
	}
	r.sessions.Delete(sessionKey(id))
	v.(*Session).dropMemo()
	return nil
}

// Purge removes expired sessions and stale memo entries; it returns the
// number of sessions removed.
func (r *Registry) Purge() int {
	expired := r.sessions.PurgeKeys()
	for _, key := range expired {
		// Session keys double as memo tags.
		r.memo.DeleteByTag(key.(string))
	}
	r.memo.Purge()
	return len(expired)
}

// Len counts live sessions.
func (r *Registry) Len() int { return r.sessions.Len() }

// Store is the catalog the sessions read from.
func (r *Registry) Store() *catalog.Store { return r.store }
