package registry

import (
	"sync"
	"time"
)

// Registry is a keyed value store where individual keys can be locked
// (frozen) once the owning extension point has been applied.
type Registry struct {
	mu     sync.RWMutex
	values map[string]interface{}
	locked map[string]bool
}

// GlobalRegistry holds process-wide extension registrations.
var GlobalRegistry = New()

func New() *Registry {
	return &Registry{
		values: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
}

// GetGlobal returns the value stored under key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// SetGlobal stores value under key. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		panic("core/registry: " + key + " is locked")
	}
	r.values[key] = value
}

func (r *Registry) Lock(key string) {
	r.mu.Lock()
	r.locked[key] = true
	r.mu.Unlock()
}

func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting reopens a locked key. Tests only.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	delete(r.locked, key)
	r.mu.Unlock()
}

// RequestRegistry is a per-request scratch space (request start, session id).
type RequestRegistry struct {
	mu     sync.Mutex
	values map[string]interface{}
}

func NewRequestRegistry() *RequestRegistry {
	rr := &RequestRegistry{values: make(map[string]interface{})}
	rr.Set(KeyRequestStart, time.Now())
	return rr
}

func (rr *RequestRegistry) Set(key string, v interface{}) {
	rr.mu.Lock()
	rr.values[key] = v
	rr.mu.Unlock()
}

func (rr *RequestRegistry) Get(key string) (interface{}, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	v, ok := rr.values[key]
	return v, ok
}
