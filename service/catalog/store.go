package catalog

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"storefront.GO/model/entity"
	"storefront.GO/service/query"
)

// State is the lifecycle position of a Store.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Store holds the catalog loaded once from a Source. Loading goes from true to
// false exactly once; a failed load is terminal.
type Store struct {
	source Source
	delay  time.Duration

	loadMu sync.Mutex // serializes Load calls

	mu       sync.RWMutex
	state    State
	catalog  *entity.Catalog
	tags     []string
	err      error
	loadedAt time.Time
	done     chan struct{}
}

// NewStore returns a store in the loading state. delay simulates fetch latency.
func NewStore(source Source, delay time.Duration) *Store {
	return &Store{
		source: source,
		delay:  delay,
		done:   make(chan struct{}),
	}
}

// Load waits for the delay, then reads the source. Cancelling ctx before the
// delay elapses stops the timer and leaves the store untouched, so a later Load
// can still succeed. Once the store left the loading state Load returns the
// stored outcome.
func (s *Store) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if st, err := s.outcome(); st != StateLoading {
		return err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c, err := s.source.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fmt.Errorf("catalog source %s: %w", s.source.Name(), err)
		s.finish(StateFailed, nil, err)
		return err
	}
	s.finish(StateReady, c, nil)
	return nil
}

// LoadAsync runs Load in the background. Done is closed when it completes.
func (s *Store) LoadAsync(ctx context.Context) {
	go func() {
		start := time.Now()
		if err := s.Load(ctx); err != nil {
			log.Printf("catalog: load failed: %v", err)
			return
		}
		log.Printf("catalog: loaded %d products from %s in %s", len(s.Products()), s.source.Name(), time.Since(start))
	}()
}

func (s *Store) finish(st State, c *entity.Catalog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.catalog = c
	s.err = err
	s.loadedAt = time.Now()
	if c != nil {
		s.tags = query.AllTags(c.Products)
	}
	close(s.done)
}

func (s *Store) outcome() (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.err
}

// Done is closed once the store is ready or failed.
func (s *Store) Done() <-chan struct{} { return s.done }

// Wait blocks until the store leaves the loading state or ctx ends.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		_, err := s.outcome()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) State() State {
	st, _ := s.outcome()
	return st
}

// Loading reports whether the catalog is still pending.
func (s *Store) Loading() bool { return s.State() == StateLoading }

// Failed reports whether the load ended in an error.
func (s *Store) Failed() bool { return s.State() == StateFailed }

// Err returns the load error of a failed store.
func (s *Store) Err() error {
	_, err := s.outcome()
	return err
}

// SourceName identifies where the catalog came from.
func (s *Store) SourceName() string { return s.source.Name() }

// LoadedAt is the completion time of the load (zero while loading).
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Catalog returns the loaded catalog. It must be treated as read-only.
func (s *Store) Catalog() (*entity.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case StateLoading:
		return nil, ErrNotLoaded
	case StateFailed:
		return nil, s.err
	}
	return s.catalog, nil
}

// Products returns a copy of the product list; empty while loading or failed.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return []entity.Product{}
	}
	return slices.Clone(s.catalog.Products)
}

// Categories returns the declared categories; empty while loading or failed.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return []string{}
	}
	return slices.Clone(s.catalog.Categories)
}

// AllTags returns the tag vocabulary computed at load.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tags == nil {
		return []string{}
	}
	return slices.Clone(s.tags)
}

// Product looks a product up by id.
func (s *Store) Product(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return entity.Product{}, false
	}
	return s.catalog.ProductByID(id)
}
