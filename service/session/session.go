// Package session is the state container of one browsing session: the
// catalog store, a filter manager and the memoized query output.
package session

import (
	"time"

	"storefront.GO/core/cache"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
	"storefront.GO/service/filter"
	"storefront.GO/service/query"
)

// View is everything a listing page needs.
type View struct {
	FilteredList []entity.Product   `json:"filteredList"`
	TotalCount   int                `json:"totalCount"`
	Categories   []string           `json:"categories"`
	AllTags      []string           `json:"allTags"`
	IsLoading    bool               `json:"isLoading"`
	Failed       bool               `json:"failed"`
	Error        string             `json:"error,omitempty"`
	Filters      entity.FilterState `json:"filters"`
	Heading      string             `json:"heading"`
}

type Session struct {
	ID        string
	CreatedAt time.Time

	store   *catalog.Store
	filters *filter.Manager
	memo    *cache.Cache
	ttl     time.Duration
}

// New returns a session with its own memo cache.
func New(id string, store *catalog.Store) *Session {
	return newSession(id, store, cache.NewCache(), 0)
}

func newSession(id string, store *catalog.Store, memo *cache.Cache, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		store:     store,
		filters:   filter.NewManager(),
		memo:      memo,
		ttl:       ttl,
	}
}

// UpdateFilters validates and merges p into the filter state.
func (s *Session) UpdateFilters(p filter.Patch) (entity.FilterState, error) {
	if err := p.Validate(); err != nil {
		return s.filters.State(), err
	}
	st := s.filters.Update(p)
	s.dropMemo()
	return st, nil
}

// ResetFilters restores the default filter state.
func (s *Session) ResetFilters() entity.FilterState {
	st := s.filters.Reset()
	s.dropMemo()
	return st
}

// Filters returns the current filter state.
func (s *Session) Filters() entity.FilterState {
	return s.filters.State()
}

// Result evaluates the query engine for the current filters. While the
// catalog is loading (or failed) the result is empty.
func (s *Session) Result() query.Result {
	state, version := s.filters.Snapshot()
	if s.store.State() != catalog.StateReady {
		return query.Result{Products: []entity.Product{}}
	}
	key := []interface{}{"session", s.ID, version}
	if v, ok := s.memo.GetN(key...); ok {
		return v.(query.Result)
	}
	res := query.Run(s.store.Products(), state)
	s.memo.SetN(key, res, s.ttl, []string{s.memoTag()})
	return res
}

// View assembles the listing view.
func (s *Session) View() View {
	state := s.filters.State()
	res := s.Result()
	v := View{
		FilteredList: res.Products,
		TotalCount:   res.TotalCount,
		Categories:   s.store.Categories(),
		AllTags:      s.store.AllTags(),
		IsLoading:    s.store.Loading(),
		Failed:       s.store.Failed(),
		Filters:      state,
		Heading:      Heading(state),
	}
	if err := s.store.Err(); err != nil {
		v.Error = err.Error()
	}
	return v
}

func (s *Session) memoTag() string { return sessionKey(s.ID) }

func (s *Session) dropMemo() { s.memo.DeleteByTag(s.memoTag()) }

// Heading is the title shown above the results.
func Heading(state entity.FilterState) string {
	switch {
	case state.SearchQuery != "":
		return `Search Results for "` + state.SearchQuery + `"`
	case state.SelectedCategory != "":
		return state.SelectedCategory + " Products"
	}
	return "All Products"
}
