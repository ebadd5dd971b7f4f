// Package query derives the displayed product list from a catalog and a
// filter state. Every function is pure: inputs are never modified.
package query

import (
	"slices"
	"strings"

	"storefront.GO/model/entity"
)

// Result is the output of one evaluation.
type Result struct {
	Products   []entity.Product `json:"products"`
	TotalCount int              `json:"totalCount"`
}

// Run filters and sorts products under state.
func Run(products []entity.Product, state entity.FilterState) Result {
	out := Query(products, state)
	return Result{Products: out, TotalCount: len(out)}
}

// Query returns the products passing every filter of state, ordered by
// state.SortBy. The result never aliases products.
func Query(products []entity.Product, state entity.FilterState) []entity.Product {
	out := Filter(products, state)
	Sort(out, state.SortBy)
	return out
}

// Filter keeps catalog order and returns a new slice.
func Filter(products []entity.Product, state entity.FilterState) []entity.Product {
	m := newMatcher(state)
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p passes every filter of state.
func Matches(p entity.Product, state entity.FilterState) bool {
	return newMatcher(state).match(p)
}

type matcher struct {
	query    string
	category string
	min, max float64
	tags     []string
}

func newMatcher(state entity.FilterState) matcher {
	return matcher{
		query:    strings.ToLower(state.SearchQuery),
		category: state.SelectedCategory,
		min:      state.PriceRange.Min,
		max:      state.PriceRange.Max,
		tags:     state.SelectedTags,
	}
}

func (m matcher) match(p entity.Product) bool {
	return m.matchSearch(p) && m.matchCategory(p) && m.matchPrice(p) && m.matchTags(p)
}

// Search is a case-insensitive substring match on name, description or any tag.
func (m matcher) matchSearch(p entity.Product) bool {
	if m.query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), m.query) ||
		strings.Contains(strings.ToLower(p.Description), m.query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), m.query) {
			return true
		}
	}
	return false
}

func (m matcher) matchCategory(p entity.Product) bool {
	if m.category == "" || m.category == entity.AllCategories {
		return true
	}
	return p.Category == m.category
}

func (m matcher) matchPrice(p entity.Product) bool {
	return p.Price >= m.min && p.Price <= m.max
}

// Tag selection is OR across selected tags, exact and case-sensitive.
func (m matcher) matchTags(p entity.Product) bool {
	if len(m.tags) == 0 {
		return true
	}
	for _, want := range m.tags {
		if slices.Contains(p.Tags, want) {
			return true
		}
	}
	return false
}

// AllTags returns the deduplicated tag vocabulary in byte-wise sorted order.
func AllTags(products []entity.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
