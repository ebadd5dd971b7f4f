package filter

import (
	"errors"
	"fmt"
	"math"

	"storefront.GO/model/entity"
)

// ErrInvalidPatch is returned by Validate.
var ErrInvalidPatch = errors.New("filter: invalid patch")

// Patch is a partial FilterState. Nil fields are left unchanged by Update.
// A non-nil PriceRange replaces both bounds; a non-nil, empty SelectedTags
// clears the tag restriction.
type Patch struct {
	SearchQuery      *string            `json:"searchQuery,omitempty"`
	SelectedCategory *string            `json:"selectedCategory,omitempty"`
	PriceRange       *entity.PriceRange `json:"priceRange,omitempty"`
	SortBy           *entity.SortOption `json:"sortBy,omitempty"`
	SelectedTags     *[]string          `json:"selectedTags,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.SearchQuery == nil && p.SelectedCategory == nil && p.PriceRange == nil &&
		p.SortBy == nil && p.SelectedTags == nil
}

// Validate rejects values the query engine would silently ignore.
func (p Patch) Validate() error {
	if p.SortBy != nil && !p.SortBy.Valid() {
		return fmt.Errorf("%w: unknown sortBy %q", ErrInvalidPatch, *p.SortBy)
	}
	if p.PriceRange != nil {
		if !finite(p.PriceRange.Min) || !finite(p.PriceRange.Max) {
			return fmt.Errorf("%w: priceRange bounds must be finite", ErrInvalidPatch)
		}
		if p.PriceRange.Min > p.PriceRange.Max {
			return fmt.Errorf("%w: priceRange min %v > max %v", ErrInvalidPatch, p.PriceRange.Min, p.PriceRange.Max)
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Apply merges p onto s and returns the result; s is not modified.
func (p Patch) Apply(s entity.FilterState) entity.FilterState {
	out := s.Clone()
	if p.SearchQuery != nil {
		out.SearchQuery = *p.SearchQuery
	}
	if p.SelectedCategory != nil {
		out.SelectedCategory = *p.SelectedCategory
	}
	if p.PriceRange != nil {
		out.PriceRange = *p.PriceRange
	}
	if p.SortBy != nil {
		out.SortBy = *p.SortBy
	}
	if p.SelectedTags != nil {
		out.SelectedTags = append([]string{}, (*p.SelectedTags)...)
	}
	return out
}

// Field constructors for building patches in code.

func Search(q string) Patch { return Patch{SearchQuery: &q} }

func Category(c string) Patch { return Patch{SelectedCategory: &c} }

func Price(min, max float64) Patch {
	return Patch{PriceRange: &entity.PriceRange{Min: min, Max: max}}
}

func SortBy(s entity.SortOption) Patch { return Patch{SortBy: &s} }

func Tags(tags ...string) Patch {
	t := append([]string{}, tags...)
	return Patch{SelectedTags: &t}
}

// Merge combines patches left to right; later fields win.
func Merge(patches ...Patch) Patch {
	var out Patch
	for _, p := range patches {
		if p.SearchQuery != nil {
			out.SearchQuery = p.SearchQuery
		}
		if p.SelectedCategory != nil {
			out.SelectedCategory = p.SelectedCategory
		}
		if p.PriceRange != nil {
			out.PriceRange = p.PriceRange
		}
		if p.SortBy != nil {
			out.SortBy = p.SortBy
		}
		if p.SelectedTags != nil {
			out.SelectedTags = p.SelectedTags
		}
	}
	return out
}
