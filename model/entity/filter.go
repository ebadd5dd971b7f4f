package entity

// SortOption selects the comparator used by the query engine.
type SortOption string

const (
	SortNameAsc     SortOption = "name-asc"
	SortNameDesc    SortOption = "name-desc"
	SortPriceAsc    SortOption = "price-asc"
	SortPriceDesc   SortOption = "price-desc"
	SortRatingDesc  SortOption = "rating-desc"
	SortReviewsDesc SortOption = "reviews-desc"
	SortNewest      SortOption = "newest"
)

// SortOptions lists every sort key with its UI label, in display order.
var SortOptions = []struct {
	Value SortOption `json:"value"`
	Label string     `json:"label"`
}{
	{SortNameAsc, "Name A-Z"},
	{SortNameDesc, "Name Z-A"},
	{SortPriceAsc, "Price Low to High"},
	{SortPriceDesc, "Price High to Low"},
	{SortRatingDesc, "Highest Rated"},
	{SortReviewsDesc, "Most Reviews"},
	{SortNewest, "Newest First"},
}

// Valid reports whether s is a known sort key.
func (s SortOption) Valid() bool {
	for _, o := range SortOptions {
		if o.Value == s {
			return true
		}
	}
	return false
}

// AllCategories is the category sentinel that disables the category filter,
// same as the empty string.
const AllCategories = "All"

const (
	DefaultPriceMin = 0
	DefaultPriceMax = 10000
)

type PriceRange struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// FilterState is the current search/sort/filter criteria of a session.
type FilterState struct {
	SearchQuery      string     `json:"searchQuery"`
	SelectedCategory string     `json:"selectedCategory"`
	PriceRange       PriceRange `json:"priceRange"`
	SortBy           SortOption `json:"sortBy"`
	SelectedTags     []string   `json:"selectedTags"`
}

// DefaultFilterState returns the session start state.
func DefaultFilterState() FilterState {
	return FilterState{
		SearchQuery:      "",
		SelectedCategory: "",
		PriceRange:       PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
		SortBy:           SortNameAsc,
		SelectedTags:     []string{},
	}
}

// Clone returns a copy that shares no slices with s.
func (s FilterState) Clone() FilterState {
	out := s
	out.SelectedTags = append([]string{}, s.SelectedTags...)
	return out
}

// Equal compares two states field by field; tag order matters.
func (s FilterState) Equal(o FilterState) bool {
	if s.SearchQuery != o.SearchQuery || s.SelectedCategory != o.SelectedCategory ||
		s.PriceRange != o.PriceRange || s.SortBy != o.SortBy ||
		len(s.SelectedTags) != len(o.SelectedTags) {
		return false
	}
	for i := range s.SelectedTags {
		if s.SelectedTags[i] != o.SelectedTags[i] {
			return false
		}
	}
	return true
}
