package models

import gql "github.com/graph-gophers/graphql-go"

// --- Product ---

type Product struct {
	ID             gql.ID   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty"`
	DiscountBadge  *string  `json:"discountBadge,omitempty"`
	DealEndTime    *string  `json:"dealEndTime,omitempty"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Image          *string  `json:"image,omitempty"`
	Rating         float64  `json:"rating"`
	Reviews        int32    `json:"reviews"`
	DownloadURL    *string  `json:"downloadUrl,omitempty"`
	Features       []string `json:"features"`
	FileSize       string   `json:"fileSize"`
	Compatibility  []string `json:"compatibility"`
	LastUpdated    string   `json:"lastUpdated"`
	DealLabel      *string  `json:"dealLabel,omitempty"`
	DealActive     bool     `json:"dealActive"`
	SavingsPercent int32    `json:"savingsPercent"`
	ContactURL     string   `json:"contactUrl"`
}

// --- Listing ---

type ProductList struct {
	Items      []*Product   `json:"items"`
	TotalCount int32        `json:"totalCount"`
	PageInfo   *PageInfo    `json:"pageInfo"`
	Filters    *FilterState `json:"filters"`
	Heading    string       `json:"heading"`
}

type PageInfo struct {
	PageSize    int32 `json:"pageSize"`
	CurrentPage int32 `json:"currentPage"`
	TotalPages  int32 `json:"totalPages"`
}

type FilterState struct {
	SearchQuery      string      `json:"searchQuery"`
	SelectedCategory string      `json:"selectedCategory"`
	PriceRange       *PriceRange `json:"priceRange"`
	SortBy           string      `json:"sortBy"`
	SelectedTags     []string    `json:"selectedTags"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// --- Status ---

type CatalogStatus struct {
	IsLoading     bool    `json:"isLoading"`
	Failed        bool    `json:"failed"`
	Error         *string `json:"error,omitempty"`
	Source        string  `json:"source"`
	ProductCount  int32   `json:"productCount"`
	CategoryCount int32   `json:"categoryCount"`
}
