package graphql

import (
	"strings"
	"sync"

	_ "embed"

	gql "github.com/graph-gophers/graphql-go"

	"storefront.GO/model/entity"
	"storefront.GO/service/filter"
)

//go:embed schema.graphqls
var schemaBase string

var (
	schemaExtensions []string
	schemaMu         sync.Mutex
)

// RegisterSchemaExtension appends schema to the Query. Call from init() in custom packages.
func RegisterSchemaExtension(schema string) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaExtensions = append(schemaExtensions, strings.TrimSpace(schema))
}

// Schema returns base schema + registered extensions.
func Schema() string {
	schemaMu.Lock()
	ext := schemaExtensions
	schemaMu.Unlock()
	if len(ext) == 0 {
		return schemaBase
	}
	return schemaBase + "\n\n" + strings.Join(ext, "\n\n")
}

// --- Schema arg types (used by resolvers for graphql-go method matching) ---

type PriceRangeInput struct {
	Min float64
	Max float64
}

type ProductFilter struct {
	SearchQuery      *string
	SelectedCategory *string
	PriceRange       *PriceRangeInput
	SortBy           *string
	SelectedTags     *[]string
}

// Patch converts the input into a filter patch. Absent fields stay nil.
func (f *ProductFilter) Patch() filter.Patch {
	var p filter.Patch
	if f == nil {
		return p
	}
	p.SearchQuery = f.SearchQuery
	p.SelectedCategory = f.SelectedCategory
	if f.PriceRange != nil {
		p.PriceRange = &entity.PriceRange{Min: f.PriceRange.Min, Max: f.PriceRange.Max}
	}
	if f.SortBy != nil {
		s := entity.SortOption(*f.SortBy)
		p.SortBy = &s
	}
	if f.SelectedTags != nil {
		tags := append([]string{}, (*f.SelectedTags)...)
		p.SelectedTags = &tags
	}
	return p
}

type ProductsArgs struct {
	Filter      *ProductFilter
	PageSize    int32
	CurrentPage int32
}

type ProductArgs struct {
	ID gql.ID
}

type ExtensionArgs struct {
	Name string
	Args *string
}
