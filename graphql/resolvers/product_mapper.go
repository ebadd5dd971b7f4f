package resolvers

import (
	gql "github.com/graph-gophers/graphql-go"

	gqlmodels "storefront.GO/graphql/models"
	"storefront.GO/model/entity"
	productService "storefront.GO/service/product"
	"storefront.GO/service/query"
)

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toProduct(d productService.Detail) *gqlmodels.Product {
	p := d.Product
	return &gqlmodels.Product{
		ID:             gql.ID(p.ID),
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		DiscountBadge:  optString(p.DiscountBadge),
		DealEndTime:    optString(p.DealEndTime),
		Category:       p.Category,
		Tags:           nonNil(p.Tags),
		Image:          optString(p.Image),
		Rating:         p.Rating,
		Reviews:        int32(p.Reviews),
		DownloadURL:    optString(p.DownloadURL),
		Features:       nonNil(p.Features),
		FileSize:       p.FileSize,
		Compatibility:  nonNil(p.Compatibility),
		LastUpdated:    p.LastUpdated,
		DealLabel:      optString(d.DealLabel),
		DealActive:     d.DealActive,
		SavingsPercent: int32(d.SavingsPercent),
		ContactURL:     d.ContactURL,
	}
}

func toPageInfo(info query.PageInfo) *gqlmodels.PageInfo {
	return &gqlmodels.PageInfo{
		PageSize:    int32(info.PageSize),
		CurrentPage: int32(info.CurrentPage),
		TotalPages:  int32(info.TotalPages),
	}
}

func toFilterState(s entity.FilterState) *gqlmodels.FilterState {
	return &gqlmodels.FilterState{
		SearchQuery:      s.SearchQuery,
		SelectedCategory: s.SelectedCategory,
		PriceRange:       &gqlmodels.PriceRange{Min: s.PriceRange.Min, Max: s.PriceRange.Max},
		SortBy:           string(s.SortBy),
		SelectedTags:     nonNil(s.SelectedTags),
	}
}

// Non-null list fields must not resolve to nil.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
