package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
	"storefront.GO/service/filter"
)

// ListParams is a listing request decoded from the query string.
type ListParams struct {
	Patch       filter.Patch
	PageSize    int
	CurrentPage int
}

// ParseListParams reads q, category, minPrice, maxPrice, sortBy, tags
// (comma separated or repeated), pageSize and currentPage. Only present
// parameters end up in the patch.
func ParseListParams(c echo.Context) (ListParams, error) {
	var p ListParams
	qs := c.QueryParams()

	if qs.Has("q") {
		p.Patch.SearchQuery = ptr(qs.Get("q"))
	}
	if qs.Has("category") {
		p.Patch.SelectedCategory = ptr(qs.Get("category"))
	}
	if qs.Has("minPrice") || qs.Has("maxPrice") {
		r := entity.PriceRange{Min: entity.DefaultPriceMin, Max: entity.DefaultPriceMax}
		var err error
		if v := qs.Get("minPrice"); v != "" {
			if r.Min, err = strconv.ParseFloat(v, 64); err != nil {
				return p, echo.NewHTTPError(http.StatusBadRequest, "minPrice must be a number")
			}
		}
		if v := qs.Get("maxPrice"); v != "" {
			if r.Max, err = strconv.ParseFloat(v, 64); err != nil {
				return p, echo.NewHTTPError(http.StatusBadRequest, "maxPrice must be a number")
			}
		}
		p.Patch.PriceRange = &r
	}
	if qs.Has("sortBy") {
		s := entity.SortOption(qs.Get("sortBy"))
		p.Patch.SortBy = &s
	}
	if qs.Has("tags") {
		tags := []string{}
		for _, v := range qs["tags"] {
			for _, t := range strings.Split(v, ",") {
				if t = strings.TrimSpace(t); t != "" {
					tags = append(tags, t)
				}
			}
		}
		p.Patch.SelectedTags = &tags
	}
	var err error
	if p.PageSize, err = intParam(c, "pageSize"); err != nil {
		return p, err
	}
	if p.CurrentPage, err = intParam(c, "currentPage"); err != nil {
		return p, err
	}
	if err := p.Patch.Validate(); err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return p, nil
}

func intParam(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}

func ptr[T any](v T) *T { return &v }

// RequireReady maps the store lifecycle onto HTTP: 503 while loading, 500
// with the load error once failed.
func RequireReady(store *catalog.Store) error {
	switch store.State() {
	case catalog.StateLoading:
		return echo.NewHTTPError(http.StatusServiceUnavailable, "catalog is loading")
	case catalog.StateFailed:
		return echo.NewHTTPError(http.StatusInternalServerError, "catalog failed to load: "+store.Err().Error())
	}
	return nil
}
