package html

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/core/cache"
	parts "storefront.GO/html/parts"
	"storefront.GO/model/entity"
	"storefront.GO/service/filter"
	productService "storefront.GO/service/product"
	"storefront.GO/service/query"
	"storefront.GO/service/session"
)

// RegisterCategoryHTMLRoutes registers the paged category grid.
// /category/All lists the whole catalog.
func RegisterCategoryHTMLRoutes(e *echo.Echo, d api.Deps) {
	store := d.Store
	e.GET("/category/:name", func(c echo.Context) error {
		if done, err := catalogUnavailable(c, d); done {
			return err
		}
		name := c.Param("name")
		categories := store.Categories()
		if name != entity.AllCategories && !slices.Contains(categories, name) {
			return c.String(http.StatusNotFound, "Category not found")
		}

		patch := filter.Category(name)
		if q := c.QueryParam("q"); q != "" {
			patch = filter.Merge(patch, filter.Search(q))
		}
		sortBy := c.QueryParam("sortBy")
		if sortBy != "" {
			patch = filter.Merge(patch, filter.SortBy(entity.SortOption(sortBy)))
		}
		if err := patch.Validate(); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		state := patch.Apply(entity.DefaultFilterState())

		// Pagination parameters
		limit := query.DefaultPageSize
		if lStr := c.QueryParam("limit"); lStr != "" {
			if l, err := strconv.Atoi(lStr); err == nil && l > 0 {
				limit = l
			}
		}
		page := 1
		if pStr := c.QueryParam("p"); pStr != "" {
			if p, err := strconv.Atoi(pStr); err == nil && p > 0 {
				page = p
			}
		}

		start := time.Now()
		res := query.Run(store.Products(), state)
		paged, info := query.Paginate(res.Products, limit, page)
		log.Printf("category %q query took %s", name, time.Since(start))

		cfg := config.App()
		now := time.Now()
		products := make([]productService.Detail, 0, len(paged))
		for _, p := range paged {
			products = append(products, productService.NewDetail(p, now, cfg.ContactPhone))
		}

		var pageNumbers []int
		for i := 1; i <= info.TotalPages; i++ {
			pageNumbers = append(pageNumbers, i)
		}
		prevPage := max(page-1, 1)
		nextPage := max(info.TotalPages, 1)
		if page < info.TotalPages {
			nextPage = page + 1
		}

		tmpl := c.Echo().Renderer.(*Template)
		navHTML, err := RenderCategoryNavCached(tmpl.Templates, categories, name, store.LoadedAt())
		if err != nil {
			log.Println("Category nav render error:", err)
			navHTML = ""
		}
		criticalCSS, err := parts.GetCriticalCSSCached()
		if err != nil {
			criticalCSS = ""
		}
		heading := session.Heading(state)
		return c.Render(http.StatusOK, "category.html", map[string]interface{}{
			"Title":           heading + " - " + cfg.AppName,
			"Heading":         heading,
			"Products":        products,
			"TotalCount":      res.TotalCount,
			"CriticalCSS":     template.CSS(criticalCSS),
			"CategoryNavHTML": template.HTML(navHTML),
			"Page":            page,
			"TotalPages":      info.TotalPages,
			"Limit":           limit,
			"SortBy":          sortBy,
			"MediaUrl":        cfg.MediaUrl,
			"PageNumbers":     pageNumbers,
			"PrevPage":        prevPage,
			"NextPage":        nextPage,
		})
	})
}

// RenderCategoryNavCached renders the category navigation once per catalog
// load and active category.
func RenderCategoryNavCached(tmpl *template.Template, categories []string, active string, loadedAt time.Time) (string, error) {
	c := cache.GetInstance()
	key := []interface{}{"html:category_nav", loadedAt.UnixNano(), active}
	if v, ok := c.GetN(key...); ok {
		return v.(string), nil
	}
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "category_nav", map[string]interface{}{
		"Categories": categories,
		"Active":     active,
	})
	if err != nil {
		return "", err
	}
	out := buf.String()
	c.SetN(key, out, time.Hour, []string{"html"})
	return out, nil
}
