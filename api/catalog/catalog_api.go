package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/model/entity"
	catalogService "storefront.GO/service/catalog"
	productService "storefront.GO/service/product"
	"storefront.GO/service/query"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// ListResponse is the body of GET /api/products.
type ListResponse struct {
	Products   []entity.Product   `json:"products"`
	TotalCount int                `json:"totalCount"`
	PageInfo   query.PageInfo     `json:"pageInfo"`
	Filters    entity.FilterState `json:"filters"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	IsLoading     bool       `json:"isLoading"`
	Failed        bool       `json:"failed"`
	Error         string     `json:"error,omitempty"`
	Source        string     `json:"source"`
	ProductCount  int        `json:"productCount"`
	CategoryCount int        `json:"categoryCount"`
	Cache         cacheStats `json:"cache"`
}

func RegisterCatalogRoutes(apiGroup *echo.Group, d api.Deps) {
	rc := newResponseCache(config.RedisClient, "storefront:products:",
		config.GetEnvDuration("PRODUCTS_CACHE_TTL", time.Minute))
	registerCatalogRoutes(apiGroup, d, rc)
}

func registerCatalogRoutes(apiGroup *echo.Group, d api.Deps, rc *responseCache) {
	store := d.Store

	// GET /api/status
	apiGroup.GET("/status", func(c echo.Context) error {
		resp := StatusResponse{
			IsLoading:     store.Loading(),
			Failed:        store.Failed(),
			Source:        store.SourceName(),
			ProductCount:  len(store.Products()),
			CategoryCount: len(store.Categories()),
			Cache:         rc.stats(),
		}
		if err := store.Err(); err != nil {
			resp.Error = err.Error()
		}
		return c.JSON(http.StatusOK, resp)
	})

	// GET /api/products?q=&category=&minPrice=&maxPrice=&sortBy=&tags=&pageSize=&currentPage=
	apiGroup.GET("/products", func(c echo.Context) error {
		if err := api.RequireReady(store); err != nil {
			return err
		}
		params, err := api.ParseListParams(c)
		if err != nil {
			return err
		}
		state := params.Patch.Apply(entity.DefaultFilterState())

		key, err := listKey(store, state, params)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		body, hit, err := rc.fetch(c.Request().Context(), key, func() ([]byte, error) {
			res := query.Run(store.Products(), state)
			page, info := query.Paginate(res.Products, params.PageSize, params.CurrentPage)
			return json.Marshal(ListResponse{
				Products:   page,
				TotalCount: res.TotalCount,
				PageInfo:   info,
				Filters:    state,
			})
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if rc.enabled() {
			c.Response().Header().Set("X-Cache", cacheHeader(hit))
		}
		return c.JSONBlob(http.StatusOK, body)
	})

	// GET /api/products/:id
	apiGroup.GET("/products/:id", func(c echo.Context) error {
		if err := api.RequireReady(store); err != nil {
			return err
		}
		p, ok := store.Product(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, productService.NewDetail(p, time.Now(), config.App().ContactPhone))
	})

	// GET /api/categories
	apiGroup.GET("/categories", func(c echo.Context) error {
		if err := api.RequireReady(store); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"categories": store.Categories()})
	})

	// GET /api/tags
	apiGroup.GET("/tags", func(c echo.Context) error {
		if err := api.RequireReady(store); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"tags": store.AllTags()})
	})

	// GET /api/sort-options
	apiGroup.GET("/sort-options", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"options": entity.SortOptions})
	})
}

// listKey identifies a listing response: the catalog load plus the
// normalized filters and page.
func listKey(store *catalogService.Store, state entity.FilterState, params api.ListParams) (string, error) {
	raw, err := json.Marshal(struct {
		Loaded   int64              `json:"l"`
		State    entity.FilterState `json:"s"`
		PageSize int                `json:"ps"`
		Page     int                `json:"p"`
	}{store.LoadedAt().UnixNano(), state, params.PageSize, params.CurrentPage})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
