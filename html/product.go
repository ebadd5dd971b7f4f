package html

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/config"
	parts "storefront.GO/html/parts"
	productService "storefront.GO/service/product"
)

// RegisterProductHTMLRoutes registers HTML routes for product rendering
func RegisterProductHTMLRoutes(e *echo.Echo, d api.Deps) {
	store := d.Store
	e.GET("/product/:id", func(c echo.Context) error {
		if done, err := catalogUnavailable(c, d); done {
			return err
		}
		p, ok := store.Product(c.Param("id"))
		if !ok {
			return c.String(http.StatusNotFound, "Product not found")
		}
		cfg := config.App()
		criticalCSS, err := parts.GetCriticalCSSCached()
		if err != nil {
			criticalCSS = ""
		}
		return c.Render(http.StatusOK, "product.html", map[string]interface{}{
			"Title":       p.Name + " - " + cfg.AppName,
			"Product":     productService.NewDetail(p, time.Now(), cfg.ContactPhone),
			"CriticalCSS": template.CSS(criticalCSS),
			"MediaUrl":    cfg.MediaUrl,
		})
	})
}

// catalogUnavailable answers with a plain-text status while the catalog is
// loading or failed. It reports whether a response was written.
func catalogUnavailable(c echo.Context, d api.Deps) (bool, error) {
	switch {
	case d.Store.Loading():
		c.Response().Header().Set("Retry-After", "1")
		return true, c.String(http.StatusServiceUnavailable, "Catalog is loading, try again shortly")
	case d.Store.Failed():
		log.Println("catalog unavailable:", d.Store.Err())
		return true, c.String(http.StatusInternalServerError, "Catalog unavailable")
	}
	return false, nil
}
