package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/core/registry"
)

const requestRegistryKey = "request_registry"

// RequestTimer attaches a RequestRegistry to every request and writes
// X-Request-Duration-ms just before the response is committed.
func RequestTimer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rr := registry.NewRequestRegistry()
			c.Set(requestRegistryKey, rr)
			c.Response().Before(func() {
				if v, ok := rr.Get(registry.KeyRequestStart); ok {
					d := time.Since(v.(time.Time)).Milliseconds()
					c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(d, 10))
				}
			})
			return next(c)
		}
	}
}

// RequestRegistry returns the per-request registry set by RequestTimer.
func RequestRegistry(c echo.Context) (*registry.RequestRegistry, bool) {
	rr, ok := c.Get(requestRegistryKey).(*registry.RequestRegistry)
	return rr, ok
}
