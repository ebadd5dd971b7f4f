package html

import (
	"log"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
)

func init() {
	api.RegisterHTMLModule(RegisterHTMLRoutes)
}

// RegisterHTMLRoutes installs the template renderer and the page routes.
func RegisterHTMLRoutes(e *echo.Echo, d api.Deps) {
	t, err := NewTemplate()
	if err != nil {
		panic("html templates: " + err.Error())
	}
	e.Renderer = t
	for _, tmpl := range t.Templates.Templates() {
		log.Println("Loaded template:", tmpl.Name())
	}
	RegisterProductHTMLRoutes(e, d)
	RegisterCategoryHTMLRoutes(e, d)
}
