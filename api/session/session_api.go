package session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/core/registry"
	"storefront.GO/service/filter"
	"storefront.GO/service/query"
	sessionService "storefront.GO/service/session"
)

func init() {
	api.RegisterModule(RegisterSessionRoutes)
}

// SessionResponse is a session id plus its current view.
type SessionResponse struct {
	ID string `json:"id"`
	sessionService.View
	PageInfo *query.PageInfo `json:"pageInfo,omitempty"`
}

func RegisterSessionRoutes(apiGroup *echo.Group, d api.Deps) {
	sessions := d.Sessions
	g := apiGroup.Group("/sessions")

	// POST /api/sessions - start a session at the default filters
	g.POST("", func(c echo.Context) error {
		s := sessions.Create()
		return c.JSON(http.StatusCreated, respond(c, s))
	})

	// GET /api/sessions/:id?pageSize=&currentPage=
	g.GET("/:id", func(c echo.Context) error {
		s, err := lookup(c, sessions)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, respond(c, s))
	})

	// PATCH /api/sessions/:id/filters - shallow merge of a filter patch
	g.PATCH("/:id/filters", func(c echo.Context) error {
		s, err := lookup(c, sessions)
		if err != nil {
			return err
		}
		var patch filter.Patch
		if err := c.Bind(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if _, err := s.UpdateFilters(patch); err != nil {
			if errors.Is(err, filter.ErrInvalidPatch) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			return err
		}
		return c.JSON(http.StatusOK, respond(c, s))
	})

	// DELETE /api/sessions/:id/filters - reset to defaults
	g.DELETE("/:id/filters", func(c echo.Context) error {
		s, err := lookup(c, sessions)
		if err != nil {
			return err
		}
		s.ResetFilters()
		return c.JSON(http.StatusOK, respond(c, s))
	})

	// DELETE /api/sessions/:id
	g.DELETE("/:id", func(c echo.Context) error {
		if err := sessions.Delete(c.Param("id")); err != nil {
			if errors.Is(err, sessionService.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
			}
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func lookup(c echo.Context, sessions *sessionService.Registry) (*sessionService.Session, error) {
	s, err := sessions.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, sessionService.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return nil, err
	}
	if rr, ok := api.RequestRegistry(c); ok {
		rr.Set(registry.KeyRequestSession, s.ID)
	}
	return s, nil
}

// respond builds the view; the filtered list is paged when pageSize is given.
func respond(c echo.Context, s *sessionService.Session) SessionResponse {
	resp := SessionResponse{ID: s.ID, View: s.View()}
	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if size <= 0 {
		return resp
	}
	current, _ := strconv.Atoi(c.QueryParam("currentPage"))
	page, info := query.Paginate(resp.FilteredList, size, current)
	resp.FilteredList = page
	resp.PageInfo = &info
	return resp
}
