package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
	sessionService "storefront.GO/service/session"
)

func setup(t *testing.T) *echo.Echo {
	t.Helper()
	c := &entity.Catalog{
		Products: []entity.Product{
			{ID: "1", Name: "Test Product 1", Description: "Test description 1", Price: 50, Category: "Productivity", Tags: []string{"test", "productivity"}, Rating: 4.5, Reviews: 100, LastUpdated: "2024-01-15"},
			{ID: "2", Name: "Test Product 2", Description: "Test description 2", Price: 100, Category: "Design", Tags: []string{"test", "design"}, Rating: 4.0, Reviews: 50, LastUpdated: "2024-01-20"},
		},
		Categories: []string{"Productivity", "Design"},
	}
	store := catalog.NewStore(catalog.StaticSource{Catalog: c}, 0)
	if err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	e.Use(api.RequestTimer())
	RegisterSessionRoutes(e.Group("/api"), api.Deps{Store: store, Sessions: sessionService.NewRegistry(store, 0)})
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, want int) SessionResponse {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, want, rec.Body.String())
	}
	var resp SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestSessionFlow(t *testing.T) {
	e := setup(t)

	created := decode(t, do(e, http.MethodPost, "/api/sessions", ""), http.StatusCreated)
	if created.ID == "" || created.TotalCount != 2 || created.Heading != "All Products" {
		t.Fatalf("created = %+v", created)
	}
	base := "/api/sessions/" + created.ID

	patched := decode(t, do(e, http.MethodPatch, base+"/filters", `{"selectedCategory":"Design"}`), http.StatusOK)
	if patched.TotalCount != 1 || patched.FilteredList[0].ID != "2" || patched.Filters.SelectedCategory != "Design" {
		t.Errorf("patched = %+v", patched)
	}

	patched = decode(t, do(e, http.MethodPatch, base+"/filters", `{"selectedCategory":"","sortBy":"price-desc"}`), http.StatusOK)
	if patched.FilteredList[0].ID != "2" || patched.Filters.SortBy != entity.SortPriceDesc {
		t.Errorf("sorted = %+v", patched.FilteredList)
	}

	got := decode(t, do(e, http.MethodGet, base+"?pageSize=1&currentPage=2", ""), http.StatusOK)
	if len(got.FilteredList) != 1 || got.FilteredList[0].ID != "1" || got.TotalCount != 2 || got.PageInfo == nil {
		t.Errorf("paged = %+v", got)
	}

	reset := decode(t, do(e, http.MethodDelete, base+"/filters", ""), http.StatusOK)
	if !reset.Filters.Equal(entity.DefaultFilterState()) {
		t.Errorf("reset filters = %+v", reset.Filters)
	}

	if rec := do(e, http.MethodDelete, base, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, base, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestSession_InvalidPatch(t *testing.T) {
	e := setup(t)
	created := decode(t, do(e, http.MethodPost, "/api/sessions", ""), http.StatusCreated)
	base := "/api/sessions/" + created.ID
	for _, body := range []string{`{"sortBy":"nope"}`, `{"priceRange":{"min":10,"max":1}}`, `{not json`} {
		if rec := do(e, http.MethodPatch, base+"/filters", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}
}

func TestSession_Unknown(t *testing.T) {
	e := setup(t)
	for _, m := range []string{http.MethodGet, http.MethodDelete} {
		if rec := do(e, m, "/api/sessions/unknown", ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", m, rec.Code)
		}
	}
	if rec := do(e, http.MethodPatch, "/api/sessions/unknown/filters", `{}`); rec.Code != http.StatusNotFound {
		t.Errorf("patch status = %d", rec.Code)
	}
}

func TestSession_DurationHeader(t *testing.T) {
	e := setup(t)
	rec := do(e, http.MethodPost, "/api/sessions", "")
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("missing X-Request-Duration-ms")
	}
}

func TestSession_HugePage(t *testing.T) {
	e := setup(t)
	created := decode(t, do(e, http.MethodPost, "/api/sessions", ""), http.StatusCreated)

	got := decode(t, do(e, http.MethodGet, "/api/sessions/"+created.ID+"?pageSize=2&currentPage=4611686018427387905", ""), http.StatusOK)
	if len(got.FilteredList) != 0 || got.PageInfo == nil || got.PageInfo.TotalPages != 1 {
		t.Errorf("huge page = %+v", got)
	}
}
