package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeJSON_Embedded(t *testing.T) {
	c, err := DecodeJSON(embeddedCatalog, Options{StrictCategories: true})
	if err != nil {
		t.Fatalf("embedded catalog invalid: %v", err)
	}
	if len(c.Products) == 0 || len(c.Categories) == 0 {
		t.Fatal("embedded catalog empty")
	}
	for _, p := range c.Products {
		if p.ID == "" || p.Name == "" {
			t.Errorf("product with empty id/name: %+v", p)
		}
	}
}

func TestDecodeJSON_OptionalFields(t *testing.T) {
	doc := `{"products":[{"id":"a","name":"A","description":"d","price":10,"originalPrice":20,"dealEndTime":"2030-01-01T00:00:00Z","category":"X","tags":["t"],"rating":4,"reviews":3,"lastUpdated":"2024-01-01"}],"categories":["X"]}`
	c, err := DecodeJSON([]byte(doc), Options{})
	if err != nil {
		t.Fatal(err)
	}
	p := c.Products[0]
	if p.OriginalPrice == nil || *p.OriginalPrice != 20 {
		t.Errorf("OriginalPrice = %v, want 20", p.OriginalPrice)
	}
	if !p.HasDeal() {
		t.Error("HasDeal = false")
	}
	if p.Reviews != 3 {
		t.Errorf("Reviews = %d", p.Reviews)
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts Options
		want string
	}{
		{"not json", `{`, Options{}, ""},
		{"no products", `{"categories":[]}`, Options{}, `"products"`},
		{"no categories", `{"products":[]}`, Options{}, `"categories"`},
		{"missing field", `{"products":[{"id":"a"}],"categories":[]}`, Options{}, `missing "name"`},
		{"fractional reviews", `{"products":[{"id":"a","name":"A","description":"","price":1,"category":"X","tags":[],"rating":1,"reviews":1.5,"lastUpdated":""}],"categories":["X"]}`, Options{}, "whole number"},
		{"negative reviews", `{"products":[{"id":"a","name":"A","description":"","price":1,"category":"X","tags":[],"rating":1,"reviews":-1,"lastUpdated":""}],"categories":["X"]}`, Options{}, "negative reviews"},
		{"rating", `{"products":[{"id":"a","name":"A","description":"","price":1,"category":"X","tags":[],"rating":6,"reviews":1,"lastUpdated":""}],"categories":["X"]}`, Options{}, "outside 0-5"},
		{"duplicate id", `{"products":[
			{"id":"a","name":"A","description":"","price":1,"category":"X","tags":[],"rating":1,"reviews":1,"lastUpdated":""},
			{"id":"a","name":"B","description":"","price":1,"category":"X","tags":[],"rating":1,"reviews":1,"lastUpdated":""}],"categories":["X"]}`, Options{}, "duplicate id"},
		{"strict category", `{"products":[{"id":"a","name":"A","description":"","price":1,"category":"Y","tags":[],"rating":1,"reviews":1,"lastUpdated":""}],"categories":["X"]}`, Options{StrictCategories: true}, "not declared"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.doc), tt.opts)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("err = %v, want ErrInvalidCatalog", err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeJSON_LenientCategory(t *testing.T) {
	doc := `{"products":[{"id":"a","name":"A","description":"","price":1,"category":"Y","tags":[],"rating":1,"reviews":1,"lastUpdated":""}],"categories":["X"]}`
	if _, err := DecodeJSON([]byte(doc), Options{}); err != nil {
		t.Errorf("undeclared category should only warn, got %v", err)
	}
}

func TestDecodeJSON_JoinsAllErrors(t *testing.T) {
	doc := `{"products":[{"id":"a"},{"name":"B"}],"categories":[]}`
	_, err := DecodeJSON([]byte(doc), Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"products[0]", "products[1]", `missing "id"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}
