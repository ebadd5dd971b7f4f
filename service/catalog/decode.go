package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/mitchellh/mapstructure"

	"storefront.GO/model/entity"
)

// Options controls load-time validation.
type Options struct {
	// StrictCategories turns an undeclared product category into a load error
	// instead of a logged warning.
	StrictCategories bool
}

var requiredProductFields = []string{
	"id", "name", "description", "price", "category", "tags", "rating", "reviews", "lastUpdated",
}

// DecodeJSON parses and validates a catalog document.
func DecodeJSON(data []byte, opts Options) (*entity.Catalog, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return Decode(raw, opts)
}

// Decode maps a generic document ({products, categories}) onto a Catalog and
// validates it. Every problem found is reported in one joined error.
func Decode(raw map[string]interface{}, opts Options) (*entity.Catalog, error) {
	var errs []error

	products, ok := raw["products"].([]interface{})
	if !ok {
		errs = append(errs, errors.New(`"products" missing or not a list`))
	}
	if _, ok := raw["categories"].([]interface{}); !ok {
		errs = append(errs, errors.New(`"categories" missing or not a list`))
	}
	for i, rp := range products {
		m, ok := rp.(map[string]interface{})
		if !ok {
			errs = append(errs, fmt.Errorf("products[%d]: not an object", i))
			continue
		}
		for _, f := range requiredProductFields {
			if v, ok := m[f]; !ok || v == nil {
				errs = append(errs, fmt.Errorf("products[%d]: missing %q", i, f))
			}
		}
		if r, ok := m["reviews"].(float64); ok && r != math.Trunc(r) {
			errs = append(errs, fmt.Errorf("products[%d]: reviews %v is not a whole number", i, r))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}

	var c entity.Catalog
	cfg := &mapstructure.DecoderConfig{
		Result:     &c,
		TagName:    "mapstructure",
		ZeroFields: true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := Validate(&c, opts); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the invariants of an already typed catalog.
func Validate(c *entity.Catalog, opts Options) error {
	var errs []error
	seen := make(map[string]int, len(c.Products))
	for i, p := range c.Products {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("products[%d]: empty id", i))
		} else if j, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("products[%d]: duplicate id %q (first at products[%d])", i, p.ID, j))
		} else {
			seen[p.ID] = i
		}
		if p.Reviews < 0 {
			errs = append(errs, fmt.Errorf("products[%d] %q: negative reviews %d", i, p.ID, p.Reviews))
		}
		if p.Rating < 0 || p.Rating > 5 || math.IsNaN(p.Rating) {
			errs = append(errs, fmt.Errorf("products[%d] %q: rating %v outside 0-5", i, p.ID, p.Rating))
		}
		if math.IsNaN(p.Price) {
			errs = append(errs, fmt.Errorf("products[%d] %q: price is not a number", i, p.ID))
		}
		if !slices.Contains(c.Categories, p.Category) {
			if opts.StrictCategories {
				errs = append(errs, fmt.Errorf("products[%d] %q: category %q not declared", i, p.ID, p.Category))
			} else {
				log.Printf("catalog: product %q uses undeclared category %q", p.ID, p.Category)
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}
