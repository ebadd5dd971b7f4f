package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"storefront.GO/model/entity"
	productRepo "storefront.GO/model/repository/product"
)

// Source supplies the catalog document.
type Source interface {
	Name() string
	Load(ctx context.Context) (*entity.Catalog, error)
}

//go:embed data/products.json
var embeddedCatalog []byte

// EmbeddedSource serves the catalog bundled into the binary.
type EmbeddedSource struct {
	Options Options
}

func (EmbeddedSource) Name() string { return "embedded" }

func (s EmbeddedSource) Load(context.Context) (*entity.Catalog, error) {
	return DecodeJSON(embeddedCatalog, s.Options)
}

// FileSource reads a JSON catalog document from disk.
type FileSource struct {
	Path    string
	Options Options
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(context.Context) (*entity.Catalog, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return DecodeJSON(data, s.Options)
}

// DBSource loads the catalog from the storefront tables.
type DBSource struct {
	Repo    *productRepo.ProductRepository
	Options Options
}

func (DBSource) Name() string { return "db" }

func (s DBSource) Load(ctx context.Context) (*entity.Catalog, error) {
	flat, err := s.Repo.FindAllFlat()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	categories, err := s.Repo.Categories()
	if err != nil {
		return nil, err
	}
	products := make([]interface{}, len(flat))
	for i, p := range flat {
		products[i] = p
	}
	cats := make([]interface{}, len(categories))
	for i, c := range categories {
		cats[i] = c
	}
	return Decode(map[string]interface{}{"products": products, "categories": cats}, s.Options)
}

// StaticSource serves an in-memory catalog (tests, fixtures).
type StaticSource struct {
	Catalog *entity.Catalog
	Options Options
}

func (StaticSource) Name() string { return "static" }

func (s StaticSource) Load(context.Context) (*entity.Catalog, error) {
	if s.Catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidCatalog)
	}
	if err := Validate(s.Catalog, s.Options); err != nil {
		return nil, err
	}
	return s.Catalog, nil
}

type failingSource struct {
	name string
	err  error
}

func (s failingSource) Name() string { return s.name }

func (s failingSource) Load(context.Context) (*entity.Catalog, error) { return nil, s.err }
