package catalog

import (
	"fmt"
	"sync"

	"storefront.GO/config"
	productRepo "storefront.GO/model/repository/product"
)

var (
	defaultStore *Store
	defaultOnce  sync.Once
)

// DefaultStore returns the process-wide store built from config.App().
func DefaultStore() *Store {
	defaultOnce.Do(func() {
		cfg := config.App()
		defaultStore = NewStore(SourceFromConfig(cfg), cfg.CatalogLoadDelay)
	})
	return defaultStore
}

// SourceFromConfig picks the catalog source named by CATALOG_SOURCE. A source
// that cannot be built yields one that fails on Load, so the store ends up
// in the failed state instead of the process exiting.
func SourceFromConfig(cfg *config.Config) Source {
	opts := Options{StrictCategories: cfg.StrictCategories}
	switch cfg.CatalogSource {
	case "", "embedded":
		return EmbeddedSource{Options: opts}
	case "file":
		return FileSource{Path: cfg.CatalogPath, Options: opts}
	case "db":
		db, err := config.NewDB()
		if err != nil {
			return failingSource{name: "db", err: fmt.Errorf("open database: %w", err)}
		}
		return DBSource{Repo: productRepo.GetProductRepository(db), Options: opts}
	}
	return failingSource{
		name: cfg.CatalogSource,
		err:  fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource),
	}
}
