// Package product holds catalog import and the per-product view model shared
// by the REST, GraphQL and HTML surfaces.
package product

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront.GO/model/entity"
	productRepo "storefront.GO/model/repository/product"
)

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	BatchSize int
	// Migrate runs AutoMigrate on the catalog tables first (sqlite / dev).
	Migrate bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows  int
	Created    int
	Updated    int
	Categories int
	Warnings   []string
	DBTime     time.Duration
	TotalTime  time.Duration
}

// ImportCatalog upserts a validated catalog into the storefront tables.
func ImportCatalog(db *gorm.DB, c *entity.Catalog, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	repo := productRepo.GetProductRepository(db)
	if opts.Migrate {
		if err := repo.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	ids := make([]string, len(c.Products))
	for i, p := range c.Products {
		ids[i] = p.ID
	}
	existing, err := repo.ExistingIDs(ids, opts.BatchSize)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(c.Products), Categories: len(c.Categories)}
	for _, id := range ids {
		if existing[id] {
			result.Updated++
		} else {
			result.Created++
		}
	}

	startDB := time.Now()
	if err := repo.ReplaceCatalog(c, opts.BatchSize); err != nil {
		return nil, err
	}
	result.DBTime = time.Since(startDB)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}
