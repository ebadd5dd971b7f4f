package product

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront.GO/model/entity"
)

type ProductRepository struct {
	db *gorm.DB
}

var (
	reposMu sync.Mutex
	repos   = map[*gorm.DB]*ProductRepository{}
)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProductRepository returns one repository per *gorm.DB.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	reposMu.Lock()
	defer reposMu.Unlock()
	if r, ok := repos[db]; ok {
		return r
	}
	r := NewProductRepository(db)
	repos[db] = r
	return r
}

// Migrate creates the catalog tables (sqlite / dev). MySQL deployments use db:migrate.
func (r *ProductRepository) Migrate() error {
	return r.db.AutoMigrate(&entity.ProductRecord{}, &entity.CategoryRecord{})
}

// FindAll returns rows in catalog order.
func (r *ProductRepository) FindAll() ([]entity.ProductRecord, error) {
	var rows []entity.ProductRecord
	if err := r.db.Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("product repository: find all: %w", err)
	}
	return rows, nil
}

// FindAllFlat returns rows flattened to the catalog document shape.
func (r *ProductRepository) FindAllFlat() ([]map[string]interface{}, error) {
	rows, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	flat := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		flat[i] = row.ToMap()
	}
	return flat, nil
}

func (r *ProductRepository) FindByID(id string) (*entity.ProductRecord, error) {
	var row entity.ProductRecord
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Categories returns declared category names in declaration order.
func (r *ProductRepository) Categories() ([]string, error) {
	var rows []entity.CategoryRecord
	if err := r.db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("product repository: categories: %w", err)
	}
	names := make([]string, len(rows))
	for i, c := range rows {
		names[i] = c.Name
	}
	return names, nil
}

// ReplaceCatalog upserts the whole catalog in one transaction, keeping document order.
func (r *ProductRepository) ReplaceCatalog(c *entity.Catalog, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(c.Categories) > 0 {
			cats := make([]entity.CategoryRecord, len(c.Categories))
			for i, name := range c.Categories {
				cats[i] = entity.CategoryRecord{Name: name, Position: i}
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(cats, batchSize).Error; err != nil {
				return fmt.Errorf("upsert categories: %w", err)
			}
		}
		if len(c.Products) > 0 {
			rows := make([]entity.ProductRecord, len(c.Products))
			for i, p := range c.Products {
				rows[i] = entity.NewProductRecord(p, i)
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(rows, batchSize).Error; err != nil {
				return fmt.Errorf("upsert products: %w", err)
			}
		}
		return nil
	})
}

func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.ProductRecord{}).Count(&n).Error
	return n, err
}

// ExistingIDs returns which of ids already have a row.
func (r *ProductRepository) ExistingIDs(ids []string, batchSize int) (map[string]bool, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	found := make(map[string]bool, len(ids))
	for i := 0; i < len(ids); i += batchSize {
		end := min(i+batchSize, len(ids))
		var chunk []string
		if err := r.db.Model(&entity.ProductRecord{}).Where("id IN ?", ids[i:end]).Pluck("id", &chunk).Error; err != nil {
			return nil, fmt.Errorf("product repository: existing ids: %w", err)
		}
		for _, id := range chunk {
			found[id] = true
		}
	}
	return found, nil
}
