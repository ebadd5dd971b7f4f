package product

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront.GO/model/entity"
)

func productRepoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// :memory: is per connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := NewProductRepository(db).Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testCatalog() *entity.Catalog {
	orig := 120.0
	return &entity.Catalog{
		Categories: []string{"Productivity", "Design"},
		Products: []entity.Product{
			{
				ID: "b", Name: "Test Product 2", Description: "Test description 2", Price: 100,
				Category: "Design", Tags: []string{"test", "design"}, Rating: 4.0, Reviews: 50,
				Features: []string{"Feature 2"}, FileSize: "20 MB", Compatibility: []string{"macOS"},
				LastUpdated: "2024-01-20", OriginalPrice: &orig, DealEndTime: "2030-01-01T00:00:00Z",
			},
			{
				ID: "a", Name: "Test Product 1", Description: "Test description 1", Price: 50,
				Category: "Productivity", Tags: []string{"test", "productivity"}, Rating: 4.5, Reviews: 100,
				Features: []string{"Feature 1"}, FileSize: "10 MB", Compatibility: []string{"Windows"},
				LastUpdated: "2024-01-15",
			},
		},
	}
}

func TestProductRepository_GetProductRepository(t *testing.T) {
	db := productRepoTestDB(t)
	r1 := GetProductRepository(db)
	r2 := GetProductRepository(db)
	if r1 == nil {
		t.Fatal("GetProductRepository returned nil")
	}
	if r1 != r2 {
		t.Error("GetProductRepository should return same instance for same DB")
	}
}

func TestProductRepository_ReplaceCatalog_KeepsOrder(t *testing.T) {
	db := productRepoTestDB(t)
	repo := NewProductRepository(db)
	if err := repo.ReplaceCatalog(testCatalog(), 0); err != nil {
		t.Fatalf("ReplaceCatalog: %v", err)
	}

	rows, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("FindAll len = %d, want 2", len(rows))
	}
	if rows[0].ID != "b" || rows[1].ID != "a" {
		t.Errorf("order = [%s %s], want [b a]", rows[0].ID, rows[1].ID)
	}
	if len(rows[0].Tags) != 2 || rows[0].Tags[1] != "design" {
		t.Errorf("tags = %v, want [test design]", rows[0].Tags)
	}

	cats, err := repo.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 2 || cats[0] != "Productivity" {
		t.Errorf("Categories = %v, want [Productivity Design]", cats)
	}
}

func TestProductRepository_ReplaceCatalog_Upserts(t *testing.T) {
	db := productRepoTestDB(t)
	repo := NewProductRepository(db)
	c := testCatalog()
	if err := repo.ReplaceCatalog(c, 1); err != nil {
		t.Fatalf("ReplaceCatalog: %v", err)
	}
	c.Products[0].Price = 80
	if err := repo.ReplaceCatalog(c, 1); err != nil {
		t.Fatalf("ReplaceCatalog again: %v", err)
	}
	n, err := repo.Count()
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v; want 2", n, err)
	}
	row, err := repo.FindByID("b")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if row.Price != 80 {
		t.Errorf("price = %v, want 80", row.Price)
	}
}

func TestProductRepository_FindAllFlat(t *testing.T) {
	db := productRepoTestDB(t)
	repo := NewProductRepository(db)
	if err := repo.ReplaceCatalog(testCatalog(), 0); err != nil {
		t.Fatalf("ReplaceCatalog: %v", err)
	}
	flat, err := repo.FindAllFlat()
	if err != nil {
		t.Fatalf("FindAllFlat: %v", err)
	}
	if flat[0]["originalPrice"] != 120.0 {
		t.Errorf("originalPrice = %v, want 120", flat[0]["originalPrice"])
	}
	if _, ok := flat[1]["dealEndTime"]; ok {
		t.Error("product without deal should not carry dealEndTime")
	}
}

func TestProductRepository_FindByID_Missing(t *testing.T) {
	db := productRepoTestDB(t)
	if _, err := NewProductRepository(db).FindByID("nope"); err == nil {
		t.Error("FindByID missing: want error")
	}
}
