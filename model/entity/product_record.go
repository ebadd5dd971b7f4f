package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ProductRecord is the database row behind the "db" catalog source.
type ProductRecord struct {
	ID            string                      `gorm:"column:id;primaryKey;type:varchar(64)"`
	Position      int                         `gorm:"column:position;not null;default:0;index"`
	Name          string                      `gorm:"column:name;type:varchar(255);not null"`
	Description   string                      `gorm:"column:description;type:text"`
	Price         float64                     `gorm:"column:price;not null"`
	OriginalPrice *float64                    `gorm:"column:original_price"`
	DiscountBadge *string                     `gorm:"column:discount_badge;type:varchar(64)"`
	DealEndTime   *string                     `gorm:"column:deal_end_time;type:varchar(40)"`
	Category      string                      `gorm:"column:category;type:varchar(128);index"`
	Tags          datatypes.JSONSlice[string] `gorm:"column:tags"`
	Image         string                      `gorm:"column:image;type:varchar(512)"`
	Rating        float64                     `gorm:"column:rating"`
	Reviews       int                         `gorm:"column:reviews"`
	DownloadURL   string                      `gorm:"column:download_url;type:varchar(512)"`
	Features      datatypes.JSONSlice[string] `gorm:"column:features"`
	FileSize      string                      `gorm:"column:file_size;type:varchar(32)"`
	Compatibility datatypes.JSONSlice[string] `gorm:"column:compatibility"`
	LastUpdated   string                      `gorm:"column:last_updated;type:varchar(40)"`
	CreatedAt     time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductRecord) TableName() string {
	return "storefront_product"
}

// CategoryRecord declares a catalog category; Position keeps declaration order.
type CategoryRecord struct {
	Name     string `gorm:"column:name;primaryKey;type:varchar(128)"`
	Position int    `gorm:"column:position;not null;default:0"`
}

func (CategoryRecord) TableName() string {
	return "storefront_category"
}

// ToMap flattens the row into the catalog document shape used by the decoder.
func (r ProductRecord) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":            r.ID,
		"name":          r.Name,
		"description":   r.Description,
		"price":         r.Price,
		"category":      r.Category,
		"tags":          []string(r.Tags),
		"image":         r.Image,
		"rating":        r.Rating,
		"reviews":       r.Reviews,
		"downloadUrl":   r.DownloadURL,
		"features":      []string(r.Features),
		"fileSize":      r.FileSize,
		"compatibility": []string(r.Compatibility),
		"lastUpdated":   r.LastUpdated,
	}
	if r.OriginalPrice != nil {
		m["originalPrice"] = *r.OriginalPrice
	}
	if r.DiscountBadge != nil {
		m["discountBadge"] = *r.DiscountBadge
	}
	if r.DealEndTime != nil {
		m["dealEndTime"] = *r.DealEndTime
	}
	return m
}

// NewProductRecord converts a catalog product into a row at the given position.
func NewProductRecord(p Product, position int) ProductRecord {
	r := ProductRecord{
		ID:            p.ID,
		Position:      position,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      p.Category,
		Tags:          datatypes.JSONSlice[string](p.Tags),
		Image:         p.Image,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		DownloadURL:   p.DownloadURL,
		Features:      datatypes.JSONSlice[string](p.Features),
		FileSize:      p.FileSize,
		Compatibility: datatypes.JSONSlice[string](p.Compatibility),
		LastUpdated:   p.LastUpdated,
	}
	if p.DiscountBadge != "" {
		b := p.DiscountBadge
		r.DiscountBadge = &b
	}
	if p.DealEndTime != "" {
		d := p.DealEndTime
		r.DealEndTime = &d
	}
	return r
}
