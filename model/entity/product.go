package entity

// Product is a read-only catalog record.
type Product struct {
	ID            string   `json:"id" mapstructure:"id"`
	Name          string   `json:"name" mapstructure:"name"`
	Description   string   `json:"description" mapstructure:"description"`
	Price         float64  `json:"price" mapstructure:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" mapstructure:"originalPrice"`
	DiscountBadge string   `json:"discountBadge,omitempty" mapstructure:"discountBadge"`
	DealEndTime   string   `json:"dealEndTime,omitempty" mapstructure:"dealEndTime"`
	Category      string   `json:"category" mapstructure:"category"`
	Tags          []string `json:"tags" mapstructure:"tags"`
	Image         string   `json:"image,omitempty" mapstructure:"image"`
	Rating        float64  `json:"rating" mapstructure:"rating"`
	Reviews       int      `json:"reviews" mapstructure:"reviews"`
	DownloadURL   string   `json:"downloadUrl,omitempty" mapstructure:"downloadUrl"`
	Features      []string `json:"features" mapstructure:"features"`
	FileSize      string   `json:"fileSize" mapstructure:"fileSize"`
	Compatibility []string `json:"compatibility" mapstructure:"compatibility"`
	LastUpdated   string   `json:"lastUpdated" mapstructure:"lastUpdated"`
}

// HasDeal reports whether the product carries a deal window.
func (p Product) HasDeal() bool {
	return p.DealEndTime != ""
}

// Catalog is the loaded document: ordered products plus declared categories.
type Catalog struct {
	Products   []Product `json:"products" mapstructure:"products"`
	Categories []string  `json:"categories" mapstructure:"categories"`
}

// ProductByID returns the product with the given id.
func (c *Catalog) ProductByID(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
