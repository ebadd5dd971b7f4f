package product

import (
	"math"
	"slices"
	"time"

	"storefront.GO/model/entity"
	"storefront.GO/service/contact"
	"storefront.GO/service/countdown"
	"storefront.GO/service/query"
)

// Detail is a product plus everything derived for display.
type Detail struct {
	entity.Product
	DealLabel      string `json:"dealLabel,omitempty"`
	DealActive     bool   `json:"dealActive"`
	SavingsPercent int    `json:"savingsPercent,omitempty"`
	ContactURL     string `json:"contactUrl"`
}

// NewDetail derives the display fields of p at now.
func NewDetail(p entity.Product, now time.Time, phone string) Detail {
	d := Detail{
		Product:        p,
		SavingsPercent: SavingsPercent(p),
		ContactURL:     contact.Link(phone, p.Name),
	}
	if label, ok := countdown.Label(p.DealEndTime, now); ok {
		d.DealLabel = label
		d.DealActive = label != countdown.Ended
	}
	return d
}

// SavingsPercent is the rounded discount against originalPrice, 0 when there
// is no higher original price.
func SavingsPercent(p entity.Product) int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
}

// ActiveDeals returns the products whose deal window is still open at now,
// soonest ending first.
func ActiveDeals(products []entity.Product, now time.Time, phone string) []Detail {
	deals := []Detail{}
	for _, p := range products {
		if d := NewDetail(p, now, phone); d.DealActive {
			deals = append(deals, d)
		}
	}
	slices.SortStableFunc(deals, func(a, b Detail) int {
		ea, _ := query.ParseDate(a.DealEndTime)
		eb, _ := query.ParseDate(b.DealEndTime)
		return ea.Compare(eb)
	})
	return deals
}
