package query

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront.GO/model/entity"
)

// Sort orders products in place with a stable sort; ties keep their relative
// order. Unknown sort keys leave the slice untouched.
func Sort(products []entity.Product, by entity.SortOption) {
	switch by {
	case entity.SortNameAsc, entity.SortNameDesc:
		// A Collator is not safe for concurrent use: one per call.
		col := newNameCollator()
		slices.SortStableFunc(products, func(a, b entity.Product) int {
			if by == entity.SortNameDesc {
				return col.CompareString(b.Name, a.Name)
			}
			return col.CompareString(a.Name, b.Name)
		})
	case entity.SortPriceAsc:
		slices.SortStableFunc(products, func(a, b entity.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case entity.SortPriceDesc:
		slices.SortStableFunc(products, func(a, b entity.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case entity.SortRatingDesc:
		slices.SortStableFunc(products, func(a, b entity.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case entity.SortReviewsDesc:
		slices.SortStableFunc(products, func(a, b entity.Product) int {
			return cmp.Compare(b.Reviews, a.Reviews)
		})
	case entity.SortNewest:
		sortNewest(products)
	}
}

// newNameCollator is the collation rule for name sorting: English, default
// (tertiary) strength. Case and accents only break ties between otherwise
// equal names, with lower case first.
func newNameCollator() *collate.Collator {
	return collate.New(language.English)
}

// sortNewest orders by lastUpdated descending. Unparseable dates sort after
// every valid one and keep catalog order among themselves.
func sortNewest(products []entity.Product) {
	type keyed struct {
		p  entity.Product
		t  time.Time
		ok bool
	}
	ks := make([]keyed, len(products))
	for i, p := range products {
		t, ok := ParseDate(p.LastUpdated)
		ks[i] = keyed{p: p, t: t, ok: ok}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.ok && b.ok:
			return b.t.Compare(a.t)
		case a.ok:
			return -1
		case b.ok:
			return 1
		}
		return 0
	})
	for i := range ks {
		products[i] = ks[i].p
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDate accepts the ISO-8601 forms found in catalog documents. Date-only
// and zone-less values are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
