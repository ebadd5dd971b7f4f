package product

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

// CSV columns understood by ParseCSV. List columns are separated by "|".
var (
	stringColumns = map[string]bool{
		"id": true, "name": true, "description": true, "discountBadge": true, "dealEndTime": true,
		"category": true, "image": true, "downloadUrl": true, "fileSize": true, "lastUpdated": true,
	}
	floatColumns = map[string]bool{"price": true, "originalPrice": true, "rating": true}
	intColumns   = map[string]bool{"reviews": true}
	listColumns  = map[string]bool{"tags": true, "features": true, "compatibility": true}
)

const listSeparator = "|"

// ParseCSV reads a catalog from CSV with one product per row. Categories are
// taken in first-seen order. Unknown columns produce warnings; the decoded
// catalog goes through the same validation as a JSON document.
func ParseCSV(r io.Reader, opts catalog.Options) (*entity.Catalog, []string, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var warnings []string
	for _, h := range headers {
		if !stringColumns[h] && !floatColumns[h] && !intColumns[h] && !listColumns[h] {
			warnings = append(warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, warnings, fmt.Errorf("read CSV rows: %w", err)
	}

	products := make([]interface{}, 0, len(rows))
	categories := []interface{}{}
	seenCat := map[string]bool{}
	for ri, row := range rows {
		m := make(map[string]interface{}, len(headers))
		for ci, h := range headers {
			if ci >= len(row) {
				break
			}
			v := strings.TrimSpace(row[ci])
			switch {
			case stringColumns[h]:
				if v != "" || h == "description" || h == "lastUpdated" {
					m[h] = v
				}
			case floatColumns[h]:
				if v == "" {
					continue
				}
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, warnings, fmt.Errorf("row %d: %s %q is not a number", ri+2, h, v)
				}
				m[h] = f
			case intColumns[h]:
				if v == "" {
					continue
				}
				n, err := strconv.Atoi(v)
				if err != nil {
					return nil, warnings, fmt.Errorf("row %d: %s %q is not an integer", ri+2, h, v)
				}
				m[h] = n
			case listColumns[h]:
				m[h] = splitList(v)
			}
		}
		if cat, ok := m["category"].(string); ok && !seenCat[cat] {
			seenCat[cat] = true
			categories = append(categories, cat)
		}
		products = append(products, m)
	}

	c, err := catalog.Decode(map[string]interface{}{"products": products, "categories": categories}, opts)
	return c, warnings, err
}

func splitList(v string) []string {
	out := []string{}
	if v == "" {
		return out
	}
	for _, s := range strings.Split(v, listSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
