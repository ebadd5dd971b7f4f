package query

import "storefront.GO/model/entity"

const DefaultPageSize = 20

// PageInfo describes one page of a result; TotalCount counts the whole
// filtered list.
type PageInfo struct {
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
}

// Paginate cuts one page out of products. Non-positive inputs fall back to
// page 1 of DefaultPageSize. A page past the end is empty.
func Paginate(products []entity.Product, pageSize, currentPage int) ([]entity.Product, PageInfo) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if currentPage <= 0 {
		currentPage = 1
	}
	total := len(products)
	info := PageInfo{
		PageSize:    pageSize,
		CurrentPage: currentPage,
		TotalCount:  total,
	}
	if total == 0 {
		return []entity.Product{}, info
	}
	// Page arithmetic stays below total so huge inputs cannot overflow.
	lastPage := (total - 1) / pageSize
	info.TotalPages = lastPage + 1
	if currentPage-1 > lastPage {
		return []entity.Product{}, info
	}
	start := (currentPage - 1) * pageSize
	end := start + min(pageSize, total-start)
	return products[start:end], info
}
