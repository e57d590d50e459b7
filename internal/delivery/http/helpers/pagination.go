package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.einride.tech/aip/ordering"

	"talkcatalog/internal/domain"
)

// Pagination query parameter defaults and limits. Pages are zero-based.
const (
	DefaultPage     = 0
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page, page_size and order_by from the request query string,
// clamps page and page_size to valid ranges, and returns domain.PageRequest.
// Invalid or missing page values fall back to defaults; an invalid order_by is an error.
func ParsePagination(r *http.Request, sortable ...string) (domain.PageRequest, error) {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			page = v
		}
	}
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = v
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}
	sort, err := ParseSort(r, sortable...)
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{Page: page, Size: pageSize, Sort: sort}, nil
}

// ParseSort reads the order_by query parameter, e.g. "last_name desc, first_name".
// Only the given field paths are accepted. An absent order_by yields a nil Sort.
func ParseSort(r *http.Request, sortable ...string) (domain.Sort, error) {
	raw := r.URL.Query().Get("order_by")
	if raw == "" {
		return nil, nil
	}
	var orderBy ordering.OrderBy
	if err := orderBy.UnmarshalString(raw); err != nil {
		return nil, fmt.Errorf("%w: order_by: %v", domain.ErrInvalidInput, err)
	}
	if err := orderBy.ValidateForPaths(sortable...); err != nil {
		return nil, fmt.Errorf("%w: order_by: %v", domain.ErrInvalidInput, err)
	}
	sort := make(domain.Sort, 0, len(orderBy.Fields))
	for _, f := range orderBy.Fields {
		sort = append(sort, domain.SortField{Field: f.Path, Desc: f.Desc})
	}
	return sort, nil
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// TotalPages is computed as ceiling(total / pageSize); if pageSize is 0, TotalPages is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
