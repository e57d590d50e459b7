package domain

// SortField orders results by one column.
type SortField struct {
	Field string
	Desc  bool
}

// Sort is an ordered list of sort fields. The first field is the primary key of the ordering.
type Sort []SortField

// PageRequest holds offset-based pagination parameters. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset returns the row offset for the current page.
// Formula: Page * Size.
func (p PageRequest) Offset() int {
	if p.Page < 0 || p.Size < 0 {
		return 0
	}
	return p.Page * p.Size
}

// Page is one page of results together with the size of the whole result set.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int
}

// NewPage returns a Page for req. A nil items slice is replaced with an empty one.
func NewPage[T any](items []T, req PageRequest, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Page: req.Page, Size: req.Size, Total: total}
}

// TotalPages is ceiling(Total / Size); 0 when Size is 0.
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.Total + p.Size - 1) / p.Size
}
