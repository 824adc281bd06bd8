package view

// DefaultPerPage is the page size of list views.
const DefaultPerPage = 10

// Page is one page of a list. Number is 1-based and always within
// [1, TotalPages] when there are items.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Paginate returns the requested page of items, clamping page into range.
// A non-positive perPage means DefaultPerPage.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := (len(items) + perPage - 1) / perPage
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	p := Page[T]{Number: page, PerPage: perPage, TotalPages: total, TotalItems: len(items)}
	start := (page - 1) * perPage
	if start >= len(items) {
		p.Items = []T{}
		return p
	}
	end := min(start+perPage, len(items))
	p.Items = items[start:end]
	return p
}
