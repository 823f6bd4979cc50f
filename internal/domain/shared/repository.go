package shared

// DefaultPageSize is the number of rows returned per list page
const DefaultPageSize = 20

// Filter represents list query options
type Filter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
	OrderDir string // asc, desc
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Normalize clamps page and page size to usable values
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	return f
}

// Range returns the inclusive row range for the page: from=(page-1)*size, to=from+size-1.
func (f Filter) Range() (from, to int) {
	n := f.Normalize()
	from = (n.Page - 1) * n.PageSize
	return from, from + n.PageSize - 1
}

// Offset returns the number of rows to skip
func (f Filter) Offset() int {
	from, _ := f.Range()
	return from
}

// Limit returns the number of rows on one page
func (f Filter) Limit() int {
	return f.Normalize().PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
