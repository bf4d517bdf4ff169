package domain

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed. Limit is capped at MaxPageLimit by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// Page size bounds shared by every paged listing.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil or non-positive values fall back to page 1 and DefaultPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a listing together with the total number of matches.
type Page[T any] struct {
	Items []T
	Total int64
}
