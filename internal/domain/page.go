package domain

import "strconv"

// PaginationParams selects one page of saved trips.
type PaginationParams struct {
	// Page is 1-indexed.
	Page int
	// Limit is the page size, between 1 and MaxPageLimit.
	Limit int
}

// MaxPageLimit caps PaginationParams.Limit.
const MaxPageLimit = 100

// ParsePagination builds PaginationParams from raw query-string values.
// Missing, malformed, or non-positive values fall back to page=1, limit=20.
func ParsePagination(page, limit string) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		p.Limit = min(n, MaxPageLimit)
	}
	return p
}

// Offset is the number of rows to skip before this page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
