package domain

// PaginationParams holds page-based pagination parameters for list responses.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [lo, hi) slice bounds for paginating an in-memory list of
// the given total length. An out-of-range page yields an empty window.
func (p PaginationParams) Bounds(total int) (lo, hi int) {
	lo = p.Offset()
	if lo > total {
		lo = total
	}
	hi = lo + p.PageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}
