package domain

// Pagination defaults and bounds for list queries. Notification history is
// the main paginated surface; rosters and chat history are returned whole.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Normalize clamps the parameters into valid bounds: a page below 1 falls
// back to DefaultPage, a size below 1 to DefaultPageSize, and a size above
// MaxPageSize is capped.
func (p PaginationParams) Normalize() PaginationParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset of the page after normalization.
func (p PaginationParams) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}
