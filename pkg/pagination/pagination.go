package pagination

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a normalized listing window. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps out-of-range values: page < 1 becomes 1, limit < 1 becomes
// DefaultLimit and limit > MaxLimit becomes MaxLimit.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the zero-based row offset for the window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes how many pages a result set of count rows spans.
func (p Params) TotalPages(count int64) int {
	return int(math.Ceil(float64(count) / float64(p.Limit)))
}
