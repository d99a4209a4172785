package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"vendorly/internal/domain/vendors"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 50
)

// URL: /vendors?page=2&page_size=9
// → ParsePagination() → Pagination{PageSize:9, Page:2, Offset:9}
// → repository returns the window + total count
// → ComputeMeta(total) → fills TotalPages, HasNext, etc.
type Pagination struct {
	PageSize   int  `json:"page_size"`
	Offset     int  `json:"-"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination normalizes page and pageSize the same way ParsePagination
// does for query strings.
func NewPagination(page, pageSize int) Pagination {
	p := Pagination{PageSize: DefaultPageSize, Page: 1}

	switch {
	case pageSize <= 0:
	case pageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	default:
		p.PageSize = pageSize
	}
	if page > 0 {
		p.Page = page
	}

	// pages whose offset would overflow are past any real total
	if p.Page > math.MaxInt/p.PageSize {
		p.Offset = math.MaxInt
	} else {
		p.Offset = (p.Page - 1) * p.PageSize
	}
	return p
}

// ParsePagination parses ?page_size=...&page=... safely. Keys are case sensitive.
func ParsePagination(q url.Values) Pagination {
	page, _ := strconv.Atoi(strings.TrimSpace(q.Get("page")))
	size, _ := strconv.Atoi(strings.TrimSpace(q.Get("page_size")))
	return NewPagination(page, size)
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	p.TotalPages = 0
	if p.PageSize > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.PageSize)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Page < p.TotalPages
}

// ParseVendorFilter reads ?search=&category=&min_rating=. A min_rating that
// does not parse or is outside 0..5 is ignored.
func ParseVendorFilter(q url.Values) vendors.Filter {
	f := vendors.Filter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
	}

	if raw := strings.TrimSpace(q.Get("min_rating")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 5 {
			f.MinRating = v
		}
	}
	return f
}
