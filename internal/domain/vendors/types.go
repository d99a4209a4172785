package vendors

import (
	"errors"
	"time"
)

var ErrVendorNotFound = errors.New("vendor not found")

// UnknownName is what Name reports for an id that does not resolve.
const UnknownName = "Unknown Vendor"

// Vendor is immutable after seeding except for Rating and ReviewCount,
// which track the vendor's approved reviews.
type Vendor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Rating      float64   `json:"rating"` // 0-5, one decimal
	ReviewCount int       `json:"review_count"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter is a conjunction; zero-valued fields do not constrain the result.
type Filter struct {
	Search    string  `json:"search,omitempty"`
	Category  string  `json:"category,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.MinRating <= 0
}
