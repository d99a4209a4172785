// Package client is the consumer side of the vendorly API: a Backend that
// speaks the HTTP protocol and the auth, vendor and review state stores
// built on top of it.
package client

import (
	"context"
	"fmt"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/users"
	"vendorly/internal/domain/vendors"
	"vendorly/internal/services"
)

// DefaultPageSize is what the vendor store asks for on every listing.
const DefaultPageSize = 9

type Backend interface {
	SetToken(token string)

	Login(ctx context.Context, email, password string) (*services.Session, error)
	Signup(ctx context.Context, name, email, password string) (*services.Session, error)
	// CurrentUser returns nil without an error when the token does not
	// resolve to a user.
	CurrentUser(ctx context.Context) (*users.User, error)

	ListVendors(ctx context.Context, page, pageSize int, filter vendors.Filter) (*services.Page[vendors.Vendor], error)
	GetVendor(ctx context.Context, id string) (*vendors.Vendor, error)
	SearchVendors(ctx context.Context, query string) ([]vendors.Vendor, error)
	VendorName(ctx context.Context, id string) (string, error)
	ListAllVendors(ctx context.Context) ([]vendors.Vendor, error)

	ListReviews(ctx context.Context, vendorID, status string) ([]reviews.Review, error)
	SubmitReview(ctx context.Context, form ReviewForm) (*reviews.Review, error)
	ListPending(ctx context.Context) ([]reviews.Review, error)
	ListFlagged(ctx context.Context) ([]reviews.Review, error)
	ListAllReviews(ctx context.Context) ([]reviews.Review, error)
	ApproveReview(ctx context.Context, id string) (*reviews.Review, error)
	RejectReview(ctx context.Context, id string) (*reviews.Review, error)
	FlagReview(ctx context.Context, id string) (*reviews.Review, error)

	CheckRateLimit(ctx context.Context) (*services.RateLimitResult, error)
	PeekRateLimit(ctx context.Context) (*services.RateLimitResult, error)
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}
