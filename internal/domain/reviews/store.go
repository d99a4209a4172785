package reviews

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type Store interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	// ListByVendor returns the vendor's reviews in submission order. An empty
	// status returns them all.
	ListByVendor(ctx context.Context, vendorID string, status Status) ([]Review, error)
	ListByStatus(ctx context.Context, status Status) ([]Review, error)
	// ListAll returns every review, newest first.
	ListAll(ctx context.Context) ([]Review, error)
	// SetStatus returns the review as it was before the update and after it.
	SetStatus(ctx context.Context, id string, status Status) (before, after *Review, err error)
	ApprovedRatings(ctx context.Context, vendorID string) ([]int, error)
}

type Repository struct {
	mu    sync.RWMutex
	byID  map[string]*Review
	order []string
}

func NewRepository(seed ...Review) *Repository {
	r := &Repository{byID: make(map[string]*Review, len(seed))}
	for i := range seed {
		rv := seed[i]
		r.byID[rv.ID] = &rv
		r.order = append(r.order, rv.ID)
	}
	return r
}

func (r *Repository) Create(ctx context.Context, review *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *review
	r.byID[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rv, ok := r.byID[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID string, status Status) ([]Review, error) {
	return r.filter(func(rv *Review) bool {
		return rv.VendorID == vendorID && (status == "" || rv.Status == status)
	}), nil
}

func (r *Repository) ListByStatus(ctx context.Context, status Status) ([]Review, error) {
	return r.filter(func(rv *Review) bool { return rv.Status == status }), nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Review, error) {
	out := r.filter(func(*Review) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repository) SetStatus(ctx context.Context, id string, status Status) (*Review, *Review, error) {
	if !status.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.byID[id]
	if !ok {
		return nil, nil, ErrReviewNotFound
	}
	before := *rv
	rv.Status = status
	after := *rv
	return &before, &after, nil
}

func (r *Repository) ApprovedRatings(ctx context.Context, vendorID string) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ratings []int
	for _, id := range r.order {
		rv := r.byID[id]
		if rv.VendorID == vendorID && rv.Status == StatusApproved {
			ratings = append(ratings, rv.Rating)
		}
	}
	return ratings, nil
}

func (r *Repository) filter(keep func(*Review) bool) []Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Review{}
	for _, id := range r.order {
		if rv := r.byID[id]; keep(rv) {
			out = append(out, *rv)
		}
	}
	return out
}
