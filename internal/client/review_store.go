package client

import (
	"context"
	"sync"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/services"
)

type ReviewState struct {
	Reviews        []reviews.Review
	PendingReviews []reviews.Review
	FlaggedReviews []reviews.Review
	IsLoading      bool
	IsSubmitting   bool
	Error          string
}

type ReviewStore struct {
	backend Backend

	mu    sync.Mutex
	state ReviewState
}

func NewReviewStore(backend Backend) *ReviewStore {
	return &ReviewStore{
		backend: backend,
		state: ReviewState{
			Reviews:        []reviews.Review{},
			PendingReviews: []reviews.Review{},
			FlaggedReviews: []reviews.Review{},
		},
	}
}

func (s *ReviewStore) Snapshot() ReviewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Reviews = cloneList(s.state.Reviews)
	out.PendingReviews = cloneList(s.state.PendingReviews)
	out.FlaggedReviews = cloneList(s.state.FlaggedReviews)
	return out
}

// FetchReviewsByVendor loads the vendor's approved reviews.
func (s *ReviewStore) FetchReviewsByVendor(ctx context.Context, vendorID string) error {
	return s.fetch(ctx, func(ctx context.Context) ([]reviews.Review, error) {
		return s.backend.ListReviews(ctx, vendorID, services.FilterApproved)
	}, func(st *ReviewState, list []reviews.Review) { st.Reviews = list })
}

func (s *ReviewStore) FetchPending(ctx context.Context) error {
	return s.fetch(ctx, s.backend.ListPending, func(st *ReviewState, list []reviews.Review) { st.PendingReviews = list })
}

func (s *ReviewStore) FetchFlagged(ctx context.Context) error {
	return s.fetch(ctx, s.backend.ListFlagged, func(st *ReviewState, list []reviews.Review) { st.FlaggedReviews = list })
}

// Submit validates form locally, then sends it. The created review joins
// the pending list.
func (s *ReviewStore) Submit(ctx context.Context, form ReviewForm) (*reviews.Review, error) {
	if err := form.Validate(); err != nil {
		s.setError(err)
		return nil, err
	}

	s.mu.Lock()
	s.state.IsSubmitting = true
	s.state.Error = ""
	s.mu.Unlock()

	rv, err := s.backend.SubmitReview(ctx, form)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsSubmitting = false
	if err != nil {
		s.state.Error = err.Error()
		return nil, err
	}
	s.state.PendingReviews = append(s.state.PendingReviews, *rv)
	return rv, nil
}

// Approve moves the review out of the moderation lists and into Reviews.
func (s *ReviewStore) Approve(ctx context.Context, id string) error {
	rv, err := s.backend.ApproveReview(ctx, id)
	if err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.state.PendingReviews = without(s.state.PendingReviews, id)
	s.state.FlaggedReviews = without(s.state.FlaggedReviews, id)
	s.state.Reviews = append(without(s.state.Reviews, id), *rv)
	s.mu.Unlock()
	return nil
}

func (s *ReviewStore) Reject(ctx context.Context, id string) error {
	if _, err := s.backend.RejectReview(ctx, id); err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.state.PendingReviews = without(s.state.PendingReviews, id)
	s.state.FlaggedReviews = without(s.state.FlaggedReviews, id)
	s.mu.Unlock()
	return nil
}

func (s *ReviewStore) Flag(ctx context.Context, id string) error {
	rv, err := s.backend.FlagReview(ctx, id)
	if err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.state.PendingReviews = without(s.state.PendingReviews, id)
	s.state.FlaggedReviews = append(without(s.state.FlaggedReviews, id), *rv)
	s.mu.Unlock()
	return nil
}

// CheckRateLimit passes through to the backend; it does not touch state.
func (s *ReviewStore) CheckRateLimit(ctx context.Context) (*services.RateLimitResult, error) {
	return s.backend.CheckRateLimit(ctx)
}

func (s *ReviewStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *ReviewStore) fetch(ctx context.Context, load func(context.Context) ([]reviews.Review, error), apply func(*ReviewState, []reviews.Review)) error {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()

	list, err := load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.state.Error = err.Error()
		return err
	}
	if list == nil {
		list = []reviews.Review{}
	}
	apply(&s.state, list)
	return nil
}

func (s *ReviewStore) setError(err error) {
	s.mu.Lock()
	s.state.Error = err.Error()
	s.mu.Unlock()
}

func without(list []reviews.Review, id string) []reviews.Review {
	out := make([]reviews.Review, 0, len(list))
	for _, rv := range list {
		if rv.ID != id {
			out = append(out, rv)
		}
	}
	return out
}
