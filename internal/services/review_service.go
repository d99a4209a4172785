package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/storage"
	"vendorly/internal/domain/vendors"
	"vendorly/internal/latency"
	"vendorly/internal/metrics"
)

// Status filters accepted by ListReviews.
const (
	FilterApproved = "approved"
	FilterAll      = "all"
)

// ReviewInput is stored as given: rating range and text length are checked
// by callers, not here.
type ReviewInput struct {
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// transitions is the moderation graph enforced in strict mode. Re-approving
// an approved review is kept legal since it only recomputes aggregates.
var transitions = map[reviews.Status][]reviews.Status{
	reviews.StatusPending:  {reviews.StatusApproved, reviews.StatusRejected, reviews.StatusFlagged},
	reviews.StatusFlagged:  {reviews.StatusApproved, reviews.StatusRejected},
	reviews.StatusApproved: {reviews.StatusApproved},
}

func canTransition(from, to reviews.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type ReviewService struct {
	store   *storage.Container
	latency *latency.Simulator
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	now     func() time.Time
	strict  bool
}

func (s *ReviewService) ListReviews(ctx context.Context, vendorID, filter string) ([]reviews.Review, error) {
	var status reviews.Status
	switch filter {
	case "", FilterApproved:
		status = reviews.StatusApproved
	case FilterAll:
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", ErrValidation, filter)
	}

	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}
	return s.store.Reviews.ListByVendor(ctx, vendorID, status)
}

// SubmitReview queues a review for moderation. Vendor aggregates are left
// alone until the review is approved.
func (s *ReviewService) SubmitReview(ctx context.Context, vendorID, userID, userName string, in ReviewInput) (*reviews.Review, error) {
	if err := s.latency.Wait(ctx, latency.Submit); err != nil {
		return nil, err
	}

	if _, err := s.store.Vendors.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, vendors.ErrVendorNotFound) {
			return nil, wrapNotFound(err)
		}
		return nil, err
	}

	review := &reviews.Review{
		ID:        "review-" + uuid.NewString(),
		VendorID:  vendorID,
		UserID:    userID,
		UserName:  userName,
		Rating:    in.Rating,
		Text:      in.Text,
		PhotoURL:  in.PhotoURL,
		Status:    reviews.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.metrics.ReviewSubmitted()
	s.logger.Infow("review submitted", "review_id", review.ID, "vendor_id", vendorID, "user_id", userID)
	return review, nil
}

func (s *ReviewService) ListPending(ctx context.Context) ([]reviews.Review, error) {
	return s.listByStatus(ctx, reviews.StatusPending)
}

func (s *ReviewService) ListFlagged(ctx context.Context) ([]reviews.Review, error) {
	return s.listByStatus(ctx, reviews.StatusFlagged)
}

// ListAll returns every review, newest first.
func (s *ReviewService) ListAll(ctx context.Context) ([]reviews.Review, error) {
	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}
	return s.store.Reviews.ListAll(ctx)
}

func (s *ReviewService) listByStatus(ctx context.Context, status reviews.Status) ([]reviews.Review, error) {
	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}
	return s.store.Reviews.ListByStatus(ctx, status)
}

// ApproveReview publishes a review and recomputes its vendor's rating and
// review count from the full approved set.
func (s *ReviewService) ApproveReview(ctx context.Context, id string) (*reviews.Review, error) {
	return s.moderate(ctx, id, reviews.StatusApproved)
}

func (s *ReviewService) RejectReview(ctx context.Context, id string) (*reviews.Review, error) {
	return s.moderate(ctx, id, reviews.StatusRejected)
}

func (s *ReviewService) FlagReview(ctx context.Context, id string) (*reviews.Review, error) {
	return s.moderate(ctx, id, reviews.StatusFlagged)
}

func (s *ReviewService) moderate(ctx context.Context, id string, to reviews.Status) (*reviews.Review, error) {
	if err := s.latency.Wait(ctx, latency.Moderate); err != nil {
		return nil, err
	}

	var updated *reviews.Review
	err := s.store.WithModeration(ctx, func(rs reviews.Store, vs vendors.Store) error {
		current, err := rs.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, reviews.ErrReviewNotFound) {
				return wrapNotFound(err)
			}
			return err
		}

		if s.strict && !canTransition(current.Status, to) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, to)
		}

		before, after, err := rs.SetStatus(ctx, id, to)
		if err != nil {
			return err
		}

		// Aggregates only change when the approved set does.
		if to == reviews.StatusApproved || before.Status == reviews.StatusApproved {
			if err := recomputeAggregates(ctx, rs, vs, after.VendorID); err != nil {
				return err
			}
		}

		updated = after
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReviewModerated(string(to))
	s.logger.Infow("review moderated", "review_id", id, "vendor_id", updated.VendorID, "status", to)
	return updated, nil
}

// recomputeAggregates leaves the vendor untouched when no approved review
// remains or the vendor does not exist.
func recomputeAggregates(ctx context.Context, rs reviews.Store, vs vendors.Store, vendorID string) error {
	ratings, err := rs.ApprovedRatings(ctx, vendorID)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		return nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10

	err = vs.UpdateAggregates(ctx, vendorID, avg, len(ratings))
	if errors.Is(err, vendors.ErrVendorNotFound) {
		return nil
	}
	return err
}
