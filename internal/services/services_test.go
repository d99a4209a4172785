package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vendorly/internal/auth"
	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/storage"
	"vendorly/internal/domain/vendors"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	svc   *Services
	store *storage.Container
	clock *clock
}

func newHarness(t *testing.T, strict bool) *harness {
	t.Helper()

	store, err := storage.NewSeededContainer(bcrypt.MinCost)
	require.NoError(t, err)

	c := &clock{t: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)}
	authn := auth.NewJWTAuthenticator("test-secret", "vendorly", "vendorly", auth.DefaultTokenExp).WithClock(c.Now)

	svc := New(Config{
		Store:             store,
		Authenticator:     authn,
		Now:               c.Now,
		StrictTransitions: strict,
		PasswordCost:      bcrypt.MinCost,
	})
	return &harness{svc: svc, store: store, clock: c}
}

func (h *harness) vendor(t *testing.T, id string) *vendors.Vendor {
	t.Helper()
	v, err := h.store.Vendors.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v
}

func TestAuthenticate(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		session, err := h.svc.Auth.Authenticate(ctx, "john@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "user-1", session.User.ID)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := h.svc.Auth.Authenticate(ctx, "john@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := h.svc.Auth.Authenticate(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	session, err := h.svc.Auth.Register(ctx, "New Person", "new@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "New Person", session.User.Name)
	assert.Equal(t, "new@example.com", session.User.Email)
	assert.False(t, session.User.IsAdmin())

	resolved := h.svc.Auth.ResolveSession(ctx, session.Token)
	require.NotNil(t, resolved)
	assert.Equal(t, session.User.ID, resolved.ID)

	again, err := h.svc.Auth.Authenticate(ctx, "new@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, again.User.ID)

	_, err = h.svc.Auth.Register(ctx, "Copy", "new@example.com", "secret2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestResolveSession(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	session, err := h.svc.Auth.Authenticate(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)

	user := h.svc.Auth.ResolveSession(ctx, session.Token)
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin())

	assert.Nil(t, h.svc.Auth.ResolveSession(ctx, "garbage"))
	assert.Nil(t, h.svc.Auth.ResolveSession(ctx, session.Token+"x"))

	h.clock.Advance(auth.DefaultTokenExp + time.Second)
	assert.Nil(t, h.svc.Auth.ResolveSession(ctx, session.Token))
}

func TestListVendorsPagination(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	first, err := h.svc.Vendors.ListVendors(ctx, 1, 9, vendors.Filter{})
	require.NoError(t, err)
	assert.Len(t, first.Data, 9)
	assert.Equal(t, 23, first.Total)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, "vendor-1", first.Data[0].ID)

	last, err := h.svc.Vendors.ListVendors(ctx, 3, 9, vendors.Filter{})
	require.NoError(t, err)
	assert.Len(t, last.Data, 5)
	assert.Equal(t, "vendor-19", last.Data[0].ID)

	past, err := h.svc.Vendors.ListVendors(ctx, 4, 9, vendors.Filter{})
	require.NoError(t, err)
	assert.Empty(t, past.Data)
	assert.NotNil(t, past.Data)
	assert.Equal(t, 23, past.Total)
	assert.Equal(t, 3, past.TotalPages)

	huge, err := h.svc.Vendors.ListVendors(ctx, math.MaxInt/9+2, 9, vendors.Filter{})
	require.NoError(t, err)
	assert.Empty(t, huge.Data)
	assert.Equal(t, 3, huge.TotalPages)
}

func TestListVendorsFilters(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter vendors.Filter
		want   int
	}{
		{"category", vendors.Filter{Category: "Restaurant"}, 7},
		{"min rating inclusive", vendors.Filter{MinRating: 4.5}, 5},
		{"search is case-insensitive", vendors.Filter{Search: "GOLDEN"}, 1},
		{"search matches description", vendors.Filter{Search: "tandoor"}, 1},
		{"combined", vendors.Filter{Category: "Restaurant", MinRating: 4.5}, 3},
		{"no match", vendors.Filter{Category: "Spaceport"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := h.svc.Vendors.ListVendors(ctx, 1, 50, tt.filter)
			require.NoError(t, err)
			assert.Len(t, page.Data, tt.want)
			assert.Equal(t, tt.want, page.Total)
		})
	}
}

func TestGetVendor(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	v, err := h.svc.Vendors.GetVendor(ctx, "vendor-1")
	require.NoError(t, err)
	assert.Equal(t, "The Golden Fork", v.Name)
	assert.Equal(t, 4.7, v.Rating)
	assert.Equal(t, 3, v.ReviewCount)

	_, err = h.svc.Vendors.GetVendor(ctx, "vendor-999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "vendor not found")

	assert.Equal(t, "Saffron House", h.svc.Vendors.GetVendorName(ctx, "vendor-2"))
	assert.Equal(t, vendors.UnknownName, h.svc.Vendors.GetVendorName(ctx, "vendor-999"))
}

func TestSearchVendors(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	got, err := h.svc.Vendors.SearchVendors(ctx, "restaurant")
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = h.svc.Vendors.SearchVendors(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = h.svc.Vendors.SearchVendors(ctx, "seoul")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "vendor-5", got[0].ID)

	all, err := h.svc.Vendors.ListAllVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 23)
}

func TestListReviews(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	approved, err := h.svc.Reviews.ListReviews(ctx, "vendor-1", "")
	require.NoError(t, err)
	assert.Len(t, approved, 3)
	for _, rv := range approved {
		assert.Equal(t, reviews.StatusApproved, rv.Status)
	}

	all, err := h.svc.Reviews.ListReviews(ctx, "vendor-1", FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := h.svc.Reviews.ListReviews(ctx, "vendor-23", FilterApproved)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = h.svc.Reviews.ListReviews(ctx, "vendor-1", "bogus")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitReview(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	rv, err := h.svc.Reviews.SubmitReview(ctx, "vendor-1", "user-1", "John Doe", ReviewInput{
		Rating: 2,
		Text:   "Service has slipped lately, we waited a long time.",
	})
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusPending, rv.Status)
	assert.Equal(t, h.clock.Now(), rv.CreatedAt)
	assert.NotEmpty(t, rv.ID)

	// Pending reviews never move the vendor's numbers.
	v := h.vendor(t, "vendor-1")
	assert.Equal(t, 4.7, v.Rating)
	assert.Equal(t, 3, v.ReviewCount)

	pending, err := h.svc.Reviews.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 4)

	_, err = h.svc.Reviews.SubmitReview(ctx, "vendor-999", "user-1", "John Doe", ReviewInput{Rating: 5, Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModerationQueues(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	pending, err := h.svc.Reviews.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	flagged, err := h.svc.Reviews.ListFlagged(ctx)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, "review-15", flagged[0].ID)

	all, err := h.svc.Reviews.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 16)
	assert.Equal(t, "review-16", all[0].ID)
	assert.Equal(t, "review-1", all[len(all)-1].ID)
}

func TestApproveRecomputesAggregates(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	rv, err := h.svc.Reviews.ApproveReview(ctx, "review-12")
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusApproved, rv.Status)

	// 5, 4, 5, 3
	v := h.vendor(t, "vendor-1")
	assert.Equal(t, 4.3, v.Rating)
	assert.Equal(t, 4, v.ReviewCount)

	// Approving again leaves the numbers where they are.
	_, err = h.svc.Reviews.ApproveReview(ctx, "review-12")
	require.NoError(t, err)
	v = h.vendor(t, "vendor-1")
	assert.Equal(t, 4.3, v.Rating)
	assert.Equal(t, 4, v.ReviewCount)

	// A vendor with no prior reviews picks up its first one.
	_, err = h.svc.Reviews.ApproveReview(ctx, "review-13")
	require.NoError(t, err)
	v = h.vendor(t, "vendor-6")
	assert.Equal(t, 4.0, v.Rating)
	assert.Equal(t, 1, v.ReviewCount)
}

func TestRejectAndFlagLeavePendingAggregates(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	rv, err := h.svc.Reviews.RejectReview(ctx, "review-14")
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusRejected, rv.Status)

	v := h.vendor(t, "vendor-11")
	assert.Equal(t, 0.0, v.Rating)
	assert.Equal(t, 0, v.ReviewCount)

	rv, err = h.svc.Reviews.FlagReview(ctx, "review-13")
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusFlagged, rv.Status)

	flagged, err := h.svc.Reviews.ListFlagged(ctx)
	require.NoError(t, err)
	assert.Len(t, flagged, 2)
}

func TestUnapproveRecomputesAggregates(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	_, err := h.svc.Reviews.RejectReview(ctx, "review-4")
	require.NoError(t, err)

	v := h.vendor(t, "vendor-2")
	assert.Equal(t, 4.0, v.Rating)
	assert.Equal(t, 1, v.ReviewCount)

	// With no approved review left the last known numbers stay.
	_, err = h.svc.Reviews.FlagReview(ctx, "review-6")
	require.NoError(t, err)

	v = h.vendor(t, "vendor-3")
	assert.Equal(t, 3.0, v.Rating)
	assert.Equal(t, 1, v.ReviewCount)
}

func TestModerateUnknownReview(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	_, err := h.svc.Reviews.ApproveReview(ctx, "review-999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "review not found")
}

func TestPermissiveTransitions(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	// A rejected review can still be approved.
	rv, err := h.svc.Reviews.ApproveReview(ctx, "review-16")
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusApproved, rv.Status)

	v := h.vendor(t, "vendor-3")
	assert.Equal(t, 2.0, v.Rating)
	assert.Equal(t, 2, v.ReviewCount)
}

func TestStrictTransitions(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		action  func(context.Context, string) (*reviews.Review, error)
		wantErr error
	}{
		{"pending to approved", "review-12", h.svc.Reviews.ApproveReview, nil},
		{"flagged to rejected", "review-15", h.svc.Reviews.RejectReview, nil},
		{"pending to flagged", "review-14", h.svc.Reviews.FlagReview, nil},
		{"rejected to approved", "review-16", h.svc.Reviews.ApproveReview, ErrInvalidTransition},
		{"approved to flagged", "review-1", h.svc.Reviews.FlagReview, ErrInvalidTransition},
		{"approved to approved", "review-2", h.svc.Reviews.ApproveReview, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.action(ctx, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	rv, err := h.store.Reviews.GetByID(ctx, "review-16")
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusRejected, rv.Status)
}

func TestRateLimit(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	first, err := h.svc.RateLimit.CheckRateLimit(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Zero(t, first.WaitTimeSeconds)

	second, err := h.svc.RateLimit.CheckRateLimit(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Equal(t, 60, second.WaitTimeSeconds)

	other, err := h.svc.RateLimit.PeekRateLimit(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	h.clock.Advance(20500 * time.Millisecond)
	peek, err := h.svc.RateLimit.PeekRateLimit(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, peek.Allowed)
	assert.Equal(t, 40, peek.WaitTimeSeconds)

	h.clock.Advance(40 * time.Second)
	after, err := h.svc.RateLimit.CheckRateLimit(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, after.Allowed)

	h.svc.RateLimit.ResetRateLimit("user-1")
	reset, err := h.svc.RateLimit.PeekRateLimit(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, reset.Allowed)
}

func TestCancelledContext(t *testing.T) {
	h := newHarness(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.svc.Vendors.ListVendors(ctx, 1, 9, vendors.Filter{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = h.svc.Reviews.ApproveReview(ctx, "review-12")
	assert.ErrorIs(t, err, context.Canceled)
}
