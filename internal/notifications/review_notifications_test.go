package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/users"
	"vendorly/internal/domain/vendors"
	"vendorly/internal/mailer"
)

type sentMail struct {
	template string
	name     string
	email    string
	data     any
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(templateFile, username, email string, data any) (int, error) {
	if m.err != nil {
		return -1, m.err
	}
	m.sent = append(m.sent, sentMail{templateFile, username, email, data})
	return 200, nil
}

func newNotifier(m mailer.Client) *Notifier {
	us := users.NewRepository(users.User{ID: "user-1", Name: "John Doe", Email: "john@example.com", Role: users.RoleUser})
	vs := vendors.NewRepository(vendors.Vendor{ID: "vendor-1", Name: "Bella Italia Trattoria"})
	return NewNotifier(m, us, vs, nil, "http://localhost:3000")
}

func TestEventFor(t *testing.T) {
	tests := []struct {
		status reviews.Status
		want   ReviewEvent
		ok     bool
	}{
		{reviews.StatusApproved, ReviewApproved, true},
		{reviews.StatusRejected, ReviewRejected, true},
		{reviews.StatusFlagged, "", false},
		{reviews.StatusPending, "", false},
	}
	for _, tt := range tests {
		got, ok := EventFor(tt.status)
		assert.Equal(t, tt.want, got, tt.status)
		assert.Equal(t, tt.ok, ok, tt.status)
	}
}

func TestSendReviewNotification(t *testing.T) {
	m := &recordingMailer{}
	n := newNotifier(m)

	rv := &reviews.Review{ID: "review-12", VendorID: "vendor-1", UserID: "user-1", Rating: 4, Status: reviews.StatusApproved}
	require.NoError(t, n.SendReviewNotification(context.Background(), rv))
	require.Len(t, m.sent, 1)
	assert.Equal(t, mailer.ReviewModeratedTmpl, m.sent[0].template)
	assert.Equal(t, "john@example.com", m.sent[0].email)

	rv.Status = reviews.StatusFlagged
	require.NoError(t, n.SendReviewNotification(context.Background(), rv))
	assert.Len(t, m.sent, 1, "flagging is not announced")
}

func TestSendReviewNotificationMissingAuthor(t *testing.T) {
	n := newNotifier(&recordingMailer{})

	rv := &reviews.Review{ID: "review-12", VendorID: "vendor-1", UserID: "user-gone", Status: reviews.StatusRejected}
	err := n.SendReviewNotification(context.Background(), rv)
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestSendReviewNotificationMailerError(t *testing.T) {
	n := newNotifier(&recordingMailer{err: errors.New("smtp down")})

	rv := &reviews.Review{ID: "review-12", VendorID: "vendor-1", UserID: "user-1", Status: reviews.StatusRejected}
	err := n.SendReviewNotification(context.Background(), rv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REJECTED")
}
