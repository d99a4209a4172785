// Package notifications tells review authors what moderation decided.
package notifications

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/users"
	"vendorly/internal/domain/vendors"
	"vendorly/internal/mailer"
)

type ReviewEvent string

const (
	ReviewApproved ReviewEvent = "APPROVED"
	ReviewRejected ReviewEvent = "REJECTED"
)

// ErrNoRecipient is returned when the author account no longer exists.
var ErrNoRecipient = errors.New("no recipient for notification")

type Notifier struct {
	mailer      mailer.Client
	users       users.Store
	vendors     vendors.Store
	logger      *zap.SugaredLogger
	frontendURL string
}

func NewNotifier(m mailer.Client, us users.Store, vs vendors.Store, logger *zap.SugaredLogger, frontendURL string) *Notifier {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Notifier{mailer: m, users: us, vendors: vs, logger: logger, frontendURL: frontendURL}
}

// EventFor maps a moderated status to the event the author hears about.
// Flagging is internal to moderators, so it has none.
func EventFor(status reviews.Status) (ReviewEvent, bool) {
	switch status {
	case reviews.StatusApproved:
		return ReviewApproved, true
	case reviews.StatusRejected:
		return ReviewRejected, true
	}
	return "", false
}

// SendReviewNotification mails the author of rv. Statuses without an event
// are ignored.
func (n *Notifier) SendReviewNotification(ctx context.Context, rv *reviews.Review) error {
	event, ok := EventFor(rv.Status)
	if !ok {
		return nil
	}

	author, err := n.users.GetByID(ctx, rv.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNoRecipient, rv.UserID)
		}
		return err
	}

	vars := struct {
		Username   string
		VendorName string
		VendorURL  string
		Rating     int
		Approved   bool
	}{
		Username:   author.Name,
		VendorName: n.vendors.Name(ctx, rv.VendorID),
		VendorURL:  n.frontendURL + "/vendors/" + rv.VendorID,
		Rating:     rv.Rating,
		Approved:   event == ReviewApproved,
	}

	status, err := n.mailer.Send(mailer.ReviewModeratedTmpl, author.Name, author.Email, vars)
	if err != nil {
		return fmt.Errorf("send %s notification: %w", event, err)
	}
	if status != 0 {
		n.logger.Infow("review notification sent", "review_id", rv.ID, "event", event, "status", status)
	}
	return nil
}
