package reviews

import (
	"errors"
	"time"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrUnknownStatus  = errors.New("unknown review status")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusFlagged  Status = "flagged"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFlagged:
		return true
	}
	return false
}

type Review struct {
	ID        string    `json:"id"`
	VendorID  string    `json:"vendor_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"` // 1-5
	Text      string    `json:"text"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
