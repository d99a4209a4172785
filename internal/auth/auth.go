package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a session token carries.
type Claims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

type Authenticator interface {
	GenerateToken(userID, role string) (string, error)
	ValidateToken(token string) (*Claims, error)
}
