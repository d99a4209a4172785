package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"vendorly/internal/auth"
	"vendorly/internal/domain/users"
	"vendorly/internal/latency"
	"vendorly/internal/mailer"
)

// Session is the result of a successful login or signup.
type Session struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

type AuthService struct {
	users        users.Store
	auth         auth.Authenticator
	latency      *latency.Simulator
	logger       *zap.SugaredLogger
	mailer       mailer.Client
	now          func() time.Time
	frontendURL  string
	passwordCost int
	background   func(fn func())
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.Password.Compare(password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}

	user := &users.User{
		ID:        "user-" + uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      users.RoleUser,
		CreatedAt: s.now().UTC(),
	}

	cost := s.passwordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if err := user.Password.SetWithCost(password, cost); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Infow("user registered", "user_id", user.ID)

	welcome := *user
	s.background(func() { s.sendWelcome(&welcome) })

	return s.issue(user)
}

// ResolveSession maps a token back to its user. Any failure (bad signature,
// expiry, unknown user) yields nil.
func (s *AuthService) ResolveSession(ctx context.Context, token string) *users.User {
	if err := s.latency.Wait(ctx, latency.Session); err != nil {
		return nil
	}

	claims, err := s.auth.ValidateToken(token)
	if err != nil {
		return nil
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

func (s *AuthService) issue(user *users.User) (*Session, error) {
	token, err := s.auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

func (s *AuthService) sendWelcome(user *users.User) {
	vars := struct {
		Username   string
		VendorsURL string
	}{
		Username:   user.Name,
		VendorsURL: s.frontendURL + "/vendors",
	}

	status, err := s.mailer.Send(mailer.UserWelcomeTemplate, user.Name, user.Email, vars)
	if err != nil {
		s.logger.Warnw("error sending welcome email", "user_id", user.ID, "error", err)
		return
	}
	if status != 0 {
		s.logger.Infow("welcome email sent", "user_id", user.ID, "status", status)
	}
}
