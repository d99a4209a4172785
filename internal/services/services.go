// Package services implements the vendor-review backend operations over an
// in-memory storage container. Every call waits out a simulated network
// delay before touching state.
package services

import (
	"time"

	"go.uber.org/zap"

	"vendorly/internal/auth"
	"vendorly/internal/domain/storage"
	"vendorly/internal/latency"
	"vendorly/internal/mailer"
	"vendorly/internal/metrics"
	"vendorly/internal/ratelimiter"
)

type Config struct {
	Store         *storage.Container
	Authenticator auth.Authenticator
	Latency       *latency.Simulator
	Logger        *zap.SugaredLogger
	Mailer        mailer.Client
	Metrics       *metrics.Metrics
	Now           func() time.Time

	// Cooldown between review submissions per user.
	Cooldown time.Duration
	// StrictTransitions turns on the moderation transition graph.
	StrictTransitions bool
	// FrontendURL is linked from the welcome mail.
	FrontendURL string
	// PasswordCost is the bcrypt cost for new accounts; 0 means bcrypt.DefaultCost.
	PasswordCost int
	// Background runs mail sends off the request path. Defaults to a bare goroutine.
	Background func(fn func())
}

type Services struct {
	Auth      *AuthService
	Vendors   *VendorService
	Reviews   *ReviewService
	RateLimit *RateLimitService
}

func New(cfg Config) *Services {
	if cfg.Latency == nil {
		cfg.Latency = latency.Disabled()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Mailer == nil {
		cfg.Mailer = mailer.Noop{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Background == nil {
		cfg.Background = func(fn func()) { go fn() }
	}

	return &Services{
		Auth: &AuthService{
			users:        cfg.Store.Users,
			auth:         cfg.Authenticator,
			latency:      cfg.Latency,
			logger:       cfg.Logger,
			mailer:       cfg.Mailer,
			now:          cfg.Now,
			frontendURL:  cfg.FrontendURL,
			passwordCost: cfg.PasswordCost,
			background:   cfg.Background,
		},
		Vendors: &VendorService{
			vendors: cfg.Store.Vendors,
			latency: cfg.Latency,
		},
		Reviews: &ReviewService{
			store:   cfg.Store,
			latency: cfg.Latency,
			logger:  cfg.Logger,
			metrics: cfg.Metrics,
			now:     cfg.Now,
			strict:  cfg.StrictTransitions,
		},
		RateLimit: &RateLimitService{
			cooldown: ratelimiter.NewCooldown(cfg.Cooldown, cfg.Now),
			latency:  cfg.Latency,
			metrics:  cfg.Metrics,
		},
	}
}
