package services

import (
	"context"

	"vendorly/internal/latency"
	"vendorly/internal/metrics"
	"vendorly/internal/ratelimiter"
)

type RateLimitResult struct {
	Allowed         bool `json:"allowed"`
	WaitTimeSeconds int  `json:"wait_time_seconds,omitempty"`
}

// RateLimitService enforces the per-user review cooldown.
type RateLimitService struct {
	cooldown *ratelimiter.Cooldown
	latency  *latency.Simulator
	metrics  *metrics.Metrics
}

// CheckRateLimit answers whether userID may submit and, if so, starts a new
// cooldown window. Checking without submitting still uses up the window;
// use PeekRateLimit to ask without consuming.
func (s *RateLimitService) CheckRateLimit(ctx context.Context, userID string) (RateLimitResult, error) {
	if err := s.latency.Wait(ctx, latency.RateLimit); err != nil {
		return RateLimitResult{}, err
	}
	return s.result(s.cooldown.Check(userID)), nil
}

func (s *RateLimitService) PeekRateLimit(ctx context.Context, userID string) (RateLimitResult, error) {
	if err := s.latency.Wait(ctx, latency.RateLimit); err != nil {
		return RateLimitResult{}, err
	}
	return s.result(s.cooldown.Peek(userID)), nil
}

func (s *RateLimitService) ResetRateLimit(userID string) {
	s.cooldown.Reset(userID)
}

func (s *RateLimitService) result(d ratelimiter.Decision) RateLimitResult {
	if !d.Allowed {
		s.metrics.ReviewRateLimited()
	}
	return RateLimitResult{Allowed: d.Allowed, WaitTimeSeconds: d.WaitSeconds}
}
