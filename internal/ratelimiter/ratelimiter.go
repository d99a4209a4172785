package ratelimiter

import "time"

// Limiter throttles callers identified by key (a client IP for the HTTP
// layer).
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
