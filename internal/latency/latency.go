// Package latency simulates network round trips for the in-memory backend.
package latency

import (
	"context"
	"math/rand/v2"
	"time"
)

type Range struct {
	Min time.Duration
	Max time.Duration
}

// Per-operation delays.
var (
	Default   = Range{Min: 300 * time.Millisecond, Max: 800 * time.Millisecond}
	Session   = Range{Min: 200 * time.Millisecond, Max: 200 * time.Millisecond}
	Search    = Range{Min: 200 * time.Millisecond, Max: 400 * time.Millisecond}
	Submit    = Range{Min: 600 * time.Millisecond, Max: 1000 * time.Millisecond}
	Moderate  = Range{Min: 400 * time.Millisecond, Max: 600 * time.Millisecond}
	RateLimit = Range{Min: 100 * time.Millisecond, Max: 100 * time.Millisecond}
)

type Simulator struct {
	enabled bool
	pick    func(Range) time.Duration
}

func New() *Simulator {
	return &Simulator{enabled: true, pick: uniform}
}

// Disabled returns a simulator that never sleeps.
func Disabled() *Simulator {
	return &Simulator{}
}

// Pick returns the delay Wait would sleep for inside r.
func (s *Simulator) Pick(r Range) time.Duration {
	if s == nil || !s.enabled {
		return 0
	}
	return s.pick(r)
}

// Wait sleeps for a random duration inside r, returning ctx.Err() if the
// context ends first.
func (s *Simulator) Wait(ctx context.Context, r Range) error {
	d := s.Pick(r)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func uniform(r Range) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(rand.Int64N(int64(r.Max-r.Min)+1))
}
