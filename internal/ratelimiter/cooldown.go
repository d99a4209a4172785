package ratelimiter

import (
	"math"
	"sync"
	"time"
)

// DefaultCooldown is the minimum gap between two review submissions by the
// same user.
const DefaultCooldown = 60 * time.Second

// Decision is the outcome of a cooldown check. WaitSeconds is only set when
// the caller is blocked.
type Decision struct {
	Allowed     bool
	WaitSeconds int
}

// Cooldown tracks the last accepted submission per user.
type Cooldown struct {
	mu       sync.Mutex
	last     map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func NewCooldown(cooldown time.Duration, now func() time.Time) *Cooldown {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &Cooldown{
		last:     make(map[string]time.Time),
		cooldown: cooldown,
		now:      now,
	}
}

// Check reports whether userID may submit now and, when allowed, records now
// as the user's last submission. An allowed Check consumes the window even
// if the caller never submits.
func (c *Cooldown) Check(userID string) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if d := c.decide(userID, now); !d.Allowed {
		return d
	}
	c.last[userID] = now
	return Decision{Allowed: true}
}

// Peek answers like Check without recording anything.
func (c *Cooldown) Peek(userID string) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.decide(userID, c.now())
}

func (c *Cooldown) Reset(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.last, userID)
}

func (c *Cooldown) decide(userID string, now time.Time) Decision {
	last, ok := c.last[userID]
	if !ok {
		return Decision{Allowed: true}
	}

	elapsed := now.Sub(last)
	if elapsed >= c.cooldown {
		return Decision{Allowed: true}
	}

	wait := int(math.Ceil((c.cooldown - elapsed).Seconds()))
	return Decision{Allowed: false, WaitSeconds: wait}
}
