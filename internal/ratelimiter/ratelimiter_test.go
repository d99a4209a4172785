package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestFixedWindow_LimitsPerKey(t *testing.T) {
	clock := newFakeClock()
	rl := NewFixedWindowLimiter(2, 5*time.Second)
	rl.now = clock.Now

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 5*time.Second, retry)

	// other clients have their own window
	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok)

	clock.Advance(5 * time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok, "window should reset")
}

func TestFixedWindow_Sweep(t *testing.T) {
	clock := newFakeClock()
	rl := NewFixedWindowLimiter(1, time.Second)
	rl.now = clock.Now

	rl.Allow("a")
	clock.Advance(2 * time.Second)
	rl.Sweep()

	rl.Lock()
	defer rl.Unlock()
	assert.Empty(t, rl.clients)
}

func TestCooldown_CheckConsumesWindow(t *testing.T) {
	clock := newFakeClock()
	c := NewCooldown(60*time.Second, clock.Now)

	assert.Equal(t, Decision{Allowed: true}, c.Check("user-1"))

	clock.Advance(15 * time.Second)
	d := c.Check("user-1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 45, d.WaitSeconds)

	// a blocked check does not extend the window
	clock.Advance(45 * time.Second)
	assert.True(t, c.Check("user-1").Allowed)
}

func TestCooldown_WaitRoundsUp(t *testing.T) {
	clock := newFakeClock()
	c := NewCooldown(60*time.Second, clock.Now)

	c.Check("user-1")
	clock.Advance(59*time.Second + 500*time.Millisecond)
	assert.Equal(t, 1, c.Check("user-1").WaitSeconds)
}

func TestCooldown_PeekDoesNotRecord(t *testing.T) {
	clock := newFakeClock()
	c := NewCooldown(60*time.Second, clock.Now)

	assert.True(t, c.Peek("user-1").Allowed)
	assert.True(t, c.Peek("user-1").Allowed)
	assert.True(t, c.Check("user-1").Allowed)

	clock.Advance(10 * time.Second)
	assert.Equal(t, Decision{Allowed: false, WaitSeconds: 50}, c.Peek("user-1"))
}

func TestCooldown_UsersAreIndependent(t *testing.T) {
	c := NewCooldown(time.Minute, newFakeClock().Now)

	assert.True(t, c.Check("user-1").Allowed)
	assert.True(t, c.Check("user-2").Allowed)
	assert.False(t, c.Check("user-1").Allowed)
}

func TestCooldown_CheckAndReset(t *testing.T) {
	c := NewCooldown(time.Minute, newFakeClock().Now)

	assert.True(t, c.Check("user-1").Allowed)
	assert.False(t, c.Peek("user-1").Allowed)

	c.Reset("user-1")
	assert.True(t, c.Peek("user-1").Allowed)
}

func TestCooldown_Defaults(t *testing.T) {
	c := NewCooldown(0, nil)
	assert.Equal(t, DefaultCooldown, c.cooldown)
	assert.NotNil(t, c.now)
}
