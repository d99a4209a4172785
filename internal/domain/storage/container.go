package storage

import (
	"context"
	"fmt"
	"sync"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/users"
	"vendorly/internal/domain/vendors"
	"vendorly/internal/fixtures"
)

type Container struct {
	Users   users.Store
	Vendors vendors.Store
	Reviews reviews.Store

	// moderation serializes every review status change together with the
	// vendor aggregate recomputation it triggers.
	moderation sync.Mutex
}

type Seed struct {
	Users   []users.User
	Vendors []vendors.Vendor
	Reviews []reviews.Review
}

func NewContainer(seed Seed) *Container {
	return &Container{
		Users:   users.NewRepository(seed.Users...),
		Vendors: vendors.NewRepository(seed.Vendors...),
		Reviews: reviews.NewRepository(seed.Reviews...),
	}
}

// NewSeededContainer builds a container from the fixture set, hashing seed
// passwords with the given bcrypt cost.
func NewSeededContainer(passwordCost int) (*Container, error) {
	seedUsers, err := fixtures.Users(passwordCost)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	return NewContainer(Seed{
		Users:   seedUsers,
		Vendors: fixtures.Vendors(),
		Reviews: fixtures.Reviews(),
	}), nil
}

// WithModeration runs fn as a single writer over reviews and vendor
// aggregates.
func (c *Container) WithModeration(ctx context.Context, fn func(reviews.Store, vendors.Store) error) error {
	c.moderation.Lock()
	defer c.moderation.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(c.Reviews, c.Vendors)
}
