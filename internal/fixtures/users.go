// Package fixtures holds the seed data every container starts from. Each
// accessor returns a fresh copy.
package fixtures

import (
	"fmt"
	"time"

	"vendorly/internal/domain/users"
)

type seedUser struct {
	id        string
	email     string
	name      string
	password  string
	role      users.Role
	createdAt string
}

var seedUsers = []seedUser{
	{"user-1", "john@example.com", "John Doe", "password123", users.RoleUser, "2024-01-15T10:30:00Z"},
	{"user-2", "jane@example.com", "Jane Smith", "password123", users.RoleUser, "2024-02-20T14:45:00Z"},
	{"user-3", "admin@example.com", "Admin User", "admin123", users.RoleAdmin, "2024-01-01T00:00:00Z"},
	{"user-4", "sarah@example.com", "Sarah Johnson", "password123", users.RoleUser, "2024-03-10T09:15:00Z"},
}

// Users hashes the seed credentials with the given bcrypt cost.
func Users(cost int) ([]users.User, error) {
	out := make([]users.User, 0, len(seedUsers))
	for _, s := range seedUsers {
		u := users.User{
			ID:        s.id,
			Email:     s.email,
			Name:      s.name,
			Role:      s.role,
			CreatedAt: mustTime(s.createdAt),
		}
		if err := u.Password.SetWithCost(s.password, cost); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", s.id, err)
		}
		out = append(out, u)
	}
	return out, nil
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("fixtures: bad timestamp %q: %v", s, err))
	}
	return t
}
