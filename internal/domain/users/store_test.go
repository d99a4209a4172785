package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(User{ID: "u1", Email: "a@example.com", Name: "A", Role: RoleUser})

	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = repo.GetByEmail(ctx, "A@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Create(ctx, &User{ID: "u2", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	require.NoError(t, repo.Create(ctx, &User{ID: "u2", Email: "b@example.com", Name: "B"}))
	second, err := repo.GetByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u2", second.ID)

	// Callers get copies.
	got.Name = "changed"
	again, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestPassword(t *testing.T) {
	var p password
	require.NoError(t, p.SetWithCost("hunter22", bcrypt.MinCost))

	assert.NoError(t, p.Compare("hunter22"))
	assert.Error(t, p.Compare("hunter23"))
	assert.NotContains(t, string(p.hash), "hunter22")
}
