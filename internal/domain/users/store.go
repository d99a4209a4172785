package users

import (
	"context"
	"sync"
)

type Store interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// Repository keeps users in memory. Emails are matched exactly, so
// "John@example.com" and "john@example.com" are different accounts.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
	order   []string
}

func NewRepository(seed ...User) *Repository {
	r := &Repository{
		byID:    make(map[string]*User, len(seed)),
		byEmail: make(map[string]string, len(seed)),
	}
	for i := range seed {
		u := seed[i]
		r.insert(&u)
	}
	return r
}

func (r *Repository) insert(u *User) {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *Repository) Create(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	cp := *user
	r.insert(&cp)
	return nil
}

