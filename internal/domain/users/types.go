package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Password  password  `json:"-"` // never leaves the repository
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// password holds only the bcrypt hash of the credential.
type password struct {
	hash []byte
}

// SetWithCost hashes text at cost. Seeding and tests pass bcrypt.MinCost.
func (p *password) SetWithCost(text string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), cost)
	if err != nil {
		return err
	}

	p.hash = hash
	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}
