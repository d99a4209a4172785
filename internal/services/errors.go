package services

import (
	"errors"

	"vendorly/internal/domain/users"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = users.ErrDuplicateEmail
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid review status transition")
)

// notFound keeps the repository message ("review not found") while making
// errors.Is(err, ErrNotFound) true.
type notFound struct{ cause error }

func (e notFound) Error() string { return e.cause.Error() }

func (e notFound) Is(target error) bool { return target == ErrNotFound }

func (e notFound) Unwrap() error { return e.cause }

func wrapNotFound(err error) error {
	return notFound{cause: err}
}
