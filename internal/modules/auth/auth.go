package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned for a bad username/password pair.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Authenticate reports whether the username/password pair matches a
	// stored account. An unknown username is a plain false, not an error.
	Authenticate(ctx context.Context, username, password string) (bool, error)
	// Login validates the credentials and issues a signed session token.
	Login(ctx context.Context, username, password string) (string, error)
}
