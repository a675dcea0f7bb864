package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no user matches the given username or id.
var ErrNotFound = errors.New("user: not found")

// User is a staff account that can sign in to the terminal.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
