package user

import "context"

// Repository defines data access for staff accounts.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
