package user

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory user store for tests and local use.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryRepository creates an empty in-memory user repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User)}
}

func (r *MemoryRepository) CreateUser(ctx context.Context, u *User) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *u
	r.users[u.Username] = &clone
	return nil
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}
