package cart

import "sync"

// Sessions hands out exactly one cart per active session. It replaces the
// hidden global cart: every view that reads or mutates a cart resolves it
// through the session id it was given.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Cart returns the session's cart, creating it on first use.
func (s *Sessions) Cart(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

// Drop discards the session's cart entirely.
func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}
