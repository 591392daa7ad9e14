package core

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Sessions is a bounded store of view states. The least recently used
// session is evicted when the store is full, and a session untouched for
// the TTL expires.
type Sessions struct {
	cache *expirable.LRU[string, *ViewState]
}

// NewSessions creates a store holding at most size sessions.
func NewSessions(size int, ttl time.Duration) *Sessions {
	onEvict := func(id string, _ *ViewState) {
		slog.Debug("view session evicted", "session", id)
	}
	return &Sessions{cache: expirable.NewLRU[string, *ViewState](size, onEvict, ttl)}
}

// Create stores st under a new random id.
func (s *Sessions) Create(st *ViewState) string {
	id := uuid.NewString()
	s.cache.Add(id, st)
	return id
}

// Get returns the session and restarts its TTL.
func (s *Sessions) Get(id string) (*ViewState, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	st, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	s.cache.Add(id, st)
	return st, true
}

// Remove drops a session.
func (s *Sessions) Remove(id string) {
	s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	return s.cache.Len()
}
