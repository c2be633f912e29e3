package session

import (
	"sync"
	"time"

	"github.com/GregMSThompson/sharefair-gateway/internal/models"
)

// Registry hands out one Session per authenticated actor.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	clockNow func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		clockNow: time.Now,
	}
}

// Acquire returns the actor's live session, creating it on first use.
// A session whose token expired is discarded and replaced.
func (r *Registry) Acquire(actor models.Actor) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()

	if s, ok := r.sessions[actor.UserID]; ok {
		s.refreshToken(actor)
		return s
	}
	s := New(actor)
	r.sessions[actor.UserID] = s
	return s
}

// Discard ends the actor's session; its cache is dropped.
func (r *Registry) Discard(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok {
		return false
	}
	s.Clear()
	delete(r.sessions, userID)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) sweepLocked() {
	now := r.clockNow()
	for id, s := range r.sessions {
		exp := s.Actor().ExpiresAt
		if !exp.IsZero() && !now.Before(exp) {
			s.Clear()
			delete(r.sessions, id)
		}
	}
}
