// Package session owns the per-actor read-through cache.
//
// A Session is created for an authenticated actor and discarded on logout or when the
// actor's token expires. It never decides anything: every cached value is a copy of a
// backend response, and the latest response to land wins.
package session

import (
	"sync"

	"github.com/GregMSThompson/sharefair-gateway/internal/models"
)

type reviewCheck struct {
	review *models.Review
}

type Session struct {
	actor models.Actor

	mu           sync.RWMutex
	transactions map[string]models.Transaction
	disputes     map[string]models.Dispute // keyed by transaction id
	reviews      map[string]reviewCheck    // keyed by transaction id
}

func New(actor models.Actor) *Session {
	return &Session{
		actor:        actor,
		transactions: make(map[string]models.Transaction),
		disputes:     make(map[string]models.Dispute),
		reviews:      make(map[string]reviewCheck),
	}
}

func (s *Session) Actor() models.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actor
}

func (s *Session) UserID() string { return s.Actor().UserID }
func (s *Session) Token() string  { return s.Actor().Token }

// refreshToken keeps the session alive across token renewals of the same actor.
func (s *Session) refreshToken(actor models.Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = actor
}

func (s *Session) Transaction(id string) (models.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	return tx, ok
}

// StoreTransaction replaces the cached record with a server response.
func (s *Session) StoreTransaction(tx models.Transaction) {
	if tx.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[tx.ID] = tx
}

func (s *Session) Dispute(transactionID string) (models.Dispute, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.disputes[transactionID]
	return d, ok
}

// DisputeByID scans the cache for a dispute id.
func (s *Session) DisputeByID(id string) (models.Dispute, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.disputes {
		if d.ID == id {
			return d, true
		}
	}
	return models.Dispute{}, false
}

func (s *Session) StoreDispute(d models.Dispute) {
	if d.TransactionID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disputes[d.TransactionID] = d
}

// ReviewCheck returns the remembered answer of the existing-review check.
// known is false when the check has not been made in this session.
func (s *Session) ReviewCheck(transactionID string) (review *models.Review, known bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rc, ok := s.reviews[transactionID]
	if !ok {
		return nil, false
	}
	return rc.review, true
}

// StoreReviewCheck remembers the actor's review for a transaction; nil means none exists.
func (s *Session) StoreReviewCheck(transactionID string, review *models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[transactionID] = reviewCheck{review: review}
}

// Clear drops every cached value.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = make(map[string]models.Transaction)
	s.disputes = make(map[string]models.Dispute)
	s.reviews = make(map[string]reviewCheck)
}
