package services

import (
	"context"

	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

type sessionRegistry interface {
	Discard(userID string) bool
}

type sessionService struct {
	registry sessionRegistry
}

func NewSessionService(registry sessionRegistry) *sessionService {
	return &sessionService{registry: registry}
}

// End drops the actor's session and everything cached in it.
func (s *sessionService) End(ctx context.Context, userID string) {
	log := logger.FromContext(ctx)

	if !s.registry.Discard(userID) {
		log.Debug("no session to end")
		return
	}
	log.Info("session ended")
}
