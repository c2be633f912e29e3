package middleware

import (
	"context"
	"net/http"

	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

type sessionSource interface {
	Acquire(actor models.Actor) *session.Session
}

type sessionMiddleware struct {
	Sessions sessionSource
}

func NewSessionMiddleware(sessions sessionSource) *sessionMiddleware {
	return &sessionMiddleware{Sessions: sessions}
}

const sessionKey contextKey = "session"

// AttachSession binds the actor's session to the request. It must run after BearerAuth.
func (m *sessionMiddleware) AttachSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := Actor(r.Context())
		if actor.UserID == "" {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		sess := m.Sessions.Acquire(actor)
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Session returns the request's session, or nil outside AttachSession.
func Session(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

// WithSession stores sess in ctx; handlers under test use it in place of AttachSession.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}
