package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

// Middleware verifies the bearer tokens the Share Fair backend issues.
// The raw token is kept on the actor and forwarded on every backend call.
type Middleware struct {
	secret []byte
}

func NewMiddleware(secret []byte) *Middleware {
	return &Middleware{secret: secret}
}

// context key
type contextKey string

const actorKey contextKey = "actor"

type tokenClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (m *Middleware) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		actor, err := m.verify(parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Warn("token rejected", "error", err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		_, ctx := logger.With(r.Context(), "user_id", actor.UserID)
		ctx = WithActor(ctx, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) verify(raw string) (models.Actor, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Actor{}, err
	}
	if claims.Subject == "" {
		return models.Actor{}, jwt.ErrTokenInvalidSubject
	}

	role := models.PlatformRole(strings.ToUpper(strings.TrimPrefix(claims.Role, "ROLE_")))
	if role == "" {
		role = models.PlatformUser
	}

	return models.Actor{
		UserID:    claims.Subject,
		Role:      role,
		Token:     raw,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Actor returns the authenticated actor, or the zero Actor outside BearerAuth.
func Actor(ctx context.Context) models.Actor {
	actor, _ := ctx.Value(actorKey).(models.Actor)
	return actor
}

// WithActor stores actor in ctx the way BearerAuth does.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// UID returns the authenticated user id.
func UID(ctx context.Context) string {
	return Actor(ctx).UserID
}

// RequireModerator rejects actors whose role claim does not allow moderation.
func RequireModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Actor(r.Context()).Role.CanModerate() {
			http.Error(w, "moderator role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
