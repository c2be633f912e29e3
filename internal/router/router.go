package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/sharefair-gateway/internal/handlers"
	"github.com/GregMSThompson/sharefair-gateway/internal/middleware"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

type sessionSource interface {
	Acquire(actor models.Actor) *session.Session
}

// Auth groups what every authenticated route needs.
type Auth struct {
	Tokens   *middleware.Middleware
	Sessions sessionSource
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func base(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", healthz)
	return r
}

func NewRouter(deps *handlers.Deps, auth Auth) chi.Router {
	r := base(deps)

	txh := handlers.NewTransactionHandlers(deps)
	pyh := handlers.NewPaymentHandlers(deps)
	dsh := handlers.NewDisputeHandlers(deps)
	rvh := handlers.NewReviewHandlers(deps)
	ssh := handlers.NewSessionHandlers(deps)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Tokens.BearerAuth)

		// logout must not create the session it is about to drop
		r.Mount("/session", ssh.SessionRoutes())

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewSessionMiddleware(auth.Sessions).AttachSession)
			r.Mount("/transactions", txh.TransactionRoutes())
			r.Mount("/payments", pyh.PaymentRoutes())
			r.Mount("/disputes", dsh.DisputeRoutes())
			r.Mount("/reviews", rvh.ReviewRoutes())
		})
	})
	return r
}

// NewModerationRouter serves dispute review to moderators only.
func NewModerationRouter(deps *handlers.Deps, auth Auth) chi.Router {
	r := base(deps)

	dsh := handlers.NewDisputeHandlers(deps)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Tokens.BearerAuth)
		r.Use(middleware.NewSessionMiddleware(auth.Sessions).AttachSession)
		r.Mount("/disputes", dsh.ModerationRoutes())
	})
	return r
}
