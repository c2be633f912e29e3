package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sharefair-gateway/internal/middleware"
	"github.com/GregMSThompson/sharefair-gateway/internal/response"
)

type sessionService interface {
	End(ctx context.Context, userID string)
}

type sessionHandlers struct {
	ResponseHandler response.ResponseHandler
	SessionSvc      sessionService
}

func NewSessionHandlers(deps *Deps) *sessionHandlers {
	return &sessionHandlers{
		ResponseHandler: deps.ResponseHandler,
		SessionSvc:      deps.SessionSvc,
	}
}

func (h *sessionHandlers) SessionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Delete("/", h.Logout)
	return r
}

// Logout drops the cached state of the caller; the token itself is owned by the backend.
func (h *sessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.SessionSvc.End(r.Context(), middleware.UID(r.Context()))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
