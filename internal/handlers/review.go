package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/response"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

type reviewService interface {
	CheckExisting(ctx context.Context, sess *session.Session, transactionID string) (*models.Review, error)
	Submit(ctx context.Context, sess *session.Session, req dto.ReviewRequest) (models.Review, error)
}

type reviewHandlers struct {
	ResponseHandler response.ResponseHandler
	ReviewSvc       reviewService
}

func NewReviewHandlers(deps *Deps) *reviewHandlers {
	return &reviewHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReviewSvc:       deps.ReviewSvc,
	}
}

func (h *reviewHandlers) ReviewRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	r.Get("/transaction/{id}/check", h.Check)
	return r
}

func (h *reviewHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	var body dto.ReviewRequest
	if err := decodeBody(r, &body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	rv, err := h.ReviewSvc.Submit(r.Context(), sess, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, rv)
}

// Check answers data:null when the actor has not reviewed the transaction.
func (h *reviewHandlers) Check(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	rv, err := h.ReviewSvc.CheckExisting(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, rv)
}
