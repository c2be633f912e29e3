package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/middleware"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/response"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

type disputeService interface {
	File(ctx context.Context, sess *session.Session, req dto.DisputeRequest) (models.Dispute, error)
	GetByTransaction(ctx context.Context, sess *session.Session, transactionID string) (*models.Dispute, error)
	ListMine(ctx context.Context, sess *session.Session) ([]models.Dispute, error)
	Resolve(ctx context.Context, sess *session.Session, disputeID string, req dto.ResolveDisputeRequest) (models.Dispute, error)
}

type disputeHandlers struct {
	ResponseHandler response.ResponseHandler
	DisputeSvc      disputeService
}

func NewDisputeHandlers(deps *Deps) *disputeHandlers {
	return &disputeHandlers{
		ResponseHandler: deps.ResponseHandler,
		DisputeSvc:      deps.DisputeSvc,
	}
}

func (h *disputeHandlers) DisputeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.File)
	r.Get("/my", h.ListMine)
	r.Get("/transaction/{id}", h.GetByTransaction)
	r.With(middleware.RequireModerator).Put("/{id}/resolve", h.Resolve)
	return r
}

// ModerationRoutes is the subset served to the moderation console.
func (h *disputeHandlers) ModerationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireModerator)
	r.Get("/transaction/{id}", h.GetByTransaction)
	r.Put("/{id}/resolve", h.Resolve)
	return r
}

func (h *disputeHandlers) File(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	var body dto.DisputeRequest
	if err := decodeBody(r, &body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	d, err := h.DisputeSvc.File(r.Context(), sess, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, d)
}

func (h *disputeHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	ds, err := h.DisputeSvc.ListMine(r.Context(), sess)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, ds)
}

// GetByTransaction answers data:null when the transaction has no dispute.
func (h *disputeHandlers) GetByTransaction(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	d, err := h.DisputeSvc.GetByTransaction(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *disputeHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	var body dto.ResolveDisputeRequest
	if err := decodeBody(r, &body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	d, err := h.DisputeSvc.Resolve(r.Context(), sess, chi.URLParam(r, "id"), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}
