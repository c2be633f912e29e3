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

type transactionService interface {
	RequestTransition(ctx context.Context, sess *session.Session, id string, target models.TransactionStatus) (models.Transaction, error)
	ListMine(ctx context.Context, sess *session.Session) ([]models.Transaction, error)
	Permitted(ctx context.Context, sess *session.Session, id string) (dto.TransitionsResponse, error)
	Detail(ctx context.Context, sess *session.Session, id string) (dto.TransactionView, error)
}

type bookingService interface {
	Create(ctx context.Context, sess *session.Session, req dto.BookingRequest) (models.Transaction, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
	BookingSvc      bookingService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
		BookingSvc:      deps.BookingSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateBooking)
	r.Get("/my", h.ListMine)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Detail)
		r.Get("/transitions", h.Transitions)
		r.Put("/status", h.UpdateStatus)
	})
	return r
}

func (h *transactionHandlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	var body dto.BookingRequest
	if err := decodeBody(r, &body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	tx, err := h.BookingSvc.Create(r.Context(), sess, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	txs, err := h.TransactionSvc.ListMine(r.Context(), sess)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	view, err := h.TransactionSvc.Detail(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *transactionHandlers) Transitions(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	allowed, err := h.TransactionSvc.Permitted(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, allowed)
}

func (h *transactionHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	var body dto.StatusUpdateRequest
	if err := decodeBody(r, &body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	tx, err := h.TransactionSvc.RequestTransition(r.Context(), sess, chi.URLParam(r, "id"), body.Status)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}
