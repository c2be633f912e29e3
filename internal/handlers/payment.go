package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/response"
	"github.com/GregMSThompson/sharefair-gateway/internal/services"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

type paymentService interface {
	CreateIntent(ctx context.Context, sess *session.Session, transactionID string) (models.PaymentIntent, error)
	Confirm(ctx context.Context, sess *session.Session, transactionID string, outcome models.PaymentOutcome, message string) (*models.Transaction, error)
}

type paymentHandlers struct {
	ResponseHandler response.ResponseHandler
	PaymentSvc      paymentService
	ReturnURL       string
}

func NewPaymentHandlers(deps *Deps) *paymentHandlers {
	return &paymentHandlers{
		ResponseHandler: deps.ResponseHandler,
		PaymentSvc:      deps.PaymentSvc,
		ReturnURL:       deps.PaymentReturnURL,
	}
}

func (h *paymentHandlers) PaymentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/intent", h.CreateIntent)
	r.Post("/confirm", h.Confirm)
	r.Get("/return", h.Return)
	return r
}

type intentResponse struct {
	models.PaymentIntent
	ReturnURL string `json:"returnUrl,omitempty"`
}

type confirmResponse struct {
	Outcome     models.PaymentOutcome `json:"outcome"`
	Transaction *models.Transaction   `json:"transaction,omitempty"`
}

func (h *paymentHandlers) CreateIntent(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	var body dto.PaymentIntentRequest
	if err := decodeBody(r, &body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	intent, err := h.PaymentSvc.CreateIntent(r.Context(), sess, body.TransactionID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, intentResponse{PaymentIntent: intent, ReturnURL: h.ReturnURL})
}

// Confirm receives the outcome the mobile payment SDK reported.
func (h *paymentHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	var body dto.PaymentConfirmRequest
	if err := decodeBody(r, &body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.confirm(w, r, body.TransactionID, body.Result, body.Message)
}

// Return handles the web flow, where the payment page redirects back with redirect_status.
func (h *paymentHandlers) Return(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.confirm(w, r, q.Get("transactionId"), q.Get("redirect_status"), "")
}

func (h *paymentHandlers) confirm(w http.ResponseWriter, r *http.Request, transactionID, result, message string) {
	sess, ok := requestSession(w, r, h.ResponseHandler)
	if !ok {
		return
	}

	outcome := services.ParseOutcome(result)
	tx, err := h.PaymentSvc.Confirm(r.Context(), sess, transactionID, outcome, message)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, confirmResponse{Outcome: outcome, Transaction: tx})
}
