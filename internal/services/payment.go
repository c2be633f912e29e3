package services

import (
	"context"
	"strings"

	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/lifecycle"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

type paymentBackend interface {
	GetTransaction(ctx context.Context, token, id string) (models.Transaction, error)
	CreatePaymentIntent(ctx context.Context, token, transactionID string) (models.PaymentIntent, error)
}

// paymentService obtains payment intents and interprets what the payment SDK reported.
// It never sets a transaction's status; the owner still has to accept.
type paymentService struct {
	backend paymentBackend
}

func NewPaymentService(backend paymentBackend) *paymentService {
	return &paymentService{backend: backend}
}

// CreateIntent may be called any number of times while the transaction is PENDING.
func (s *paymentService) CreateIntent(ctx context.Context, sess *session.Session, transactionID string) (models.PaymentIntent, error) {
	tx, err := cachedTransaction(ctx, sess, s.backend, transactionID)
	if err != nil {
		return models.PaymentIntent{}, err
	}

	log, ctx := logger.With(ctx, "transaction_id", transactionID)

	switch {
	case tx.IsFree:
		return models.PaymentIntent{}, errs.NewPaymentInitError("free transactions do not take payment")
	case tx.Status != models.StatusPending:
		return models.PaymentIntent{}, errs.NewPaymentInitError("payment is only possible while the transaction is PENDING")
	case lifecycle.RoleOf(tx, sess.UserID()) != models.RoleBorrower:
		return models.PaymentIntent{}, errs.NewPaymentInitError("only the borrower can pay for this transaction")
	case tx.PaymentStatus.Settled():
		return models.PaymentIntent{}, errs.NewPaymentInitError("this transaction is already paid")
	}

	intent, err := s.backend.CreatePaymentIntent(ctx, sess.Token(), tx.ID)
	if err != nil {
		log.Warn("payment intent failed", "error", err)
		if errs.IsUnavailable(err) {
			return models.PaymentIntent{}, err
		}
		return models.PaymentIntent{}, errs.NewPaymentInitError(err.Error())
	}

	log.Info("payment intent created", "amount", intent.Amount.String(), "currency", intent.Currency)
	return intent, nil
}

// Confirm acts on the SDK outcome. A cancel returns (nil, nil) and changes nothing.
// A success refreshes the record, whose payment status the backend updates out of band.
func (s *paymentService) Confirm(ctx context.Context, sess *session.Session, transactionID string, outcome models.PaymentOutcome, message string) (*models.Transaction, error) {
	if transactionID == "" {
		return nil, errs.NewValidationError("transactionId is required")
	}
	log, ctx := logger.With(ctx, "transaction_id", transactionID)

	switch outcome {
	case models.OutcomeCanceled:
		log.Info("payment canceled by actor")
		return nil, nil
	case models.OutcomeSucceeded:
		tx, err := refreshTransaction(ctx, sess, s.backend, transactionID)
		if err != nil {
			return nil, err
		}
		log.Info("payment confirmed", "payment_status", tx.PaymentStatus)
		return &tx, nil
	default:
		if strings.TrimSpace(message) == "" {
			message = "payment failed, please try another payment method"
		}
		log.Warn("payment failed", "error", message)
		return nil, errs.NewPaymentConfirmError(message)
	}
}

// ParseOutcome maps a payment SDK result code or a web redirect_status to an outcome.
// "processing" counts as success: capture finishes on the backend.
func ParseOutcome(raw string) models.PaymentOutcome {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "succeeded", "success", "completed", "processing":
		return models.OutcomeSucceeded
	case "canceled", "cancelled":
		return models.OutcomeCanceled
	default:
		return models.OutcomeFailed
	}
}
