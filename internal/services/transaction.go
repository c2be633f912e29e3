package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/lifecycle"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

// --- Dependencies (minimal interfaces scoped to this service) ---

type transactionBackend interface {
	GetTransaction(ctx context.Context, token, id string) (models.Transaction, error)
	ListMyTransactions(ctx context.Context, token string) ([]models.Transaction, error)
	UpdateStatus(ctx context.Context, token, id string, status models.TransactionStatus) (models.Transaction, error)
	GetDisputeByTransaction(ctx context.Context, token, transactionID string) (*models.Dispute, error)
	CheckReview(ctx context.Context, token, transactionID string) (*models.Review, error)
}

type transactionService struct {
	backend transactionBackend
}

func NewTransactionService(backend transactionBackend) *transactionService {
	return &transactionService{backend: backend}
}

// RequestTransition moves a transaction to target on behalf of the session's actor.
// The request is evaluated against the cached record first; a rejected request never
// reaches the status endpoint. A cached record that fails only the payment check is
// re-read once, since payment status changes on the backend. On a backend failure the
// cached record is kept as it was.
func (s *transactionService) RequestTransition(ctx context.Context, sess *session.Session, id string, target models.TransactionStatus) (models.Transaction, error) {
	if !target.Valid() {
		return models.Transaction{}, errs.NewValidationError("status must be one of PENDING, ACTIVE, COMPLETED, CANCELLED, DISPUTED")
	}

	_, wasCached := sess.Transaction(id)
	tx, err := cachedTransaction(ctx, sess, s.backend, id)
	if err != nil {
		return models.Transaction{}, err
	}

	log, ctx := logger.With(ctx, "transaction_id", id)

	role := lifecycle.RoleOf(tx, sess.UserID())
	req, err := lifecycle.Evaluate(tx, role, target)

	// payment settles on the backend out of band; re-read a cached record once before refusing
	var pr *errs.PaymentRequiredError
	if wasCached && errors.As(err, &pr) {
		log.Debug("payment not settled in cache, refreshing")
		tx, err = refreshTransaction(ctx, sess, s.backend, id)
		if err != nil {
			return models.Transaction{}, err
		}
		role = lifecycle.RoleOf(tx, sess.UserID())
		req, err = lifecycle.Evaluate(tx, role, target)
	}
	if err != nil {
		log.Warn("transition rejected", "from", tx.Status, "to", target, "role", role, "error", err)
		return models.Transaction{}, err
	}

	updated, err := s.backend.UpdateStatus(ctx, sess.Token(), req.TransactionID, req.To)
	if err != nil {
		log.Warn("backend refused transition", "from", req.From, "to", req.To, "error", err)
		return models.Transaction{}, err
	}

	sess.StoreTransaction(updated)
	log.Info("transaction status changed", "from", req.From, "to", updated.Status, "role", role)
	return updated, nil
}

// Get refreshes the record from the backend.
func (s *transactionService) Get(ctx context.Context, sess *session.Session, id string) (models.Transaction, error) {
	if id == "" {
		return models.Transaction{}, errs.NewValidationError("transactionId is required")
	}
	return refreshTransaction(ctx, sess, s.backend, id)
}

func (s *transactionService) ListMine(ctx context.Context, sess *session.Session) ([]models.Transaction, error) {
	txs, err := s.backend.ListMyTransactions(ctx, sess.Token())
	if err != nil {
		return nil, err
	}
	for _, tx := range txs {
		sess.StoreTransaction(tx)
	}
	return txs, nil
}

// Permitted lists the statuses the actor may currently request, from the cached record.
func (s *transactionService) Permitted(ctx context.Context, sess *session.Session, id string) (dto.TransitionsResponse, error) {
	tx, err := cachedTransaction(ctx, sess, s.backend, id)
	if err != nil {
		return dto.TransitionsResponse{}, err
	}
	role := lifecycle.RoleOf(tx, sess.UserID())
	return dto.TransitionsResponse{
		TransactionID: tx.ID,
		Role:          role,
		Transitions:   lifecycle.Permitted(tx, role),
	}, nil
}

// Detail refreshes the record and gathers the dispute and the actor's review so the
// UI can render every affordance from one answer.
func (s *transactionService) Detail(ctx context.Context, sess *session.Session, id string) (dto.TransactionView, error) {
	tx, err := s.Get(ctx, sess, id)
	if err != nil {
		return dto.TransactionView{}, err
	}

	role := lifecycle.RoleOf(tx, sess.UserID())
	if role == models.RoleNone {
		return dto.TransactionView{}, errs.NewForbiddenError("you are not a party to this transaction")
	}

	var (
		dispute *models.Dispute
		review  *models.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	if tx.Status == models.StatusDisputed || tx.Status == models.StatusActive {
		g.Go(func() error {
			d, err := s.backend.GetDisputeByTransaction(gctx, sess.Token(), tx.ID)
			if err != nil {
				return err
			}
			if d != nil {
				sess.StoreDispute(*d)
			}
			dispute = d
			return nil
		})
	}
	if tx.Status == models.StatusCompleted {
		g.Go(func() error {
			if rv, known := sess.ReviewCheck(tx.ID); known {
				review = rv
				return nil
			}
			rv, err := s.backend.CheckReview(gctx, sess.Token(), tx.ID)
			if err != nil {
				return err
			}
			sess.StoreReviewCheck(tx.ID, rv)
			review = rv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.TransactionView{}, err
	}

	return dto.TransactionView{
		Transaction: tx,
		Role:        role,
		Transitions: lifecycle.Permitted(tx, role),
		CanPay:      lifecycle.CanPay(tx, role),
		CanDispute:  lifecycle.CanFileDispute(tx, role) && (dispute == nil || dispute.Status.Terminal()),
		CanReview:   lifecycle.CanReview(tx, role, review != nil),
		Dispute:     dispute,
		Review:      review,
	}, nil
}
