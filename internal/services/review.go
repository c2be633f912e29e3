package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/lifecycle"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
	"github.com/GregMSThompson/sharefair-gateway/internal/validation"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

type reviewBackend interface {
	GetTransaction(ctx context.Context, token, id string) (models.Transaction, error)
	CheckReview(ctx context.Context, token, transactionID string) (*models.Review, error)
	CreateReview(ctx context.Context, token string, req dto.ReviewRequest) (models.Review, error)
}

type reviewService struct {
	backend  reviewBackend
	validate *validator.Validate
}

func NewReviewService(backend reviewBackend) *reviewService {
	return &reviewService{
		backend:  backend,
		validate: validation.New(),
	}
}

// CheckExisting returns the actor's review of the transaction, or nil when there is none.
// The answer is remembered for the rest of the session.
func (s *reviewService) CheckExisting(ctx context.Context, sess *session.Session, transactionID string) (*models.Review, error) {
	if transactionID == "" {
		return nil, errs.NewValidationError("transactionId is required")
	}
	rv, err := s.backend.CheckReview(ctx, sess.Token(), transactionID)
	if err != nil {
		return nil, err
	}
	sess.StoreReviewCheck(transactionID, rv)
	return rv, nil
}

// Submit records one review per (transaction, reviewer). Rating and state checks run
// before any network call.
func (s *reviewService) Submit(ctx context.Context, sess *session.Session, req dto.ReviewRequest) (models.Review, error) {
	if err := validation.Check(s.validate, req); err != nil {
		return models.Review{}, err
	}
	if req.Rating == 0 {
		return models.Review{}, errs.NewValidationError("rating is required")
	}
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		return models.Review{}, errs.NewValidationError("rating must be between 1 and 5")
	}

	tx, err := cachedTransaction(ctx, sess, s.backend, req.TransactionID)
	if err != nil {
		return models.Review{}, err
	}

	log, ctx := logger.With(ctx, "transaction_id", tx.ID)

	role := lifecycle.RoleOf(tx, sess.UserID())
	if role == models.RoleNone {
		return models.Review{}, errs.NewForbiddenError("only the owner or the borrower can review this transaction")
	}
	if tx.Status != models.StatusCompleted {
		log.Warn("review rejected", "status", tx.Status)
		return models.Review{}, errs.NewInvalidReviewStateError("reviews are only possible once the transaction is COMPLETED")
	}

	counterparty := tx.Counterparty(sess.UserID())
	if req.RevieweeID == "" {
		req.RevieweeID = counterparty
	}
	if req.RevieweeID != counterparty {
		return models.Review{}, errs.NewValidationError("you can only review the other party of the transaction")
	}

	existing, known := sess.ReviewCheck(tx.ID)
	if !known {
		existing, err = s.CheckExisting(ctx, sess, tx.ID)
		if err != nil {
			return models.Review{}, err
		}
	}
	if existing != nil {
		log.Warn("review rejected", "existing_review_id", existing.ID)
		return models.Review{}, errs.NewInvalidReviewStateError("you have already reviewed this transaction")
	}

	created, err := s.backend.CreateReview(ctx, sess.Token(), req)
	if err != nil {
		log.Warn("backend refused review", "error", err)
		return models.Review{}, err
	}
	sess.StoreReviewCheck(tx.ID, &created)
	log.Info("review submitted", "review_id", created.ID, "rating", created.Rating)
	return created, nil
}
