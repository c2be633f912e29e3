package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/lifecycle"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
	"github.com/GregMSThompson/sharefair-gateway/internal/validation"
	"github.com/GregMSThompson/sharefair-gateway/pkg/helpers"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

type disputeBackend interface {
	GetTransaction(ctx context.Context, token, id string) (models.Transaction, error)
	CreateDispute(ctx context.Context, token string, req dto.DisputeRequest) (models.Dispute, error)
	GetDispute(ctx context.Context, token, id string) (models.Dispute, error)
	GetDisputeByTransaction(ctx context.Context, token, transactionID string) (*models.Dispute, error)
	ListMyDisputes(ctx context.Context, token string) ([]models.Dispute, error)
	ResolveDispute(ctx context.Context, token, disputeID string, req dto.ResolveDisputeRequest) (models.Dispute, error)
}

type disputeService struct {
	backend  disputeBackend
	validate *validator.Validate
}

func NewDisputeService(backend disputeBackend) *disputeService {
	return &disputeService{
		backend:  backend,
		validate: validation.New(),
	}
}

// File opens a dispute on an ACTIVE transaction. The backend moves the transaction
// to DISPUTED when it records the dispute, so the record is re-fetched afterwards.
// A second filing for the same transaction is left to the backend to refuse.
func (s *disputeService) File(ctx context.Context, sess *session.Session, req dto.DisputeRequest) (models.Dispute, error) {
	if err := validation.Check(s.validate, req); err != nil {
		return models.Dispute{}, err
	}
	if !req.Reason.Valid() {
		return models.Dispute{}, errs.NewValidationError("reason must be one of ITEM_NOT_RETURNED, ITEM_DAMAGED, NO_SHOW, PAYMENT_ISSUE, MISREPRESENTATION, OTHER")
	}
	// details are optional; blank text is not sent
	if strings.TrimSpace(helpers.Value(req.Details)) == "" {
		req.Details = nil
	}

	tx, err := cachedTransaction(ctx, sess, s.backend, req.TransactionID)
	if err != nil {
		return models.Dispute{}, err
	}

	log, ctx := logger.With(ctx, "transaction_id", tx.ID)

	if lifecycle.RoleOf(tx, sess.UserID()) == models.RoleNone {
		return models.Dispute{}, errs.NewForbiddenError("only the owner or the borrower can file a dispute")
	}
	if tx.Status != models.StatusActive {
		log.Warn("dispute rejected", "status", tx.Status)
		return models.Dispute{}, errs.NewInvalidDisputeStateError(string(tx.Status))
	}

	d, err := s.backend.CreateDispute(ctx, sess.Token(), req)
	if err != nil {
		log.Warn("backend refused dispute", "reason", req.Reason, "error", err)
		return models.Dispute{}, err
	}
	sess.StoreDispute(d)
	log.Info("dispute filed", "dispute_id", d.ID, "reason", d.Reason)

	if _, err := refreshTransaction(ctx, sess, s.backend, tx.ID); err != nil {
		log.Warn("transaction refresh after dispute failed", "error", err)
	}
	return d, nil
}

// GetByTransaction returns nil when the transaction has no dispute.
func (s *disputeService) GetByTransaction(ctx context.Context, sess *session.Session, transactionID string) (*models.Dispute, error) {
	if transactionID == "" {
		return nil, errs.NewValidationError("transactionId is required")
	}
	d, err := s.backend.GetDisputeByTransaction(ctx, sess.Token(), transactionID)
	if err != nil {
		return nil, err
	}
	if d != nil {
		sess.StoreDispute(*d)
	}
	return d, nil
}

func (s *disputeService) ListMine(ctx context.Context, sess *session.Session) ([]models.Dispute, error) {
	ds, err := s.backend.ListMyDisputes(ctx, sess.Token())
	if err != nil {
		return nil, err
	}
	for _, d := range ds {
		sess.StoreDispute(d)
	}
	return ds, nil
}

// Resolve settles a dispute as a moderator. A settled dispute is never reopened and a
// moderator who is a party to the transaction is refused; both checks load the dispute
// and the transaction when the session has not seen them yet.
// What happens to the parent transaction is decided by the backend alone.
func (s *disputeService) Resolve(ctx context.Context, sess *session.Session, disputeID string, req dto.ResolveDisputeRequest) (models.Dispute, error) {
	if disputeID == "" {
		return models.Dispute{}, errs.NewValidationError("disputeId is required")
	}
	if err := validation.Check(s.validate, req); err != nil {
		return models.Dispute{}, err
	}

	actor := sess.Actor()
	if !actor.Role.CanModerate() {
		return models.Dispute{}, errs.NewForbiddenError("only moderators can resolve disputes")
	}
	if !req.Status.Terminal() {
		return models.Dispute{}, errs.NewValidationError("status must be RESOLVED or CLOSED")
	}

	log, ctx := logger.With(ctx, "dispute_id", disputeID)

	target, err := s.dispute(ctx, sess, disputeID)
	if err != nil {
		return models.Dispute{}, err
	}
	if target.Status.Terminal() {
		log.Warn("resolve rejected", "status", target.Status)
		return models.Dispute{}, errs.NewDisputeSettledError(string(target.Status))
	}

	party, err := s.isParty(ctx, sess, target.TransactionID)
	if err != nil {
		return models.Dispute{}, err
	}
	if party {
		log.Warn("resolve rejected", "reason", "moderator is a party", "transaction_id", target.TransactionID)
		return models.Dispute{}, errs.NewForbiddenError("you cannot resolve a dispute on your own transaction")
	}

	resolved, err := s.backend.ResolveDispute(ctx, sess.Token(), disputeID, req)
	if err != nil {
		log.Warn("backend refused resolution", "status", req.Status, "error", err)
		return models.Dispute{}, err
	}
	sess.StoreDispute(resolved)
	log.Info("dispute resolved", "status", resolved.Status)
	return resolved, nil
}

// dispute returns the session's copy of the dispute, fetching it on a miss.
// A cached settled dispute stays settled, so the cache is trusted for the reopen check.
func (s *disputeService) dispute(ctx context.Context, sess *session.Session, disputeID string) (models.Dispute, error) {
	if d, ok := sess.DisputeByID(disputeID); ok {
		return d, nil
	}
	d, err := s.backend.GetDispute(ctx, sess.Token(), disputeID)
	if err != nil {
		return models.Dispute{}, err
	}
	sess.StoreDispute(d)
	return d, nil
}

// isParty reports whether the session's actor owns or borrows in the transaction.
// The backend refuses non-parties with 403, which answers the question too.
func (s *disputeService) isParty(ctx context.Context, sess *session.Session, transactionID string) (bool, error) {
	tx, err := cachedTransaction(ctx, sess, s.backend, transactionID)
	if errs.IsForbidden(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return lifecycle.RoleOf(tx, sess.UserID()) != models.RoleNone, nil
}
