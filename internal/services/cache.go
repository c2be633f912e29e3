package services

import (
	"context"

	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

type transactionFetcher interface {
	GetTransaction(ctx context.Context, token, id string) (models.Transaction, error)
}

// cachedTransaction returns the session's copy of the record, fetching it on a miss.
func cachedTransaction(ctx context.Context, sess *session.Session, backend transactionFetcher, id string) (models.Transaction, error) {
	if id == "" {
		return models.Transaction{}, errs.NewValidationError("transactionId is required")
	}
	if tx, ok := sess.Transaction(id); ok {
		return tx, nil
	}
	return refreshTransaction(ctx, sess, backend, id)
}

// refreshTransaction replaces the cached record with the backend's current one.
// On failure the cached record is left untouched.
func refreshTransaction(ctx context.Context, sess *session.Session, backend transactionFetcher, id string) (models.Transaction, error) {
	tx, err := backend.GetTransaction(ctx, sess.Token(), id)
	if err != nil {
		return models.Transaction{}, err
	}
	sess.StoreTransaction(tx)
	return tx, nil
}
