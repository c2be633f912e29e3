package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

// --- fakes ---

// fakeBackend stands in for the REST backend. It records every call so tests can
// assert that rejected requests never reach it.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	tx        models.Transaction
	txs       []models.Transaction
	getErr    error
	listErr   error
	updated   *models.Transaction
	updErr    error
	intent    models.PaymentIntent
	intErr    error
	created   models.Transaction
	createErr error

	dispute     *models.Dispute
	disputeErr  error
	byID        models.Dispute
	byIDErr     error
	disputes    []models.Dispute
	filed       models.Dispute
	fileErr     error
	resolved    models.Dispute
	resolveErr  error
	lastDispute dto.DisputeRequest
	lastResolve dto.ResolveDisputeRequest

	review      *models.Review
	checkErr    error
	createdRv   models.Review
	reviewErr   error
	lastReview  dto.ReviewRequest
	lastBooking dto.BookingRequest
	lastStatus  models.TransactionStatus
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) GetTransaction(_ context.Context, _, _ string) (models.Transaction, error) {
	f.record("GetTransaction")
	return f.tx, f.getErr
}

func (f *fakeBackend) ListMyTransactions(_ context.Context, _ string) ([]models.Transaction, error) {
	f.record("ListMyTransactions")
	return f.txs, f.listErr
}

func (f *fakeBackend) UpdateStatus(_ context.Context, _, _ string, status models.TransactionStatus) (models.Transaction, error) {
	f.record("UpdateStatus")
	f.lastStatus = status
	if f.updErr != nil {
		return models.Transaction{}, f.updErr
	}
	if f.updated != nil {
		return *f.updated, nil
	}
	tx := f.tx
	tx.Status = status
	return tx, nil
}

func (f *fakeBackend) CreateTransaction(_ context.Context, _ string, req dto.BookingRequest) (models.Transaction, error) {
	f.record("CreateTransaction")
	f.lastBooking = req
	return f.created, f.createErr
}

func (f *fakeBackend) CreatePaymentIntent(_ context.Context, _, _ string) (models.PaymentIntent, error) {
	f.record("CreatePaymentIntent")
	return f.intent, f.intErr
}

func (f *fakeBackend) CreateDispute(_ context.Context, _ string, req dto.DisputeRequest) (models.Dispute, error) {
	f.record("CreateDispute")
	f.lastDispute = req
	return f.filed, f.fileErr
}

func (f *fakeBackend) GetDispute(_ context.Context, _, _ string) (models.Dispute, error) {
	f.record("GetDispute")
	return f.byID, f.byIDErr
}

func (f *fakeBackend) GetDisputeByTransaction(_ context.Context, _, _ string) (*models.Dispute, error) {
	f.record("GetDisputeByTransaction")
	return f.dispute, f.disputeErr
}

func (f *fakeBackend) ListMyDisputes(_ context.Context, _ string) ([]models.Dispute, error) {
	f.record("ListMyDisputes")
	return f.disputes, nil
}

func (f *fakeBackend) ResolveDispute(_ context.Context, _, _ string, req dto.ResolveDisputeRequest) (models.Dispute, error) {
	f.record("ResolveDispute")
	f.lastResolve = req
	return f.resolved, f.resolveErr
}

func (f *fakeBackend) CheckReview(_ context.Context, _, _ string) (*models.Review, error) {
	f.record("CheckReview")
	return f.review, f.checkErr
}

func (f *fakeBackend) CreateReview(_ context.Context, _ string, req dto.ReviewRequest) (models.Review, error) {
	f.record("CreateReview")
	f.lastReview = req
	return f.createdRv, f.reviewErr
}

const (
	ownerID    = "owner-1"
	borrowerID = "borrower-1"
)

func testTx(status models.TransactionStatus) models.Transaction {
	return models.Transaction{
		ID:            "tx-1",
		ListingID:     "listing-1",
		OwnerID:       ownerID,
		BorrowerID:    borrowerID,
		Status:        status,
		StartDate:     models.NewDate(2025, 6, 1),
		EndDate:       models.NewDate(2025, 6, 5),
		TotalAmount:   decimal.RequireFromString("40.00"),
		ServiceFee:    decimal.RequireFromString("2.00"),
		PaymentStatus: models.PaymentSucceeded,
	}
}

func sessionFor(userID string, cached ...models.Transaction) *session.Session {
	sess := session.New(models.Actor{UserID: userID, Role: models.PlatformUser, Token: "tok-" + userID})
	for _, tx := range cached {
		sess.StoreTransaction(tx)
	}
	return sess
}
