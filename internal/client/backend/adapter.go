package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

const (
	transactionsPath = "/transactions"
	paymentsPath     = "/payments"
	disputesPath     = "/disputes"
	reviewsPath      = "/reviews"
)

// Adapter talks to the Share Fair REST backend. Every call carries the actor's
// bearer token; nothing is retried.
type Adapter struct {
	baseURL string
	client  *http.Client
}

// NewAdapter builds an adapter rooted at baseURL (e.g. https://api.sharefair.example/api/v1).
// A nil client gets a default one bounded by timeout.
func NewAdapter(baseURL string, timeout time.Duration, client *http.Client) *Adapter {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (a *Adapter) CreateTransaction(ctx context.Context, token string, req dto.BookingRequest) (models.Transaction, error) {
	var tx models.Transaction
	err := a.do(ctx, token, http.MethodPost, transactionsPath, req, &tx)
	return tx, err
}

func (a *Adapter) GetTransaction(ctx context.Context, token, id string) (models.Transaction, error) {
	var tx models.Transaction
	err := a.do(ctx, token, http.MethodGet, transactionsPath+"/"+url.PathEscape(id), nil, &tx)
	return tx, err
}

func (a *Adapter) ListMyTransactions(ctx context.Context, token string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := a.do(ctx, token, http.MethodGet, transactionsPath+"/my", nil, &txs)
	return txs, err
}

// UpdateStatus calls the single transition endpoint; there is no sub-resource per edge.
func (a *Adapter) UpdateStatus(ctx context.Context, token, id string, status models.TransactionStatus) (models.Transaction, error) {
	var tx models.Transaction
	body := dto.StatusUpdateRequest{Status: status}
	err := a.do(ctx, token, http.MethodPut, transactionsPath+"/"+url.PathEscape(id)+"/status", body, &tx)
	return tx, err
}

func (a *Adapter) CreatePaymentIntent(ctx context.Context, token, transactionID string) (models.PaymentIntent, error) {
	var intent models.PaymentIntent
	body := dto.PaymentIntentRequest{TransactionID: transactionID}
	err := a.do(ctx, token, http.MethodPost, paymentsPath+"/intent", body, &intent)
	return intent, err
}

func (a *Adapter) CreateDispute(ctx context.Context, token string, req dto.DisputeRequest) (models.Dispute, error) {
	var d models.Dispute
	err := a.do(ctx, token, http.MethodPost, disputesPath, req, &d)
	return d, err
}

func (a *Adapter) GetDispute(ctx context.Context, token, id string) (models.Dispute, error) {
	var d models.Dispute
	err := a.do(ctx, token, http.MethodGet, disputesPath+"/"+url.PathEscape(id), nil, &d)
	return d, err
}

// GetDisputeByTransaction returns nil when the transaction has no dispute.
func (a *Adapter) GetDisputeByTransaction(ctx context.Context, token, transactionID string) (*models.Dispute, error) {
	var d *models.Dispute
	err := a.do(ctx, token, http.MethodGet, disputesPath+"/transaction/"+url.PathEscape(transactionID), nil, &d)
	if errs.IsNotFound(err) {
		return nil, nil
	}
	return d, err
}

func (a *Adapter) ListMyDisputes(ctx context.Context, token string) ([]models.Dispute, error) {
	var ds []models.Dispute
	err := a.do(ctx, token, http.MethodGet, disputesPath+"/my", nil, &ds)
	return ds, err
}

func (a *Adapter) ResolveDispute(ctx context.Context, token, disputeID string, req dto.ResolveDisputeRequest) (models.Dispute, error) {
	var d models.Dispute
	err := a.do(ctx, token, http.MethodPut, disputesPath+"/"+url.PathEscape(disputeID)+"/resolve", req, &d)
	return d, err
}

func (a *Adapter) CreateReview(ctx context.Context, token string, req dto.ReviewRequest) (models.Review, error) {
	var rv models.Review
	err := a.do(ctx, token, http.MethodPost, reviewsPath, req, &rv)
	return rv, err
}

// CheckReview returns the actor's review of the transaction, or nil when none exists.
func (a *Adapter) CheckReview(ctx context.Context, token, transactionID string) (*models.Review, error) {
	var rv *models.Review
	err := a.do(ctx, token, http.MethodGet, reviewsPath+"/transaction/"+url.PathEscape(transactionID)+"/check", nil, &rv)
	return rv, err
}

func (a *Adapter) do(ctx context.Context, token, method, path string, body, out any) error {
	log := logger.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		log.Warn("backend call failed", "method", method, "path", path, "backend_request_id", requestID, "error", err)
		return errs.NewBackendUnavailableError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewBackendUnavailableError(err)
	}

	var env dto.BackendEnvelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("backend rejected call",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"backend_request_id", requestID)
		return errs.FromStatus(resp.StatusCode, envelopeMessage(env))
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, decodeErr)
	}
	if !env.Success {
		return errs.FromStatus(http.StatusUnprocessableEntity, envelopeMessage(env))
	}

	log.Debug("backend call completed", "method", method, "path", path, "status", resp.StatusCode)
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

func envelopeMessage(env dto.BackendEnvelope) string {
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
