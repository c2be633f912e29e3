package backendclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/pkg/helpers"
)

func newTestAdapter(t *testing.T, h http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewAdapter(srv.URL+"/api/v1", time.Second, srv.Client())
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestUpdateStatusSendsTokenAndBody(t *testing.T) {
	var (
		gotAuth   string
		gotReqID  string
		gotMethod string
		gotPath   string
		gotBody   dto.StatusUpdateRequest
	)
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"id":"tx-1","ownerId":"o","borrowerId":"b","status":"ACTIVE","startDate":"2025-06-01","endDate":"2025-06-05","isFree":false,"totalAmount":42.5,"serviceFee":2.5,"paymentStatus":"PAID","createdAt":"2025-05-20T10:00:00"}}`)
	})

	tx, err := a.UpdateStatus(helpers.TestCtx(), "tok-1", "tx-1", models.StatusActive)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotReqID == "" {
		t.Fatal("X-Request-ID header missing")
	}
	if gotMethod != http.MethodPut || gotPath != "/api/v1/transactions/tx-1/status" {
		t.Fatalf("unexpected call %s %s", gotMethod, gotPath)
	}
	if gotBody.Status != models.StatusActive {
		t.Fatalf("body status = %q", gotBody.Status)
	}
	if tx.Status != models.StatusActive || tx.PaymentStatus != models.PaymentPaid {
		t.Fatalf("unexpected record %+v", tx)
	}
	if tx.StartDate.String() != "2025-06-01" || tx.TotalAmount.String() != "42.5" {
		t.Fatalf("dates or amounts not decoded: %+v", tx)
	}
}

func TestNonSuccessStatusKeepsBackendMessage(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, `{"success":false,"error":"BAD_REQUEST","message":"An open dispute already exists for this transaction"}`)
	})

	_, err := a.CreateDispute(helpers.TestCtx(), "tok", dto.DisputeRequest{TransactionID: "tx-1", Reason: models.ReasonOther})

	var be *errs.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %T %v", err, err)
	}
	if be.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", be.Status)
	}
	if be.Message != "An open dispute already exists for this transaction" {
		t.Fatalf("message not verbatim: %q", be.Message)
	}
}

func TestErrorOnlyEnvelopeFallsBackToErrorField(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, `{"success":false,"error":"Only the borrower can pay"}`)
	})

	_, err := a.CreatePaymentIntent(helpers.TestCtx(), "tok", "tx-1")

	var fe *errs.ForbiddenError
	if !errors.As(err, &fe) || fe.Message != "Only the borrower can pay" {
		t.Fatalf("expected ForbiddenError with backend text, got %v", err)
	}
}

func TestGetDisputeByTransactionNotFoundIsNil(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, `{"success":false,"error":"Dispute not found"}`)
	})

	d, err := a.GetDisputeByTransaction(helpers.TestCtx(), "tok", "tx-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d != nil {
		t.Fatalf("expected nil dispute, got %+v", d)
	}
}

func TestGetDispute(t *testing.T) {
	var gotPath string
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"id":"d1","transactionId":"tx-1","reporterId":"b","reason":"NO_SHOW","status":"UNDER_REVIEW","createdAt":"2025-06-02T09:00:00"}}`)
	})

	d, err := a.GetDispute(helpers.TestCtx(), "tok", "d1")
	if err != nil {
		t.Fatalf("GetDispute returned error: %v", err)
	}
	if gotPath != "/api/v1/disputes/d1" {
		t.Fatalf("path = %q", gotPath)
	}
	if d.TransactionID != "tx-1" || d.Status != models.DisputeUnderReview {
		t.Fatalf("unexpected dispute %+v", d)
	}
}

func TestCheckReviewNullDataIsNil(t *testing.T) {
	var gotPath string
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":null}`)
	})

	rv, err := a.CheckReview(helpers.TestCtx(), "tok", "tx-9")
	if err != nil {
		t.Fatalf("CheckReview returned error: %v", err)
	}
	if rv != nil {
		t.Fatalf("expected nil review, got %+v", rv)
	}
	if gotPath != "/api/v1/reviews/transaction/tx-9/check" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestCheckReviewReturnsExisting(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"id":"r1","transactionId":"tx-9","reviewerId":"u1","revieweeId":"u2","rating":4,"comment":""}}`)
	})

	rv, err := a.CheckReview(helpers.TestCtx(), "tok", "tx-9")
	if err != nil {
		t.Fatalf("CheckReview returned error: %v", err)
	}
	if rv == nil || rv.ID != "r1" || rv.Rating != 4 {
		t.Fatalf("unexpected review %+v", rv)
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	a := NewAdapter(base, time.Second, nil)
	_, err := a.GetTransaction(helpers.TestCtx(), "tok", "tx-1")
	if !errs.IsUnavailable(err) {
		t.Fatalf("expected BackendUnavailableError, got %v", err)
	}
}

func TestListMyTransactions(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/transactions/my" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":[{"id":"a","status":"PENDING"},{"id":"b","status":"COMPLETED"}]}`)
	})

	txs, err := a.ListMyTransactions(helpers.TestCtx(), "tok")
	if err != nil {
		t.Fatalf("ListMyTransactions returned error: %v", err)
	}
	if len(txs) != 2 || txs[1].Status != models.StatusCompleted {
		t.Fatalf("unexpected list %+v", txs)
	}
}
