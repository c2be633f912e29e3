package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/handlers"
	"github.com/GregMSThompson/sharefair-gateway/internal/middleware"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/response"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
)

var secret = []byte("router-secret")

type stubTransactions struct {
	sessions []*session.Session
}

func (s *stubTransactions) RequestTransition(context.Context, *session.Session, string, models.TransactionStatus) (models.Transaction, error) {
	return models.Transaction{}, nil
}

func (s *stubTransactions) ListMine(_ context.Context, sess *session.Session) ([]models.Transaction, error) {
	s.sessions = append(s.sessions, sess)
	return []models.Transaction{}, nil
}

func (s *stubTransactions) Permitted(context.Context, *session.Session, string) (dto.TransitionsResponse, error) {
	return dto.TransitionsResponse{}, nil
}

func (s *stubTransactions) Detail(context.Context, *session.Session, string) (dto.TransactionView, error) {
	return dto.TransactionView{}, nil
}

type stubDisputes struct{}

func (stubDisputes) File(context.Context, *session.Session, dto.DisputeRequest) (models.Dispute, error) {
	return models.Dispute{}, nil
}

func (stubDisputes) GetByTransaction(context.Context, *session.Session, string) (*models.Dispute, error) {
	return nil, nil
}

func (stubDisputes) ListMine(context.Context, *session.Session) ([]models.Dispute, error) {
	return nil, nil
}

func (stubDisputes) Resolve(_ context.Context, _ *session.Session, id string, req dto.ResolveDisputeRequest) (models.Dispute, error) {
	return models.Dispute{ID: id, Status: req.Status}, nil
}

func newTestDeps(tx *stubTransactions) *handlers.Deps {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		TransactionSvc:  tx,
		DisputeSvc:      stubDisputes{},
	}
}

func newTestAuth() (Auth, *session.Registry) {
	reg := session.NewRegistry()
	return Auth{Tokens: middleware.NewMiddleware(secret), Sessions: reg}, reg
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + tok
}

func do(h http.Handler, method, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthzIsPublic(t *testing.T) {
	auth, _ := newTestAuth()
	rr := do(NewRouter(newTestDeps(&stubTransactions{}), auth), http.MethodGet, "/healthz", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID on the response")
	}
}

func TestAPIRequiresToken(t *testing.T) {
	auth, _ := newTestAuth()
	rr := do(NewRouter(newTestDeps(&stubTransactions{}), auth), http.MethodGet, "/api/v1/transactions/my", "")

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAPISharesSessionAcrossRequests(t *testing.T) {
	tx := &stubTransactions{}
	auth, reg := newTestAuth()
	r := NewRouter(newTestDeps(tx), auth)
	token := bearer(t, "USER")

	for i := 0; i < 2; i++ {
		if rr := do(r, http.MethodGet, "/api/v1/transactions/my", token); rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body=%s)", rr.Code, rr.Body.String())
		}
	}
	if len(tx.sessions) != 2 || tx.sessions[0] != tx.sessions[1] {
		t.Fatal("both requests should see the same session")
	}
	if reg.Len() != 1 {
		t.Fatalf("registry holds %d sessions, want 1", reg.Len())
	}
}

func TestModerationRouterRejectsUsers(t *testing.T) {
	auth, _ := newTestAuth()
	r := NewModerationRouter(newTestDeps(&stubTransactions{}), auth)

	rr := do(r, http.MethodGet, "/api/v1/disputes/transaction/tx-1", bearer(t, "USER"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}

	rr = do(r, http.MethodGet, "/api/v1/disputes/transaction/tx-1", bearer(t, "ROLE_MODERATOR"))
	if rr.Code != http.StatusOK {
		t.Fatalf("moderator status = %d, want 200", rr.Code)
	}
}

func TestModerationRouterHasNoBookingRoutes(t *testing.T) {
	auth, _ := newTestAuth()
	r := NewModerationRouter(newTestDeps(&stubTransactions{}), auth)

	rr := do(r, http.MethodGet, "/api/v1/transactions/my", bearer(t, "MODERATOR"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
