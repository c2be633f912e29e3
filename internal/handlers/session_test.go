package handlers

import (
	"net/http"
	"testing"

	"github.com/GregMSThompson/sharefair-gateway/internal/models"
)

func TestLogoutHandler(t *testing.T) {
	svc := &fakeSessionSvc{}
	deps := newTestDeps()
	deps.SessionSvc = svc
	h := NewSessionHandlers(deps).SessionRoutes()

	rr := serve(h, http.MethodDelete, "/", "", testActor(models.PlatformUser))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if len(svc.ended) != 1 || svc.ended[0] != "user-1" {
		t.Fatalf("End called with %v", svc.ended)
	}
}
