package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
)

func newTestPaymentHandler(svc *fakePaymentSvc) http.Handler {
	deps := newTestDeps()
	deps.PaymentSvc = svc
	deps.PaymentReturnURL = "https://sharefair.example/payments/return"
	return NewPaymentHandlers(deps).PaymentRoutes()
}

func TestCreateIntentHandler(t *testing.T) {
	svc := &fakePaymentSvc{intent: models.PaymentIntent{ClientSecret: "pi_secret", PublishableKey: "pk_test"}}
	h := newTestPaymentHandler(svc)

	rr := serve(h, http.MethodPost, "/intent", `{"transactionId":"tx-1"}`, testActor(models.PlatformUser))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var data map[string]any
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data["clientSecret"] != "pi_secret" || data["publishableKey"] != "pk_test" {
		t.Fatalf("unexpected intent %v", data)
	}
	if data["returnUrl"] != "https://sharefair.example/payments/return" {
		t.Fatalf("returnUrl = %v", data["returnUrl"])
	}
	if svc.gotTxID != "tx-1" {
		t.Fatalf("intent requested for %q", svc.gotTxID)
	}
}

func TestConfirmHandlerParsesOutcome(t *testing.T) {
	svc := &fakePaymentSvc{}
	h := newTestPaymentHandler(svc)

	rr := serve(h, http.MethodPost, "/confirm", `{"transactionId":"tx-1","result":"Canceled"}`, testActor(models.PlatformUser))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if svc.gotOutcome != models.OutcomeCanceled {
		t.Fatalf("outcome = %q, want canceled", svc.gotOutcome)
	}
}

func TestConfirmHandlerFailure(t *testing.T) {
	svc := &fakePaymentSvc{err: errs.NewPaymentConfirmError("Your card was declined.")}
	h := newTestPaymentHandler(svc)

	rr := serve(h, http.MethodPost, "/confirm", `{"transactionId":"tx-1","result":"Failed","message":"Your card was declined."}`, testActor(models.PlatformUser))

	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rr.Code)
	}
	if svc.gotMessage != "Your card was declined." || svc.gotOutcome != models.OutcomeFailed {
		t.Fatalf("confirm called with %q %q", svc.gotOutcome, svc.gotMessage)
	}
	if env := decodeEnvelope(t, rr); env.Message != "Your card was declined." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestReturnHandlerReadsRedirectStatus(t *testing.T) {
	svc := &fakePaymentSvc{tx: &models.Transaction{ID: "tx-1", PaymentStatus: models.PaymentPaid}}
	h := newTestPaymentHandler(svc)

	rr := serve(h, http.MethodGet, "/return?transactionId=tx-1&redirect_status=succeeded", "", testActor(models.PlatformUser))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if svc.gotTxID != "tx-1" || svc.gotOutcome != models.OutcomeSucceeded {
		t.Fatalf("confirm called with %q %q", svc.gotTxID, svc.gotOutcome)
	}
}

func TestPaymentBodiesAreValidated(t *testing.T) {
	cases := []struct {
		target  string
		body    string
		message string
	}{
		{"/intent", `{}`, "transactionId is required"},
		{"/confirm", `{"result":"succeeded"}`, "transactionId is required"},
		{"/confirm", `{"transactionId":"tx-1"}`, "result is required"},
	}
	for _, tc := range cases {
		svc := &fakePaymentSvc{}
		rr := serve(newTestPaymentHandler(svc), http.MethodPost, tc.target, tc.body, testActor(models.PlatformUser))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: status = %d, want 400", tc.target, tc.body, rr.Code)
		}
		if env := decodeEnvelope(t, rr); env.Code != "invalid_input" || env.Message != tc.message {
			t.Fatalf("%s %s: got %q / %q", tc.target, tc.body, env.Code, env.Message)
		}
		if svc.gotTxID != "" || svc.gotOutcome != "" {
			t.Fatalf("%s %s: service should not be called", tc.target, tc.body)
		}
	}
}
