package services

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/pkg/helpers"
)

func reviewReq(rating int, comment string) dto.ReviewRequest {
	return dto.ReviewRequest{TransactionID: "tx-1", Rating: rating, Comment: comment}
}

func TestSubmitRatingThreeEmptyComment(t *testing.T) {
	backend := &fakeBackend{createdRv: models.Review{ID: "r1", Rating: 3}}
	svc := NewReviewService(backend)
	sess := sessionFor(borrowerID, testTx(models.StatusCompleted))

	rv, err := svc.Submit(helpers.TestCtx(), sess, reviewReq(3, ""))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rv.ID != "r1" {
		t.Fatalf("unexpected review %+v", rv)
	}
	if backend.lastReview.RevieweeID != ownerID {
		t.Fatalf("reviewee = %q, want the owner", backend.lastReview.RevieweeID)
	}
	if backend.count("CheckReview") != 1 {
		t.Fatalf("expected existing-review check before submit, got %v", backend.calls)
	}
}

func TestSubmitRatingOutOfRangeNoNetworkCall(t *testing.T) {
	for _, rating := range []int{0, -1, 6} {
		backend := &fakeBackend{}
		svc := NewReviewService(backend)

		_, err := svc.Submit(helpers.TestCtx(), sessionFor(borrowerID, testTx(models.StatusCompleted)), reviewReq(rating, "ok"))

		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("rating %d: expected ValidationError, got %v", rating, err)
		}
		if backend.total() != 0 {
			t.Fatalf("rating %d: backend called %v", rating, backend.calls)
		}
	}
}

func TestSubmitOutsideCompleted(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewReviewService(backend)

	_, err := svc.Submit(helpers.TestCtx(), sessionFor(ownerID, testTx(models.StatusActive)), reviewReq(4, ""))

	var ire *errs.InvalidReviewStateError
	if !errors.As(err, &ire) {
		t.Fatalf("expected InvalidReviewStateError, got %v", err)
	}
	if backend.total() != 0 {
		t.Fatal("review outside COMPLETED reached the backend")
	}
}

func TestSubmitSelfReviewRejected(t *testing.T) {
	svc := NewReviewService(&fakeBackend{})
	req := reviewReq(5, "")
	req.RevieweeID = ownerID

	_, err := svc.Submit(helpers.TestCtx(), sessionFor(ownerID, testTx(models.StatusCompleted)), req)

	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSubmitExistingReviewRejected(t *testing.T) {
	backend := &fakeBackend{review: &models.Review{ID: "r0"}}
	svc := NewReviewService(backend)

	_, err := svc.Submit(helpers.TestCtx(), sessionFor(ownerID, testTx(models.StatusCompleted)), reviewReq(4, ""))

	var ire *errs.InvalidReviewStateError
	if !errors.As(err, &ire) {
		t.Fatalf("expected InvalidReviewStateError, got %v", err)
	}
	if backend.count("CreateReview") != 0 {
		t.Fatal("duplicate review reached the backend")
	}
}

func TestCheckThenSubmitNeverDuplicates(t *testing.T) {
	backend := &fakeBackend{createdRv: models.Review{ID: "r1", Rating: 4}}
	svc := NewReviewService(backend)
	sess := sessionFor(ownerID, testTx(models.StatusCompleted))

	existing, err := svc.CheckExisting(helpers.TestCtx(), sess, "tx-1")
	if err != nil || existing != nil {
		t.Fatalf("CheckExisting = %v, %v", existing, err)
	}

	if _, err := svc.Submit(helpers.TestCtx(), sess, reviewReq(4, "")); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err = svc.Submit(helpers.TestCtx(), sess, reviewReq(4, ""))

	var ire *errs.InvalidReviewStateError
	if !errors.As(err, &ire) {
		t.Fatalf("expected InvalidReviewStateError on repeat, got %v", err)
	}
	if backend.count("CreateReview") != 1 {
		t.Fatalf("CreateReview called %d times, want 1", backend.count("CreateReview"))
	}
	if backend.count("CheckReview") != 1 {
		t.Fatalf("CheckReview called %d times, want 1", backend.count("CheckReview"))
	}
}

func TestCheckExistingError(t *testing.T) {
	backend := &fakeBackend{checkErr: errs.NewBackendUnavailableError(errors.New("reset"))}
	svc := NewReviewService(backend)
	sess := sessionFor(ownerID)

	if _, err := svc.CheckExisting(helpers.TestCtx(), sess, "tx-1"); !errs.IsUnavailable(err) {
		t.Fatalf("expected BackendUnavailableError, got %v", err)
	}
	if _, known := sess.ReviewCheck("tx-1"); known {
		t.Fatal("a failed check must not be remembered")
	}
}
