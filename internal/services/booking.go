package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/sharefair-gateway/internal/dto"
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
	"github.com/GregMSThompson/sharefair-gateway/internal/validation"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

type bookingBackend interface {
	CreateTransaction(ctx context.Context, token string, req dto.BookingRequest) (models.Transaction, error)
}

type bookingService struct {
	backend  bookingBackend
	validate *validator.Validate
	clockNow func() time.Time
}

func NewBookingService(backend bookingBackend) *bookingService {
	return &bookingService{
		backend:  backend,
		validate: validation.New(),
		clockNow: time.Now,
	}
}

// Validate checks a booking locally. The end date must fall strictly after the start
// date, and the start date may not be before today.
func (s *bookingService) Validate(req dto.BookingRequest, today models.Date) error {
	if err := validation.Check(s.validate, req); err != nil {
		return err
	}

	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return errs.NewValidationError(err.Error())
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		return errs.NewValidationError(err.Error())
	}

	if !end.After(start) {
		return errs.NewValidationError("endDate must be after startDate")
	}
	if start.Before(today) {
		return errs.NewValidationError("startDate cannot be in the past")
	}
	return nil
}

// Create sends a validated booking; the backend answers with a PENDING transaction.
func (s *bookingService) Create(ctx context.Context, sess *session.Session, req dto.BookingRequest) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	if err := s.Validate(req, models.DateOf(s.clockNow())); err != nil {
		log.Warn("booking rejected", "listing_id", req.ListingID, "error", err)
		return models.Transaction{}, err
	}

	tx, err := s.backend.CreateTransaction(ctx, sess.Token(), req)
	if err != nil {
		log.Warn("backend refused booking", "listing_id", req.ListingID, "error", err)
		return models.Transaction{}, err
	}

	sess.StoreTransaction(tx)
	log.Info("booking created", "transaction_id", tx.ID, "listing_id", req.ListingID, "status", tx.Status)
	return tx, nil
}
