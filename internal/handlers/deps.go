package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/sharefair-gateway/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
	BookingSvc      bookingService
	PaymentSvc      paymentService
	DisputeSvc      disputeService
	ReviewSvc       reviewService
	SessionSvc      sessionService

	// PaymentReturnURL is handed to the web payment SDK as its return_url.
	PaymentReturnURL string
}
