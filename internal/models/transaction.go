package models

import (
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusActive    TransactionStatus = "ACTIVE"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusDisputed  TransactionStatus = "DISPUTED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled, StatusDisputed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the main machine has no outgoing edges from s.
// DISPUTED is not terminal here; its outcome is decided by the dispute flow on the backend.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentSucceeded  PaymentStatus = "SUCCEEDED"
	PaymentPaid       PaymentStatus = "PAID" // backend webhook spelling of SUCCEEDED
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// Settled reports whether the payment has been captured.
func (p PaymentStatus) Settled() bool {
	return p == PaymentSucceeded || p == PaymentPaid
}

// Transaction is the client's read-through copy of one rental agreement.
// Every field is sourced from the backend; the gateway never computes one locally.
type Transaction struct {
	ID            string            `json:"id"`
	ListingID     string            `json:"listingId"`
	ListingTitle  string            `json:"listingTitle,omitempty"`
	OwnerID       string            `json:"ownerId"`
	OwnerName     string            `json:"ownerName,omitempty"`
	BorrowerID    string            `json:"borrowerId"`
	BorrowerName  string            `json:"borrowerName,omitempty"`
	Status        TransactionStatus `json:"status"`
	StartDate     Date              `json:"startDate"`
	EndDate       Date              `json:"endDate"`
	IsFree        bool              `json:"isFree"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	ServiceFee    decimal.Decimal   `json:"serviceFee"`
	PaymentStatus PaymentStatus     `json:"paymentStatus,omitempty"`
	CreatedAt     Timestamp         `json:"createdAt"`
	CompletedAt   *Timestamp        `json:"completedAt,omitempty"`
}

// PaymentSettled reports whether the payment axis allows acceptance.
// A free transaction never consults PaymentStatus.
func (t Transaction) PaymentSettled() bool {
	if t.IsFree {
		return true
	}
	return t.PaymentStatus.Settled()
}

// Counterparty returns the id of the other participant, or "" when actorID is not a party.
func (t Transaction) Counterparty(actorID string) string {
	switch actorID {
	case t.OwnerID:
		return t.BorrowerID
	case t.BorrowerID:
		return t.OwnerID
	default:
		return ""
	}
}
