package dto

import "github.com/GregMSThompson/sharefair-gateway/internal/models"

type StatusUpdateRequest struct {
	Status models.TransactionStatus `json:"status" validate:"required"`
}

// TransactionView is a transaction as seen by one actor: the record plus what the
// actor may do next.
type TransactionView struct {
	Transaction models.Transaction         `json:"transaction"`
	Role        models.Role                `json:"role"`
	Transitions []models.TransactionStatus `json:"transitions"`
	CanPay      bool                       `json:"canPay"`
	CanDispute  bool                       `json:"canDispute"`
	CanReview   bool                       `json:"canReview"`
	Dispute     *models.Dispute            `json:"dispute,omitempty"`
	Review      *models.Review             `json:"review,omitempty"`
}

type TransitionsResponse struct {
	TransactionID string                     `json:"transactionId"`
	Role          models.Role                `json:"role"`
	Transitions   []models.TransactionStatus `json:"transitions"`
}
