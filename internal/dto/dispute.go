package dto

import "github.com/GregMSThompson/sharefair-gateway/internal/models"

type DisputeRequest struct {
	TransactionID string               `json:"transactionId" validate:"required"`
	Reason        models.DisputeReason `json:"reason" validate:"required"`
	Details       *string              `json:"details,omitempty"`
}

type ResolveDisputeRequest struct {
	Status     models.DisputeStatus `json:"status" validate:"required"`
	Resolution string               `json:"resolution"`
}
