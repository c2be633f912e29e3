package models

type DisputeReason string

const (
	ReasonItemNotReturned   DisputeReason = "ITEM_NOT_RETURNED"
	ReasonItemDamaged       DisputeReason = "ITEM_DAMAGED"
	ReasonNoShow            DisputeReason = "NO_SHOW"
	ReasonPaymentIssue      DisputeReason = "PAYMENT_ISSUE"
	ReasonMisrepresentation DisputeReason = "MISREPRESENTATION"
	ReasonOther             DisputeReason = "OTHER"
)

func (r DisputeReason) Valid() bool {
	switch r {
	case ReasonItemNotReturned, ReasonItemDamaged, ReasonNoShow,
		ReasonPaymentIssue, ReasonMisrepresentation, ReasonOther:
		return true
	default:
		return false
	}
}

type DisputeStatus string

const (
	DisputeOpen        DisputeStatus = "OPEN"
	DisputeUnderReview DisputeStatus = "UNDER_REVIEW"
	DisputeResolved    DisputeStatus = "RESOLVED"
	DisputeClosed      DisputeStatus = "CLOSED"
)

// Terminal reports whether the dispute is settled; a settled dispute never reopens.
func (s DisputeStatus) Terminal() bool {
	return s == DisputeResolved || s == DisputeClosed
}

type Dispute struct {
	ID             string        `json:"id"`
	TransactionID  string        `json:"transactionId"`
	ReporterID     string        `json:"reporterId"`
	ReporterName   string        `json:"reporterName,omitempty"`
	Reason         DisputeReason `json:"reason"`
	Details        *string       `json:"details,omitempty"`
	Status         DisputeStatus `json:"status"`
	Resolution     *string       `json:"resolution,omitempty"`
	ResolvedByName *string       `json:"resolvedByName,omitempty"`
	CreatedAt      Timestamp     `json:"createdAt"`
	ResolvedAt     *Timestamp    `json:"resolvedAt,omitempty"`
}
