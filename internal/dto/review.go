package dto

// ReviewRequest submits one rating for a completed transaction.
// RevieweeID may be empty; it then defaults to the counterparty.
type ReviewRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
	RevieweeID    string `json:"revieweeId,omitempty"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}
