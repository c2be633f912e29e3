package models

const (
	MinRating = 1
	MaxRating = 5
)

// Review is write-once: the gateway exposes no edit or delete.
type Review struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transactionId"`
	ReviewerID    string    `json:"reviewerId"`
	ReviewerName  string    `json:"reviewerName,omitempty"`
	RevieweeID    string    `json:"revieweeId"`
	RevieweeName  string    `json:"revieweeName,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     Timestamp `json:"createdAt"`
}
