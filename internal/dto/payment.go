package dto

type PaymentIntentRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

// PaymentConfirmRequest carries the outcome the payment SDK reported to the UI.
// Result is the raw SDK code or web redirect_status; Message is the gateway's text.
type PaymentConfirmRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
	Result        string `json:"result" validate:"required"`
	Message       string `json:"message,omitempty"`
}
