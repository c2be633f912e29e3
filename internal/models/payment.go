package models

import "github.com/shopspring/decimal"

type PaymentIntent struct {
	ClientSecret   string          `json:"clientSecret"`
	PublishableKey string          `json:"publishableKey"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency,omitempty"`
}

// PaymentOutcome is what the payment SDK reported after confirming an intent.
type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeFailed    PaymentOutcome = "failed"
	OutcomeCanceled  PaymentOutcome = "canceled"
)
