package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ForbiddenError is raised when the actor is not a party to the resource.
type ForbiddenError struct {
	ErrorMessage
}

// UnauthorizedTransitionError rejects a status change whose edge is not in the
// lifecycle table or whose role is outside the edge's actor set.
type UnauthorizedTransitionError struct {
	ErrorMessage
	From string
	To   string
	Role string
}

// PaymentRequiredError rejects acceptance of a paid transaction before its payment settled.
type PaymentRequiredError struct {
	ErrorMessage
	TransactionID string
}

type InvalidDisputeStateError struct {
	ErrorMessage
	Status string
}

type InvalidReviewStateError struct {
	ErrorMessage
}

type PaymentInitError struct {
	ErrorMessage
}

type PaymentConfirmError struct {
	ErrorMessage
}

// BackendError carries a rejection from the backend; Message is shown verbatim.
type BackendError struct {
	ErrorMessage
	Status int
}

// BackendUnavailableError wraps a transport failure reaching the backend.
type BackendUnavailableError struct {
	ErrorMessage
	Err error
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewUnauthorizedTransitionError(from, to, role string) *UnauthorizedTransitionError {
	return &UnauthorizedTransitionError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s cannot move a transaction from %s to %s", role, from, to)},
		From:         from,
		To:           to,
		Role:         role,
	}
}

func NewInvalidTransitionError(from, to string) *UnauthorizedTransitionError {
	return &UnauthorizedTransitionError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("transition from %s to %s is not allowed", from, to)},
		From:         from,
		To:           to,
	}
}

func NewPaymentRequiredError(transactionID string) *PaymentRequiredError {
	return &PaymentRequiredError{
		ErrorMessage:  ErrorMessage{Message: "payment must succeed before the transaction can be accepted"},
		TransactionID: transactionID,
	}
}

func NewInvalidDisputeStateError(status string) *InvalidDisputeStateError {
	return &InvalidDisputeStateError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("disputes can only be filed for ACTIVE transactions (current: %s)", status)},
		Status:       status,
	}
}

func NewDisputeSettledError(status string) *InvalidDisputeStateError {
	return &InvalidDisputeStateError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("dispute is already %s and cannot be reopened", status)},
		Status:       status,
	}
}

func NewInvalidReviewStateError(message string) *InvalidReviewStateError {
	return &InvalidReviewStateError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewPaymentInitError(message string) *PaymentInitError {
	return &PaymentInitError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewPaymentConfirmError(message string) *PaymentConfirmError {
	return &PaymentConfirmError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewBackendError(status int, message string) *BackendError {
	return &BackendError{
		ErrorMessage: ErrorMessage{Message: message},
		Status:       status,
	}
}

func NewBackendUnavailableError(err error) *BackendUnavailableError {
	return &BackendUnavailableError{
		ErrorMessage: ErrorMessage{Message: "backend unavailable"},
		Err:          err,
	}
}
