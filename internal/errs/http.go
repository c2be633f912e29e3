package errs

import (
	"errors"
	"net/http"
	"strings"
)

// FromStatus turns a non-2xx backend answer into a typed error.
// The backend's own message is kept verbatim; a blank one falls back to the status text.
func FromStatus(status int, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return NewNotFoundError(message)
	case http.StatusForbidden:
		return NewForbiddenError(message)
	default:
		return NewBackendError(status, message)
	}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsForbidden reports whether err is, or wraps, a ForbiddenError.
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}

// IsUnavailable reports whether err is a transport failure.
func IsUnavailable(err error) bool {
	var bu *BackendUnavailableError
	return errors.As(err, &bu)
}
