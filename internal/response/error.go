package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

// HandleError maps the error taxonomy to a status and a stable code. Backend
// messages are passed through verbatim.
func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.ForbiddenError:
		log.Warn("forbidden", "error", e.Message)
		h.WriteError(w, r, http.StatusForbidden, "forbidden", e.Message)

	case *errs.UnauthorizedTransitionError:
		log.Warn("transition not allowed",
			"from", e.From,
			"to", e.To,
			"role", e.Role)
		h.WriteError(w, r, http.StatusForbidden, "unauthorized_transition", e.Message)

	case *errs.PaymentRequiredError:
		log.Warn("payment required", "transaction_id", e.TransactionID)
		h.WriteError(w, r, http.StatusConflict, "payment_required", e.Message)

	case *errs.InvalidDisputeStateError:
		log.Warn("invalid dispute state", "status", e.Status)
		h.WriteError(w, r, http.StatusConflict, "invalid_dispute_state", e.Message)

	case *errs.InvalidReviewStateError:
		log.Warn("invalid review state", "error", e.Message)
		h.WriteError(w, r, http.StatusConflict, "invalid_review_state", e.Message)

	case *errs.PaymentInitError:
		log.Warn("payment init failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "payment_init_failed", e.Message)

	case *errs.PaymentConfirmError:
		log.Warn("payment confirm failed", "error", e.Message)
		h.WriteError(w, r, http.StatusPaymentRequired, "payment_failed", e.Message)

	case *errs.BackendError:
		log.Warn("backend error", "status", e.Status, "error", e.Message)
		status := e.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		h.WriteError(w, r, status, "backend_error", e.Message)

	case *errs.BackendUnavailableError:
		log.Error("backend unavailable", "error", e.Err)
		h.WriteError(w, r, http.StatusServiceUnavailable, "backend_unavailable",
			"Service temporarily unavailable")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
