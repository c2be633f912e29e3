package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/middleware"
	"github.com/GregMSThompson/sharefair-gateway/internal/response"
	"github.com/GregMSThompson/sharefair-gateway/internal/session"
	"github.com/GregMSThompson/sharefair-gateway/internal/validation"
)

var bodyValidator = validation.New()

// decodeBody reads a JSON body into v and runs its validate tags. Any failure is the
// caller's input problem.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewValidationError("request body is required")
		}
		return errs.NewValidationError("request body is not valid JSON")
	}
	return validation.Check(bodyValidator, v)
}

// requestSession returns the session bound by the session middleware and writes a
// 401 when there is none.
func requestSession(w http.ResponseWriter, r *http.Request, rh response.ResponseHandler) (*session.Session, bool) {
	sess := middleware.Session(r.Context())
	if sess == nil {
		rh.WriteError(w, r, http.StatusUnauthorized, "unauthenticated", "no active session")
		return nil, false
	}
	return sess, true
}
