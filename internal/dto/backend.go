package dto

import "encoding/json"

// BackendEnvelope is the ApiResponse wrapper every backend endpoint answers with.
type BackendEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}
