// Package httpx writes the JSON envelopes shared by every TMS endpoint.
// Success bodies are written as-is; failures always carry a stable machine
// code plus optional details, so API clients can branch on Error without
// parsing the translated message.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Machine codes for failures that are not specific to one endpoint.
// Domain codes (account_not_active, code_already_exists, ...) live with
// the handlers that emit them.
const (
	CodeInvalidJSON      = "invalid_json"
	CodeInvalidID        = "invalid_id"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeInternal         = "internal_error"
)

// ErrorResponse is the uniform failure envelope. Details holds per-field
// validation violations or a translated message, depending on the code.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON marshals payload before touching the ResponseWriter so an encoding
// failure can still produce a clean 500 instead of a truncated body.
func JSON(w http.ResponseWriter, status int, payload any) {
	body := []byte("null")
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			http.Error(w, `{"error":"`+CodeInternal+`"}`, http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes the failure envelope for code with the given status.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}
