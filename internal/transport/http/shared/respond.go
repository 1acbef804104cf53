// Package shared centralizes JSON response writing so every handler uses the
// same envelopes: {message, result} for actions and errors, plain JSON for
// listings.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "kgov/pkg/domain-errors"
)

// ErrorResponse is the error envelope: {"message": "...", "result": false}.
type ErrorResponse struct {
	Message string `json:"message"`
	Result  bool   `json:"result"`
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP status and the error
// envelope. Only the caller-safe message leaves the process; wrapped causes
// stay in the logs.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	message := dErrors.MessageOf(err)
	if status == http.StatusInternalServerError {
		message = "Server error"
	}
	WriteJSON(w, status, ErrorResponse{Message: message, Result: false})
}
