package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nimish-23/user-account-service/internal/validation"
)

// ErrorResponse is the stable error body shape.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// ValidationErrorResponse maps field names to violation messages.
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// Per-field violation messages
	Error validation.FieldErrors `json:"error"`
}

// MessageResponse carries a human-readable success message.
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	// default: OK
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
