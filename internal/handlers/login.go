package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/services"
	"github.com/nimish-23/user-account-service/internal/validation"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Bearer token
	// default: JWT_TOKEN
	AccessToken string `json:"access_token"`

	// Token type label
	// default: Bearer
	TokenType string `json:"token_type"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user by email and password and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "Bearer token returned"
// @Failure 400 {object} handlers.ValidationErrorResponse "Malformed body or validation failure"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		if fieldErrors := validation.Validate(req); fieldErrors != nil {
			writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error: fieldErrors,
			})
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			// Unknown email and wrong password get the same response
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{
					Error: "Invalid credentials",
				})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
		})
	}
}
