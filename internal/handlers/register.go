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

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) error
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required,min=3,max=15"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required,min=6"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Ensures unique username and email. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.MessageResponse "User successfully registered"
// @Failure 400 {object} handlers.ValidationErrorResponse "Malformed body or validation failure"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

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

		if err := svc.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
			if errors.Is(err, services.ErrUserAlreadyExists) {
				writeJSON(w, http.StatusConflict, ErrorResponse{
					Error: "User already exists",
				})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		writeJSON(w, http.StatusCreated, MessageResponse{
			Message: "User registered successfully",
		})
	}
}
