package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/middlewares"
	"github.com/nimish-23/user-account-service/internal/models"
	"github.com/nimish-23/user-account-service/internal/services"
	"github.com/nimish-23/user-account-service/internal/validation"
)

// UserUpdater defines the interface that the profile service must implement.
type UserUpdater interface {
	Update(ctx context.Context, id uuid.UUID, username, email, password *string) (*models.UserDB, error)
}

// UpdateMeRequest represents the JSON body for a profile update.
// All fields are optional; an empty body is a valid no-op.
// swagger:model UpdateMeRequest
type UpdateMeRequest struct {
	// Username
	// default: john_doe
	Username *string `json:"username" validate:"omitempty,min=3,max=15"`

	// Email
	// default: john@example.com
	Email *string `json:"email" validate:"omitempty,email"`

	// Password
	// default: secret123
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateMeResponse represents a successful profile update
// swagger:model UpdateMeResponse
type UpdateMeResponse struct {
	// Success message
	// default: Profile updated successfully
	Message string `json:"message"`

	// Updated profile
	User MeResponse `json:"user"`
}

// NewUpdateMeHandler returns an HTTP handler for updating the caller's profile.
// @Summary Update current user
// @Description Updates username, email and/or password of the authenticated caller
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateMeRequest body handlers.UpdateMeRequest true "Profile update request"
// @Success 200 {object} handlers.UpdateMeResponse "Profile updated"
// @Failure 400 {object} handlers.ValidationErrorResponse "Malformed body or validation failure"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already taken"
// @Router /users/me [patch]
func NewUpdateMeHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := middlewares.GetUserFromContext(r.Context())
		if caller == nil {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		var req UpdateMeRequest
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

		user, err := svc.Update(r.Context(), caller.ID, req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeJSON(w, http.StatusNotFound, ErrorResponse{
					Error: "User not found",
				})
			case errors.Is(err, services.ErrUsernameTaken):
				writeJSON(w, http.StatusConflict, ErrorResponse{
					Error: "Username already taken",
				})
			case errors.Is(err, services.ErrEmailTaken):
				writeJSON(w, http.StatusConflict, ErrorResponse{
					Error: "Email already taken",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, UpdateMeResponse{
			Message: "Profile updated successfully",
			User: MeResponse{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			},
		})
	}
}
