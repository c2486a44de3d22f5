package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/middlewares"
	"github.com/nimish-23/user-account-service/internal/models"
	"github.com/nimish-23/user-account-service/internal/services"
)

// UserGetter defines the interface that the profile service must implement.
type UserGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
}

// MeResponse represents the caller's own profile
// swagger:model MeResponse
type MeResponse struct {
	// User identifier
	ID uuid.UUID `json:"id"`

	// Username
	// default: john_doe
	Username string `json:"username"`

	// Email
	// default: john@example.com
	Email string `json:"email"`
}

// NewGetMeHandler returns an HTTP handler for fetching the caller's profile.
// @Summary Get current user
// @Description Returns the profile of the authenticated caller
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MeResponse "Current user profile"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/me [get]
func NewGetMeHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := middlewares.GetUserFromContext(r.Context())
		if caller == nil {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		user, err := svc.Get(r.Context(), caller.ID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeJSON(w, http.StatusNotFound, ErrorResponse{
					Error: "User not found",
				})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		writeJSON(w, http.StatusOK, MeResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}
