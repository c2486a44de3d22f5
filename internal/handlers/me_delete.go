package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/middlewares"
	"github.com/nimish-23/user-account-service/internal/services"
)

// UserDeleter defines the interface that the profile service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewDeleteMeHandler returns an HTTP handler for deleting the caller's account.
// @Summary Delete current user
// @Description Permanently deletes the authenticated caller's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse "User deleted"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/me [delete]
func NewDeleteMeHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := middlewares.GetUserFromContext(r.Context())
		if caller == nil {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		if err := svc.Delete(r.Context(), caller.ID); err != nil {
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

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: "User deleted successfully",
		})
	}
}
