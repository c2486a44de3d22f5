package handlers

import (
	"context"
	"net/http"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, tokenString string) error
}

// NewLogoutHandler returns an HTTP handler for user logout.
// The presented token is revoked for the remainder of its lifetime.
// @Summary User logout
// @Description Revokes the presented bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := middlewares.GetTokenFromContext(r.Context())
		if tokenString == "" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		if err := svc.Logout(r.Context(), tokenString); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: "Logged out successfully",
		})
	}
}
