package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/models"
)

// UserLister defines the interface that the listing service must implement.
type UserLister interface {
	List(ctx context.Context, page, limit int) (*models.UserPage, error)
}

// UserListItem represents one user in the admin listing
// swagger:model UserListItem
type UserListItem struct {
	// User identifier
	ID uuid.UUID `json:"id"`

	// Username
	// default: john_doe
	Username string `json:"username"`

	// Email
	// default: john@example.com
	Email string `json:"email"`

	// Elevated access flag
	IsAdmin bool `json:"is_admin"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// ListUsersResponse represents a page of the admin user listing
// swagger:model ListUsersResponse
type ListUsersResponse struct {
	Users      []UserListItem `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// NewListUsersHandler returns an HTTP handler for the admin user listing.
// @Summary List users
// @Description Returns a paginated listing of all users. Admin only. The page size is capped at 100.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} handlers.ListUsersResponse "Page of users"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Admin access required"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 10)

		result, err := svc.List(r.Context(), page, limit)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		users := make([]UserListItem, 0, len(result.Users))
		for _, u := range result.Users {
			users = append(users, UserListItem{
				ID:        u.ID,
				Username:  u.Username,
				Email:     u.Email,
				IsAdmin:   u.IsAdmin,
				CreatedAt: u.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, ListUsersResponse{
			Users:      users,
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		})
	}
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or not a number.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
