package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nimish-23/user-account-service/internal/handlers"
	"github.com/nimish-23/user-account-service/internal/models"
)

func TestNewListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := []models.UserDB{
		{ID: uuid.New(), Username: "alice", Email: "alice@example.com", IsAdmin: true, CreatedAt: time.Now()},
		{ID: uuid.New(), Username: "bob", Email: "bob@example.com", CreatedAt: time.Now()},
	}

	t.Run("returns a page of users", func(t *testing.T) {
		mockSvc := handlers.NewMockUserLister(ctrl)
		mockSvc.EXPECT().
			List(gomock.Any(), 2, 25).
			Return(&models.UserPage{
				Users:      users,
				Total:      60,
				Page:       2,
				Limit:      25,
				TotalPages: 3,
			}, nil)

		handler := handlers.NewListUsersHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/users?page=2&limit=25", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp handlers.ListUsersResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Users, 2)
		assert.Equal(t, "alice", resp.Users[0].Username)
		assert.True(t, resp.Users[0].IsAdmin)
		assert.Equal(t, int64(60), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 25, resp.Limit)
		assert.Equal(t, 3, resp.TotalPages)

		// Password hashes never appear in the listing
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("missing parameters fall back to defaults", func(t *testing.T) {
		mockSvc := handlers.NewMockUserLister(ctrl)
		mockSvc.EXPECT().
			List(gomock.Any(), 1, 10).
			Return(&models.UserPage{Users: nil, Total: 0, Page: 1, Limit: 10, TotalPages: 0}, nil)

		handler := handlers.NewListUsersHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"users":[]`)
	})

	t.Run("non-numeric parameters fall back to defaults", func(t *testing.T) {
		mockSvc := handlers.NewMockUserLister(ctrl)
		mockSvc.EXPECT().
			List(gomock.Any(), 1, 10).
			Return(&models.UserPage{Page: 1, Limit: 10}, nil)

		handler := handlers.NewListUsersHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/users?page=abc&limit=xyz", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := handlers.NewMockUserLister(ctrl)
		mockSvc.EXPECT().
			List(gomock.Any(), 1, 10).
			Return(nil, errors.New("db down"))

		handler := handlers.NewListUsersHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"Internal server error"`)
	})
}
