package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nimish-23/user-account-service/internal/jwt"
	"github.com/nimish-23/user-account-service/internal/middlewares"
	"github.com/nimish-23/user-account-service/internal/models"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	tokenID := uuid.New()
	claims := &jwt.Claims{
		UserID:    userID,
		TokenID:   tokenID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	user := &models.UserDB{ID: userID, Username: "alice"}

	tests := []struct {
		name        string
		setupMocks  func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder)
		wantStatus  int
		wantHandler bool
	}{
		{
			name: "valid token passes through",
			setupMocks: func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), tokenID).Return(false, nil)
				users.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
			},
			wantStatus:  http.StatusOK,
			wantHandler: true,
		},
		{
			name: "missing token",
			setupMocks: func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("no authorization header"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid token",
			setupMocks: func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("garbage", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "garbage").Return(nil, errors.New("invalid token"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "revoked token",
			setupMocks: func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), tokenID).Return(true, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "revocation store error",
			setupMocks: func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), tokenID).Return(false, errors.New("redis down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "token subject no longer exists",
			setupMocks: func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), tokenID).Return(false, nil)
				users.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "directory error",
			setupMocks: func(tok *middlewares.MockTokener, rev *middlewares.MockRevocationChecker, users *middlewares.MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
				rev.EXPECT().IsRevoked(gomock.Any(), tokenID).Return(false, nil)
				users.EXPECT().GetByID(gomock.Any(), userID).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := middlewares.NewMockTokener(ctrl)
			mockRevocations := middlewares.NewMockRevocationChecker(ctrl)
			mockUsers := middlewares.NewMockUserFinder(ctrl)
			tt.setupMocks(mockTokener, mockRevocations, mockUsers)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true

				// The gate exposes the resolved caller and the raw token
				assert.Equal(t, user, middlewares.GetUserFromContext(r.Context()))
				assert.Equal(t, "token123", middlewares.GetTokenFromContext(r.Context()))
			})

			mw := middlewares.AuthMiddleware(mockTokener, mockRevocations, mockUsers)

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantHandler, handlerCalled)
			if !tt.wantHandler {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name        string
		user        *models.UserDB
		wantStatus  int
		wantHandler bool
	}{
		{
			name:        "admin passes through",
			user:        &models.UserDB{ID: uuid.New(), IsAdmin: true},
			wantStatus:  http.StatusOK,
			wantHandler: true,
		},
		{
			name:       "non-admin is forbidden",
			user:       &models.UserDB{ID: uuid.New()},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no caller in context",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.user != nil {
				req = req.WithContext(middlewares.SetUserToContext(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()

			middlewares.RequireAdmin(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantHandler, handlerCalled)
		})
	}
}

func TestUserContextRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, middlewares.GetUserFromContext(req.Context()))
	assert.Empty(t, middlewares.GetTokenFromContext(req.Context()))

	user := &models.UserDB{ID: uuid.New(), Username: "alice"}
	ctx := middlewares.SetUserToContext(req.Context(), user)
	ctx = middlewares.SetTokenToContext(ctx, "token123")

	assert.Equal(t, user, middlewares.GetUserFromContext(ctx))
	assert.Equal(t, "token123", middlewares.GetTokenFromContext(ctx))
}
