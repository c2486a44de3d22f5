package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/nimish-23/user-account-service/internal/models"
	"github.com/nimish-23/user-account-service/internal/repositories"
	"github.com/nimish-23/user-account-service/internal/services"
)

func strPtr(s string) *string { return &s }

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name      string
		user      *models.UserDB
		readerErr error
		wantErr   error
	}{
		{
			name: "found",
			user: &models.UserDB{ID: userID, Username: "alice"},
		},
		{
			name:    "not found",
			wantErr: services.ErrUserNotFound,
		},
		{
			name:      "reader error",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockProfileReader(ctrl)
			svc := services.NewUserService(mockReader, services.NewMockProfileWriter(ctrl), nil)

			mockReader.EXPECT().
				GetByID(gomock.Any(), userID).
				Return(tt.user, tt.readerErr)

			user, err := svc.Get(context.Background(), userID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.user, user)
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	otherID := uuid.New()

	current := func() *models.UserDB {
		return &models.UserDB{
			ID:           userID,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "oldhash",
		}
	}

	t.Run("empty update is a no-op that still persists", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		mockWriter := services.NewMockProfileWriter(ctrl)
		svc := services.NewUserService(mockReader, mockWriter, nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(current(), nil)
		mockWriter.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		user, err := svc.Update(context.Background(), userID, nil, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "oldhash", user.PasswordHash)
	})

	t.Run("username taken by another user", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockProfileWriter(ctrl), nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(current(), nil)
		mockReader.EXPECT().GetByUsername(gomock.Any(), "taken").
			Return(&models.UserDB{ID: otherID, Username: "taken"}, nil)

		_, err := svc.Update(context.Background(), userID, strPtr("taken"), nil, nil)
		assert.ErrorIs(t, err, services.ErrUsernameTaken)
	})

	t.Run("own username is not a conflict", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		mockWriter := services.NewMockProfileWriter(ctrl)
		svc := services.NewUserService(mockReader, mockWriter, nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(current(), nil)
		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").
			Return(current(), nil)
		mockWriter.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		user, err := svc.Update(context.Background(), userID, strPtr("alice"), nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockProfileWriter(ctrl), nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(current(), nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").
			Return(&models.UserDB{ID: otherID}, nil)

		_, err := svc.Update(context.Background(), userID, nil, strPtr("taken@example.com"), nil)
		assert.ErrorIs(t, err, services.ErrEmailTaken)
	})

	t.Run("password change rehashes before persisting", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		mockWriter := services.NewMockProfileWriter(ctrl)
		svc := services.NewUserService(mockReader, mockWriter, nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(current(), nil)
		mockWriter.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *models.UserDB) error {
				assert.NotEqual(t, "oldhash", user.PasswordHash)
				assert.NotEqual(t, "newpassword", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
				return nil
			})

		_, err := svc.Update(context.Background(), userID, nil, nil, strPtr("newpassword"))
		assert.NoError(t, err)
	})

	t.Run("constraint violation on write is a conflict", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		mockWriter := services.NewMockProfileWriter(ctrl)
		svc := services.NewUserService(mockReader, mockWriter, nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(current(), nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), "raced@example.com").Return(nil, nil)
		mockWriter.EXPECT().Update(gomock.Any(), gomock.Any()).
			Return(repositories.ErrDuplicateEmail)

		_, err := svc.Update(context.Background(), userID, nil, strPtr("raced@example.com"), nil)
		assert.ErrorIs(t, err, services.ErrEmailTaken)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockProfileWriter(ctrl), nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.Update(context.Background(), userID, strPtr("newname"), nil, nil)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		mockWriter := services.NewMockProfileWriter(ctrl)
		svc := services.NewUserService(mockReader, mockWriter, nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.UserDB{ID: userID, Username: "alice"}, nil)
		mockWriter.EXPECT().Delete(gomock.Any(), userID).Return(nil)

		err := svc.Delete(context.Background(), userID)
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockReader := services.NewMockProfileReader(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockProfileWriter(ctrl), nil)

		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		err := svc.Delete(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := []models.UserDB{
		{ID: uuid.New(), Username: "alice"},
		{ID: uuid.New(), Username: "bob"},
	}

	tests := []struct {
		name           string
		page           int
		limit          int
		wantOffset     int
		wantLimit      int
		total          int64
		wantPage       int
		wantTotalPages int
	}{
		{
			name:           "defaults",
			page:           1,
			limit:          10,
			wantOffset:     0,
			wantLimit:      10,
			total:          2,
			wantPage:       1,
			wantTotalPages: 1,
		},
		{
			name:           "limit clamped to maximum",
			page:           1,
			limit:          500,
			wantOffset:     0,
			wantLimit:      100,
			total:          250,
			wantPage:       1,
			wantTotalPages: 3,
		},
		{
			name:           "page and limit floors",
			page:           -3,
			limit:          0,
			wantOffset:     0,
			wantLimit:      10,
			total:          2,
			wantPage:       1,
			wantTotalPages: 1,
		},
		{
			name:           "second page offset",
			page:           2,
			limit:          25,
			wantOffset:     25,
			wantLimit:      25,
			total:          60,
			wantPage:       2,
			wantTotalPages: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockProfileReader(ctrl)
			svc := services.NewUserService(mockReader, services.NewMockProfileWriter(ctrl), nil)

			mockReader.EXPECT().Count(gomock.Any()).Return(tt.total, nil)
			mockReader.EXPECT().
				List(gomock.Any(), tt.wantOffset, tt.wantLimit).
				Return(users, nil)

			page, err := svc.List(context.Background(), tt.page, tt.limit)
			assert.NoError(t, err)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantTotalPages, page.TotalPages)
			assert.Len(t, page.Users, 2)
		})
	}
}
