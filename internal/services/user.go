package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/models"
	"github.com/nimish-23/user-account-service/internal/repositories"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)

// Listing page size bounds. The limit is clamped server-side regardless of
// what the caller asks for.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProfileReader defines read operations needed for profile self-service
// and the admin listing.
type ProfileReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	List(ctx context.Context, offset, limit int) ([]models.UserDB, error)
	Count(ctx context.Context) (int64, error)
}

// ProfileWriter defines write operations for profile self-service.
type ProfileWriter interface {
	Update(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService handles profile fetch/update/delete and the admin listing.
// All self-service operations act only on the id resolved from the caller's
// token; there is no path to another user's record.
type UserService struct {
	reader      ProfileReader
	writer      ProfileWriter
	eventWriter EventWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader ProfileReader, writer ProfileWriter, eventWriter EventWriter) *UserService {
	return &UserService{
		reader:      reader,
		writer:      writer,
		eventWriter: eventWriter,
	}
}

// Get returns the user with the given id.
func (svc *UserService) Get(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies the provided fields to the user's own record. Nil fields
// are left untouched; an all-nil update is a valid no-op. Username and email
// collisions with a different user are conflicts; matching the caller's own
// current value is not.
func (svc *UserService) Update(ctx context.Context, id uuid.UUID, username, email, password *string) (*models.UserDB, error) {
	user, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if username != nil {
		existing, err := svc.reader.GetByUsername(ctx, *username)
		if err != nil {
			logger.Log.Errorw("failed to check username", "err", err)
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrUsernameTaken
		}
		user.Username = *username
	}

	if email != nil {
		existing, err := svc.reader.GetByEmail(ctx, *email)
		if err != nil {
			logger.Log.Errorw("failed to check email", "err", err)
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		user.Email = *email
	}

	if password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, err
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := svc.writer.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, err
	}

	publishEvent(ctx, svc.eventWriter, models.AuthEvent{
		Type:     models.EventUserUpdated,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})

	return user, nil
}

// Delete removes the user's own record. Previously issued tokens die with it
// because the access gate re-resolves the subject on every request.
func (svc *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to delete user", "err", err)
		return err
	}

	publishEvent(ctx, svc.eventWriter, models.AuthEvent{
		Type:     models.EventUserDeleted,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})

	return nil
}

// List returns a page of all users in creation order, with the limit clamped
// to MaxPageSize.
func (svc *UserService) List(ctx context.Context, page, limit int) (*models.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	total, err := svc.reader.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count users", "err", err)
		return nil, err
	}

	users, err := svc.reader.List(ctx, (page-1)*limit, limit)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
