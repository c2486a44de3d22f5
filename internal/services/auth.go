package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/nimish-23/user-account-service/internal/jwt"
	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/models"
	"github.com/nimish-23/user-account-service/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string, isAdmin bool) (uuid.UUID, error)
}

// TokenIssuer defines an interface for issuing and inspecting bearer tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TokenRevoker denylists issued tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID uuid.UUID, ttl time.Duration) error
}

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         TokenIssuer
	revoker     TokenRevoker
	eventWriter EventWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenIssuer, revoker TokenRevoker, eventWriter EventWriter) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		revoker:     revoker,
		eventWriter: eventWriter,
	}
}

// Register creates a new user with a hashed password.
// The unique index is the authoritative duplicate check; the pre-check only
// avoids hashing work for the common duplicate case.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) error {
	existing, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if existing != nil {
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	id, err := svc.writer.Save(ctx, username, email, string(hashedPassword), false)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) || errors.Is(err, repositories.ErrDuplicateEmail) {
			return ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	publishEvent(ctx, svc.eventWriter, models.AuthEvent{
		Type:     models.EventUserRegistered,
		UserID:   id,
		Username: username,
		Email:    email,
	})

	return nil
}

// Login authenticates a user by email and returns a bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	publishEvent(ctx, svc.eventWriter, models.AuthEvent{
		Type:     models.EventUserLogin,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})

	return token, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (svc *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := svc.jwt.GetClaims(ctx, tokenString)
	if err != nil {
		return err
	}

	if err := svc.revoker.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		logger.Log.Errorw("failed to revoke token", "err", err)
		return err
	}

	publishEvent(ctx, svc.eventWriter, models.AuthEvent{
		Type:   models.EventUserLogout,
		UserID: claims.UserID,
	})

	return nil
}

// publishEvent publishes an auth event to Kafka. Publishing is best-effort:
// a missing writer or a broker error never fails the operation itself.
func publishEvent(ctx context.Context, w EventWriter, event models.AuthEvent) {
	if w == nil {
		return
	}

	event.EventID = uuid.New().String()
	event.OccurredAt = time.Now().UTC()

	value, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal auth event", "type", event.Type, "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: value,
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish auth event", "type", event.Type, "err", err)
		return
	}

	logger.Log.Infow("auth event published", "type", event.Type, "user_id", event.UserID)
}
